// Package week handles the Monday-anchored week calendar: anchoring,
// navigation checks and materializing a fresh week for every member.
package week

import (
	"context"
	"errors"
	"fmt"
	"time"

	"team-board/internal/model"
)

// StartLayout is the canonical week_start encoding, matching the stored
// records (UTC with millisecond precision).
const StartLayout = "2006-01-02T15:04:05.000Z07:00"

var ErrWeekExists = errors.New("week already exists")

// Monday returns the Monday on or before t, normalized to local midnight.
func Monday(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	d := t.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// AddWeeks shifts an anchor by n whole weeks.
func AddWeeks(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, 7*n)
}

// Number returns the ISO week number for an anchor.
func Number(t time.Time) int {
	_, wk := t.ISOWeek()
	return wk
}

// StartValue encodes an anchor as the stored week_start string.
func StartValue(t time.Time) string {
	return t.UTC().Format(StartLayout)
}

// ParseStart decodes a stored week_start. Accepts RFC3339 with or without
// fractional seconds.
func ParseStart(s string) (time.Time, error) {
	if t, err := time.Parse(StartLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse week_start %q: %w", s, err)
	}
	return t, nil
}

// Label renders an anchor as the chart x-axis label, DD.MM.
func Label(t time.Time) string {
	return t.Format("02.01")
}

// LabelValue renders a stored week_start as DD.MM; malformed input yields
// an empty label rather than an error.
func LabelValue(weekStart string) string {
	t, err := ParseStart(weekStart)
	if err != nil {
		return ""
	}
	return Label(t)
}

// FormatRange renders a Monday anchor as its display range,
// "DD.MM - DD.MM.YYYY" through the following Sunday.
func FormatRange(monday time.Time) string {
	end := monday.AddDate(0, 0, 6)
	return fmt.Sprintf("%s - %s", monday.Format("02.01"), end.Format("02.01.2006"))
}

// HasWeek reports whether any record's week_start equals the anchor.
func HasWeek(weeks []model.WeekData, anchor time.Time) bool {
	for _, w := range weeks {
		if t, err := ParseStart(w.WeekStart); err == nil && t.Equal(anchor) {
			return true
		}
	}
	return false
}

// HasAdjacent reports whether a week exists exactly one week away in the
// given direction (+1 next, -1 previous). Gaps block navigation.
func HasAdjacent(weeks []model.WeekData, anchor time.Time, direction int) bool {
	return HasWeek(weeks, AddWeeks(anchor, direction))
}

// BatchAdder persists a batch of new week rows.
type BatchAdder interface {
	AddBatch(ctx context.Context, items []model.WeekData) error
}

// Manager materializes new weeks through a week-record sink.
type Manager struct {
	weeks BatchAdder
	now   func() time.Time
}

func NewManager(weeks BatchAdder) *Manager {
	return &Manager{weeks: weeks, now: time.Now}
}

// WithNow overrides the clock; for tests.
func (m *Manager) WithNow(now func() time.Time) *Manager {
	m.now = now
	return m
}

// NewRow synthesizes one zeroed week record for a member, snapshotting the
// member's current name, role and leader.
func NewRow(member model.Member, monday time.Time) model.WeekData {
	return model.WeekData{
		ID:         member.ID + "_" + StartValue(monday),
		Type:       model.KindWeekData,
		MemberID:   member.ID,
		Name:       member.Name,
		Role:       member.Role,
		LeaderID:   member.LeaderID,
		WeekStart:  StartValue(monday),
		WeekNumber: Number(monday),
		Year:       monday.Year(),
	}
}

// CreateWeek materializes the current calendar week: one zeroed record per
// member. Returns ErrWeekExists without writing anything when a record for
// this week's Monday already exists.
func (m *Manager) CreateWeek(ctx context.Context, members []model.Member, existing []model.WeekData) (time.Time, error) {
	monday := Monday(m.now())
	if HasWeek(existing, monday) {
		return monday, ErrWeekExists
	}

	rows := make([]model.WeekData, 0, len(members))
	for _, member := range members {
		rows = append(rows, NewRow(member, monday))
	}
	if len(rows) > 0 {
		if err := m.weeks.AddBatch(ctx, rows); err != nil {
			return monday, fmt.Errorf("create week: %w", err)
		}
	}
	return monday, nil
}
