// Package dashboard coordinates the dashboard actions over the shared
// collections: membership mutations with change logging, week navigation
// and new-week creation.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"team-board/internal/changelog"
	"team-board/internal/client"
	"team-board/internal/model"
	"team-board/internal/week"

	"github.com/google/uuid"
)

// Dashboard owns the three shared collections and the displayed-week
// pointer. One instance serves every view so all consumers see consistent
// data after any mutation.
type Dashboard struct {
	Members *client.Collection[model.Member]
	Weeks   *client.Collection[model.WeekData]
	Changes *client.Collection[model.StructureChange]

	recorder *changelog.Recorder
	weeks    *week.Manager

	anchor time.Time
}

func New(baseURL string) *Dashboard {
	d := &Dashboard{
		Members: client.NewCollection[model.Member](baseURL, "members"),
		Weeks:   client.NewCollection[model.WeekData](baseURL, "weeks"),
		Changes: client.NewCollection[model.StructureChange](baseURL, "changes"),
		anchor:  week.Monday(time.Now()),
	}
	d.recorder = changelog.NewRecorder(d.Changes)
	d.weeks = week.NewManager(d.Weeks)
	return d
}

// Load fetches all three collections. Failures leave the caches stale and
// are reported for the first collection that failed.
func (d *Dashboard) Load(ctx context.Context) error {
	var first error
	for _, load := range []func(context.Context) error{d.Members.Load, d.Weeks.Load, d.Changes.Load} {
		if err := load(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Anchor is the Monday of the displayed week.
func (d *Dashboard) Anchor() time.Time { return d.anchor }

// CurrentWeekRows returns the week records whose week_start equals the
// displayed anchor.
func (d *Dashboard) CurrentWeekRows() []model.WeekData {
	var out []model.WeekData
	for _, w := range d.Weeks.Items() {
		if t, err := week.ParseStart(w.WeekStart); err == nil && t.Equal(d.anchor) {
			out = append(out, w)
		}
	}
	return out
}

// HasPrev and HasNext gate navigation: a missing adjacent week blocks
// movement in that direction.
func (d *Dashboard) HasPrev() bool { return week.HasAdjacent(d.Weeks.Items(), d.anchor, -1) }
func (d *Dashboard) HasNext() bool { return week.HasAdjacent(d.Weeks.Items(), d.anchor, +1) }

// GoPrev moves the displayed week back when data exists; no-op otherwise.
func (d *Dashboard) GoPrev() {
	if d.HasPrev() {
		d.anchor = week.AddWeeks(d.anchor, -1)
	}
}

// GoNext moves the displayed week forward when data exists.
func (d *Dashboard) GoNext() {
	if d.HasNext() {
		d.anchor = week.AddWeeks(d.anchor, +1)
	}
}

// AddMember creates a member and logs the structure change. The new id is
// generated here; leader_id may be empty for a top-level member.
func (d *Dashboard) AddMember(ctx context.Context, name string, role model.Role, leaderID string) (model.Member, error) {
	m := model.Member{
		ID:       "member_" + uuid.NewString(),
		Type:     model.KindMember,
		Name:     name,
		Role:     role,
		LeaderID: leaderID,
	}
	if err := m.Validate(); err != nil {
		return model.Member{}, err
	}
	if err := d.Members.Add(ctx, m); err != nil {
		return model.Member{}, err
	}

	leaderName := ""
	if leaderID != "" {
		if leader, ok := d.Members.Find(leaderID); ok {
			leaderName = leader.Name
		}
	}
	if err := d.recorder.MemberAdded(ctx, m, leaderName); err != nil {
		return m, fmt.Errorf("member added, change log failed: %w", err)
	}
	return m, nil
}

// RemoveMember deletes a member (the store cascades to their week records)
// and logs the structure change.
func (d *Dashboard) RemoveMember(ctx context.Context, id string) error {
	m, ok := d.Members.Find(id)
	if !ok {
		return nil
	}
	if err := d.Members.Delete(ctx, id); err != nil {
		return err
	}
	if err := d.Weeks.Load(ctx); err != nil {
		return err
	}
	if err := d.recorder.MemberRemoved(ctx, m); err != nil {
		return fmt.Errorf("member removed, change log failed: %w", err)
	}
	return nil
}

// CreateWeek materializes the current calendar week for every member and
// advances the displayed week to it. Returns week.ErrWeekExists when the
// week is already materialized.
func (d *Dashboard) CreateWeek(ctx context.Context) (time.Time, error) {
	monday, err := d.weeks.CreateWeek(ctx, d.Members.Items(), d.Weeks.Items())
	if err != nil {
		return monday, err
	}
	d.anchor = monday
	return monday, nil
}

// UpdateCell persists one edited field of a week record.
func (d *Dashboard) UpdateCell(ctx context.Context, id, field string, value any) error {
	return d.Weeks.Update(ctx, id, map[string]any{field: value})
}

// History returns the structure changes newest first.
func (d *Dashboard) History() []model.StructureChange {
	return changelog.Newest(d.Changes.Items())
}
