// Package changelog records structure-change entries for membership events
// and presents them newest first.
package changelog

import (
	"context"
	"fmt"
	"sort"
	"time"

	"team-board/internal/model"
	"team-board/internal/week"

	"github.com/google/uuid"
)

// Action labels as shown in the history view.
const (
	ActionMemberAdded   = "Dodano nowego członka zespołu"
	ActionMemberRemoved = "Usunięto członka zespołu"
)

// Adder persists one change entry.
type Adder interface {
	Add(ctx context.Context, item model.StructureChange) error
}

// Recorder appends a change entry for every membership mutation. Entries
// are append-only.
type Recorder struct {
	changes Adder
	now     func() time.Time
}

func NewRecorder(changes Adder) *Recorder {
	return &Recorder{changes: changes, now: time.Now}
}

// WithNow overrides the clock; for tests.
func (r *Recorder) WithNow(now func() time.Time) *Recorder {
	r.now = now
	return r
}

// MemberAdded logs a member creation. leaderName, when non-empty, names the
// assigned leader in the details.
func (r *Recorder) MemberAdded(ctx context.Context, m model.Member, leaderName string) error {
	details := fmt.Sprintf("%s - %s", m.Name, m.Role)
	if leaderName != "" {
		details += fmt.Sprintf(" (przełożony: %s)", leaderName)
	}
	return r.append(ctx, ActionMemberAdded, details)
}

// MemberRemoved logs a member deletion.
func (r *Recorder) MemberRemoved(ctx context.Context, m model.Member) error {
	return r.append(ctx, ActionMemberRemoved, fmt.Sprintf("%s - %s", m.Name, m.Role))
}

func (r *Recorder) append(ctx context.Context, action, details string) error {
	entry := model.StructureChange{
		ID:        "change_" + uuid.NewString(),
		Type:      model.KindStructureChange,
		Action:    action,
		Details:   details,
		Timestamp: r.now().UTC().Format(week.StartLayout),
	}
	if err := r.changes.Add(ctx, entry); err != nil {
		return fmt.Errorf("record change: %w", err)
	}
	return nil
}

// Newest returns the entries in descending timestamp order, computed at
// read time. The input slice is not modified.
func Newest(entries []model.StructureChange) []model.StructureChange {
	out := make([]model.StructureChange, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return parseTS(out[i].Timestamp).After(parseTS(out[j].Timestamp))
	})
	return out
}

func parseTS(s string) time.Time {
	t, err := week.ParseStart(s)
	if err != nil {
		return time.Time{}
	}
	return t
}
