// Package handlertest provides an in-memory record store implementing the
// handler store interfaces, for tests that run the API without a database.
package handlertest

import (
	"context"
	"errors"
	"sort"
	"sync"

	"team-board/internal/model"
	"team-board/internal/store"
	"team-board/internal/tree"
)

// MemStore keeps the three collections in memory. FailNext makes the next
// call of any mutating or listing method return an error, for failure-path
// tests.
type MemStore struct {
	mu       sync.Mutex
	members  []model.Member
	weeks    []model.WeekData
	changes  []model.StructureChange
	FailNext error
}

func New() *MemStore { return &MemStore{} }

func (s *MemStore) takeErr() error {
	err := s.FailNext
	s.FailNext = nil
	return err
}

func (s *MemStore) List(ctx context.Context) ([]model.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return nil, err
	}
	return append([]model.Member(nil), s.members...), nil
}

func (s *MemStore) Insert(ctx context.Context, m model.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return err
	}
	s.members = append(s.members, m)
	return nil
}

func (s *MemStore) Update(ctx context.Context, id string, patch map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return err
	}
	patch = model.FilterMemberPatch(patch)
	if leaderID, ok := patch["leader_id"].(string); ok {
		if tree.WouldCycle(s.members, id, leaderID) {
			return store.ErrCycle
		}
	}
	for i := range s.members {
		if s.members[i].ID != id {
			continue
		}
		if v, ok := patch["name"].(string); ok {
			s.members[i].Name = v
		}
		if v, ok := patch["role"].(string); ok {
			s.members[i].Role = model.Role(v)
		}
		if v, ok := patch["leader_id"].(string); ok {
			s.members[i].LeaderID = v
		}
		return nil
	}
	return nil
}

// Delete removes the member and cascades to week records by member_id
// equality.
func (s *MemStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return err
	}
	kept := s.members[:0]
	for _, m := range s.members {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	s.members = kept
	weeks := s.weeks[:0]
	for _, w := range s.weeks {
		if w.MemberID != id {
			weeks = append(weeks, w)
		}
	}
	s.weeks = weeks
	return nil
}

// Weeks exposes the week-collection view of the store.
func (s *MemStore) Weeks() *WeekView { return &WeekView{s} }

// Changes exposes the change-collection view of the store.
func (s *MemStore) Changes() *ChangeView { return &ChangeView{s} }

type WeekView struct{ s *MemStore }

func (v *WeekView) List(ctx context.Context) ([]model.WeekData, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.takeErr(); err != nil {
		return nil, err
	}
	return append([]model.WeekData(nil), v.s.weeks...), nil
}

func (v *WeekView) Insert(ctx context.Context, w model.WeekData) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.takeErr(); err != nil {
		return err
	}
	if err := w.Validate(); err != nil {
		return err
	}
	v.s.weeks = append(v.s.weeks, w)
	return nil
}

func (v *WeekView) InsertBatch(ctx context.Context, ws []model.WeekData) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.takeErr(); err != nil {
		return err
	}
	for _, w := range ws {
		if err := w.Validate(); err != nil {
			return err
		}
	}
	v.s.weeks = append(v.s.weeks, ws...)
	return nil
}

func (v *WeekView) Update(ctx context.Context, id, weekStart string, patch map[string]any) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.takeErr(); err != nil {
		return err
	}
	patch = model.FilterWeekPatch(patch)
	for i := range v.s.weeks {
		w := &v.s.weeks[i]
		if w.ID != id || w.WeekStart != weekStart {
			continue
		}
		for k, raw := range patch {
			switch k {
			case "goal":
				w.Goal = asInt(raw)
			case "monday":
				w.Monday = asInt(raw)
			case "tuesday":
				w.Tuesday = asInt(raw)
			case "wednesday":
				w.Wednesday = asInt(raw)
			case "thursday":
				w.Thursday = asInt(raw)
			case "friday":
				w.Friday = asInt(raw)
			case "saturday":
				w.Saturday = asInt(raw)
			case "rq_monday":
				w.RQMonday = asString(raw)
			case "rq_tuesday":
				w.RQTuesday = asString(raw)
			case "rq_wednesday":
				w.RQWednesday = asString(raw)
			case "rq_thursday":
				w.RQThursday = asString(raw)
			case "rq_friday":
				w.RQFriday = asString(raw)
			case "rq_notes":
				w.RQNotes = asString(raw)
			}
		}
		return nil
	}
	return nil
}

type ChangeView struct{ s *MemStore }

func (v *ChangeView) List(ctx context.Context) ([]model.StructureChange, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.takeErr(); err != nil {
		return nil, err
	}
	out := append([]model.StructureChange(nil), v.s.changes...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out, nil
}

func (v *ChangeView) Insert(ctx context.Context, c model.StructureChange) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.takeErr(); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	v.s.changes = append(v.s.changes, c)
	return nil
}

func (s *MemStore) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return err
	}
	s.members, s.weeks, s.changes = nil, nil, nil
	return nil
}

// ErrInjected is a convenience error for FailNext.
var ErrInjected = errors.New("injected failure")

func asInt(raw any) int {
	switch v := raw.(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func asString(raw any) string {
	if v, ok := raw.(string); ok {
		return v
	}
	return ""
}
