// Package store owns the server-side record collections backing the
// dashboard API, one store per collection over a shared gorm handle.
package store

import (
	"context"
	"errors"
	"fmt"

	"team-board/internal/model"
	"team-board/internal/tree"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrCycle    = errors.New("leader assignment would create a cycle")
)

type Store struct {
	db      *gorm.DB
	Members *Members
	Weeks   *Weeks
	Changes *Changes
}

func New(db *gorm.DB) *Store {
	return &Store{
		db:      db,
		Members: &Members{db: db},
		Weeks:   &Weeks{db: db},
		Changes: &Changes{db: db},
	}
}

// Migrate creates or updates the three collection tables.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&model.Member{}, &model.WeekData{}, &model.StructureChange{})
}

// ClearAll wipes every collection. Destructive; intended for test/reset use.
func (s *Store) ClearAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&model.Member{}, &model.WeekData{}, &model.StructureChange{}} {
			if err := tx.Where("1 = 1").Delete(m).Error; err != nil {
				return fmt.Errorf("clear all: %w", err)
			}
		}
		return nil
	})
}

type Members struct{ db *gorm.DB }

func (s *Members) List(ctx context.Context) ([]model.Member, error) {
	var out []model.Member
	if err := s.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return out, nil
}

func (s *Members) Insert(ctx context.Context, m model.Member) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

// Update applies a merge patch to one member. A leader_id change that would
// close a leader cycle is rejected.
func (s *Members) Update(ctx context.Context, id string, patch map[string]any) error {
	patch = model.FilterMemberPatch(patch)
	if len(patch) == 0 {
		return nil
	}
	if leaderID, ok := patch["leader_id"].(string); ok {
		members, err := s.List(ctx)
		if err != nil {
			return err
		}
		if tree.WouldCycle(members, id, leaderID) {
			return ErrCycle
		}
	}
	res := s.db.WithContext(ctx).Model(&model.Member{}).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return fmt.Errorf("update member %s: %w", id, res.Error)
	}
	return nil
}

// Delete removes a member and cascades to every week record the member
// owns, matched by member_id equality.
func (s *Members) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).Delete(&model.Member{}).Error; err != nil {
			return fmt.Errorf("delete member %s: %w", id, err)
		}
		if err := tx.Where("member_id = ?", id).Delete(&model.WeekData{}).Error; err != nil {
			return fmt.Errorf("cascade weeks for %s: %w", id, err)
		}
		return nil
	})
}

type Weeks struct{ db *gorm.DB }

func (s *Weeks) List(ctx context.Context) ([]model.WeekData, error) {
	var out []model.WeekData
	if err := s.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list weeks: %w", err)
	}
	return out, nil
}

func (s *Weeks) Insert(ctx context.Context, w model.WeekData) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(&w).Error; err != nil {
		return fmt.Errorf("insert week: %w", err)
	}
	return nil
}

func (s *Weeks) InsertBatch(ctx context.Context, ws []model.WeekData) error {
	for _, w := range ws {
		if err := w.Validate(); err != nil {
			return err
		}
	}
	if len(ws) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&ws).Error; err != nil {
		return fmt.Errorf("insert weeks: %w", err)
	}
	return nil
}

// Update applies a merge patch to the record matching the compound
// (id, week_start) key.
func (s *Weeks) Update(ctx context.Context, id, weekStart string, patch map[string]any) error {
	patch = model.FilterWeekPatch(patch)
	if len(patch) == 0 {
		return nil
	}
	res := s.db.WithContext(ctx).Model(&model.WeekData{}).
		Where("id = ? AND week_start = ?", id, weekStart).
		Updates(patch)
	if res.Error != nil {
		return fmt.Errorf("update week %s/%s: %w", id, weekStart, res.Error)
	}
	return nil
}

type Changes struct{ db *gorm.DB }

// List returns change entries newest first.
func (s *Changes) List(ctx context.Context) ([]model.StructureChange, error) {
	var out []model.StructureChange
	if err := s.db.WithContext(ctx).Order("timestamp DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list changes: %w", err)
	}
	return out, nil
}

func (s *Changes) Insert(ctx context.Context, c model.StructureChange) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return fmt.Errorf("insert change: %w", err)
	}
	return nil
}
