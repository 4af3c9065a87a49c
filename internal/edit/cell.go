// Package edit implements the inline-edit protocol for a single editable
// field: Viewing -> Editing -> Saving -> Viewing, with cancel and
// rollback-on-failure.
package edit

import (
	"context"
	"strconv"
	"strings"
)

type State int

const (
	Viewing State = iota
	Editing
	Saving
)

type FieldType int

const (
	Number FieldType = iota
	Text
)

// SaveFunc persists the committed value. Numeric fields receive an int,
// text fields a string.
type SaveFunc func(ctx context.Context, value any) error

// Cell is the per-field edit state machine. Not safe for concurrent use;
// each cell addresses a distinct field so no cross-cell locking is needed.
type Cell struct {
	fieldType FieldType
	state     State
	value     string
	buffer    string
}

func NewNumberCell(value int) *Cell {
	return &Cell{fieldType: Number, value: strconv.Itoa(value)}
}

func NewTextCell(value string) *Cell {
	return &Cell{fieldType: Text, value: value}
}

func (c *Cell) State() State { return c.state }

// Value is the last committed value as displayed.
func (c *Cell) Value() string { return c.value }

// Buffer is the staged edit value.
func (c *Cell) Buffer() string { return c.buffer }

// Begin enters Editing, staging the current value. No-op outside Viewing.
func (c *Cell) Begin() {
	if c.state != Viewing {
		return
	}
	c.buffer = c.value
	c.state = Editing
}

// SetBuffer replaces the staged value while Editing.
func (c *Cell) SetBuffer(s string) {
	if c.state == Editing {
		c.buffer = s
	}
}

// Cancel discards the staged value and returns to Viewing without a write.
func (c *Cell) Cancel() {
	if c.state != Editing {
		return
	}
	c.buffer = ""
	c.state = Viewing
}

// Commit coerces the staged value (numeric parse failure becomes 0) and
// calls save. On success the cell shows the new value. On failure the cell
// rolls back to the last-known-good value and returns the attempted value
// with the error so the caller can surface it and offer retry.
func (c *Cell) Commit(ctx context.Context, save SaveFunc) (attempted any, err error) {
	if c.state != Editing {
		return nil, nil
	}
	c.state = Saving

	var value any
	var display string
	if c.fieldType == Number {
		n, convErr := strconv.Atoi(strings.TrimSpace(c.buffer))
		if convErr != nil {
			n = 0
		}
		value = n
		display = strconv.Itoa(n)
	} else {
		value = c.buffer
		display = c.buffer
	}

	if err := save(ctx, value); err != nil {
		c.buffer = ""
		c.state = Viewing
		return value, err
	}

	c.value = display
	c.buffer = ""
	c.state = Viewing
	return value, nil
}
