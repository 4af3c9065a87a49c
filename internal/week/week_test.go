package week

import (
	"context"
	"errors"
	"testing"
	"time"

	"team-board/internal/model"
)

func TestMonday(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"wednesday", time.Date(2024, 1, 3, 15, 30, 0, 0, time.Local), time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)},
		{"monday itself", time.Date(2024, 1, 1, 23, 59, 0, 0, time.Local), time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)},
		{"sunday", time.Date(2024, 1, 7, 8, 0, 0, 0, time.Local), time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Monday(tc.in); !got.Equal(tc.want) {
				t.Errorf("Monday(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestStartValueRoundTrip(t *testing.T) {
	monday := Monday(time.Date(2024, 3, 6, 12, 0, 0, 0, time.Local))
	s := StartValue(monday)
	parsed, err := ParseStart(s)
	if err != nil {
		t.Fatalf("ParseStart(%q): %v", s, err)
	}
	if !parsed.Equal(monday) {
		t.Errorf("round trip %v -> %q -> %v", monday, s, parsed)
	}
}

func TestParseStartAcceptsRFC3339(t *testing.T) {
	if _, err := ParseStart("2024-01-01T00:00:00Z"); err != nil {
		t.Errorf("ParseStart without millis: %v", err)
	}
	if _, err := ParseStart("not a date"); err == nil {
		t.Error("ParseStart accepted garbage")
	}
}

func TestLabelAndRange(t *testing.T) {
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	if got := Label(monday); got != "01.01" {
		t.Errorf("Label = %q", got)
	}
	if got := FormatRange(monday); got != "01.01 - 07.01.2024" {
		t.Errorf("FormatRange = %q", got)
	}
	if got := LabelValue("garbage"); got != "" {
		t.Errorf("LabelValue(garbage) = %q, want empty", got)
	}
}

func TestHasAdjacentBlocksAcrossGaps(t *testing.T) {
	m1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	m3 := AddWeeks(m1, 2) // gap at m1+1
	weeks := []model.WeekData{
		{WeekStart: StartValue(m1)},
		{WeekStart: StartValue(m3)},
	}
	if HasAdjacent(weeks, m1, +1) {
		t.Error("next week reported across a gap")
	}
	if HasAdjacent(weeks, m3, -1) {
		t.Error("previous week reported across a gap")
	}
	if !HasAdjacent(weeks, AddWeeks(m1, 1), -1) {
		t.Error("previous week from the gap anchor should see m1")
	}
}

type captureAdder struct {
	rows []model.WeekData
	err  error
}

func (c *captureAdder) AddBatch(ctx context.Context, items []model.WeekData) error {
	if c.err != nil {
		return c.err
	}
	c.rows = append(c.rows, items...)
	return nil
}

func TestCreateWeek(t *testing.T) {
	now := time.Date(2024, 1, 3, 10, 0, 0, 0, time.Local)
	adder := &captureAdder{}
	mgr := NewManager(adder).WithNow(func() time.Time { return now })

	members := []model.Member{
		{ID: "m1", Name: "Anna", Role: model.RoleLeader},
		{ID: "m2", Name: "Piotr", Role: model.RoleNS, LeaderID: "m1"},
	}

	monday, err := mgr.CreateWeek(context.Background(), members, nil)
	if err != nil {
		t.Fatalf("CreateWeek: %v", err)
	}
	if !monday.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)) {
		t.Errorf("monday = %v", monday)
	}
	if len(adder.rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(adder.rows))
	}

	row := adder.rows[1]
	if row.ID != "m2_"+StartValue(monday) {
		t.Errorf("id = %q", row.ID)
	}
	if row.MemberID != "m2" || row.Name != "Piotr" || row.Role != model.RoleNS || row.LeaderID != "m1" {
		t.Errorf("snapshot fields wrong: %+v", row)
	}
	if row.Goal != 0 || row.Monday != 0 || row.Saturday != 0 || row.RQMonday != "" || row.RQNotes != "" {
		t.Errorf("new row not zeroed: %+v", row)
	}
	if row.Year != 2024 || row.WeekNumber != 1 {
		t.Errorf("year/week = %d/%d", row.Year, row.WeekNumber)
	}
}

func TestCreateWeekIdempotentWithinWeek(t *testing.T) {
	now := time.Date(2024, 1, 3, 10, 0, 0, 0, time.Local)
	adder := &captureAdder{}
	mgr := NewManager(adder).WithNow(func() time.Time { return now })
	members := []model.Member{{ID: "m1", Name: "Anna", Role: model.RoleLeader}}

	monday, err := mgr.CreateWeek(context.Background(), members, nil)
	if err != nil {
		t.Fatalf("first CreateWeek: %v", err)
	}
	existing := append([]model.WeekData(nil), adder.rows...)

	_, err = mgr.CreateWeek(context.Background(), members, existing)
	if !errors.Is(err, ErrWeekExists) {
		t.Fatalf("second CreateWeek err = %v, want ErrWeekExists", err)
	}
	if len(adder.rows) != 1 {
		t.Errorf("second call wrote rows: %d", len(adder.rows))
	}
	_ = monday
}

func TestCreateWeekPropagatesWriteFailure(t *testing.T) {
	adder := &captureAdder{err: errors.New("down")}
	mgr := NewManager(adder).WithNow(func() time.Time { return time.Date(2024, 1, 3, 0, 0, 0, 0, time.Local) })
	_, err := mgr.CreateWeek(context.Background(), []model.Member{{ID: "m1", Name: "A", Role: model.RoleNS}}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestSnapshotDoesNotTrackLaterRenames(t *testing.T) {
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	m := model.Member{ID: "m1", Name: "Before", Role: model.RoleNS}
	row := NewRow(m, monday)
	m.Name = "After"
	if row.Name != "Before" {
		t.Errorf("snapshot changed with member: %q", row.Name)
	}
}
