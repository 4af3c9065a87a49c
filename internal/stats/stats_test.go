package stats

import (
	"testing"

	"team-board/internal/model"
)

func wk(memberID, start string, days ...int) model.WeekData {
	w := model.WeekData{
		ID:        memberID + "_" + start,
		Type:      model.KindWeekData,
		MemberID:  memberID,
		WeekStart: start,
	}
	fields := []*int{&w.Monday, &w.Tuesday, &w.Wednesday, &w.Thursday, &w.Friday, &w.Saturday}
	for i, d := range days {
		if i < len(fields) {
			*fields[i] = d
		}
	}
	return w
}

func TestWeekTotal(t *testing.T) {
	w := wk("m1", "2024-01-01T00:00:00.000Z", 1, 2, 3, 4, 5, 6)
	if got := WeekTotal(w); got != 21 {
		t.Errorf("WeekTotal = %d, want 21", got)
	}
	if got := WeekTotal(model.WeekData{}); got != 0 {
		t.Errorf("WeekTotal(zero) = %d, want 0", got)
	}
	// Pure: recomputing yields the same value.
	if WeekTotal(w) != WeekTotal(w) {
		t.Error("WeekTotal not deterministic")
	}
}

func TestRQTotalCoercion(t *testing.T) {
	w := model.WeekData{RQMonday: "3", RQTuesday: "", RQWednesday: "abc"}
	if got := RQTotal(w); got != 3 {
		t.Errorf("RQTotal = %d, want 3", got)
	}

	cases := []struct {
		name string
		w    model.WeekData
		want int
	}{
		{"all numeric", model.WeekData{RQMonday: "1", RQTuesday: "2", RQWednesday: "3", RQThursday: "4", RQFriday: "5"}, 15},
		{"whitespace", model.WeekData{RQMonday: " 7 "}, 7},
		{"all empty", model.WeekData{}, 0},
		{"negative", model.WeekData{RQMonday: "-2", RQTuesday: "5"}, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RQTotal(tc.w); got != tc.want {
				t.Errorf("RQTotal = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestMemberTotalsWithoutWeeks(t *testing.T) {
	weeks := []model.WeekData{wk("m2", "2024-01-01T00:00:00.000Z", 5)}
	if got := MemberHireTotal(weeks, "m1"); got != 0 {
		t.Errorf("MemberHireTotal = %d, want 0", got)
	}
	if got := MemberRQTotal(weeks, "m1"); got != 0 {
		t.Errorf("MemberRQTotal = %d, want 0", got)
	}
}

func TestMemberTotalMatchesByMemberID(t *testing.T) {
	// m1 and m10: equality matching must not attribute m10's weeks to m1.
	weeks := []model.WeekData{
		wk("m1", "2024-01-01T00:00:00.000Z", 2),
		wk("m10", "2024-01-01T00:00:00.000Z", 7),
	}
	if got := MemberHireTotal(weeks, "m1"); got != 2 {
		t.Errorf("MemberHireTotal(m1) = %d, want 2", got)
	}
	if got := MemberHireTotal(weeks, "m10"); got != 7 {
		t.Errorf("MemberHireTotal(m10) = %d, want 7", got)
	}
}

func TestTopByHiresStable(t *testing.T) {
	members := []model.Member{
		{ID: "a", Name: "A"}, {ID: "b", Name: "B"}, {ID: "c", Name: "C"},
		{ID: "d", Name: "D"}, {ID: "e", Name: "E"}, {ID: "f", Name: "F"},
	}
	start := "2024-01-01T00:00:00.000Z"
	weeks := []model.WeekData{
		wk("a", start, 3),
		wk("b", start, 5),
		wk("c", start, 3), // ties with a; must stay after a
		wk("d", start, 1),
		wk("e", start, 5), // ties with b; must stay after b
		wk("f", start, 0),
	}

	ranked := TopByHires(members, weeks, TopN)
	if len(ranked) != 5 {
		t.Fatalf("len = %d, want 5", len(ranked))
	}
	order := make([]string, len(ranked))
	for i, mt := range ranked {
		order[i] = mt.Member.ID
	}
	want := []string{"b", "e", "a", "c", "d"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestLatestWeeksChronological(t *testing.T) {
	w1, w2, w3 := "2024-01-01T00:00:00.000Z", "2024-01-08T00:00:00.000Z", "2024-01-15T00:00:00.000Z"
	weeks := []model.WeekData{
		wk("a", w2), wk("a", w1), wk("b", w3), wk("b", w1),
	}
	got := LatestWeeks(weeks, 2)
	if len(got) != 2 || got[0] != w2 || got[1] != w3 {
		t.Errorf("LatestWeeks = %v, want [%s %s]", got, w2, w3)
	}
	if n := WeekCount(weeks); n != 3 {
		t.Errorf("WeekCount = %d, want 3", n)
	}
}

func TestMemberSeriesZeroFillsMissingWeeks(t *testing.T) {
	w1, w2, w3 := "2024-01-01T00:00:00.000Z", "2024-01-08T00:00:00.000Z", "2024-01-15T00:00:00.000Z"
	member := model.Member{ID: "x", Name: "X"}
	weeks := []model.WeekData{
		wk("x", w1, 4),
		wk("x", w3, 2),
		wk("y", w2, 9),
	}

	s := MemberSeries(member, weeks, []string{w1, w2, w3}, WeekTotal)
	if s.Name != "X" {
		t.Errorf("Name = %q, want X", s.Name)
	}
	want := []Point{{"01.01", 4}, {"08.01", 0}, {"15.01", 2}}
	if len(s.Points) != len(want) {
		t.Fatalf("points = %v", s.Points)
	}
	for i, p := range want {
		if s.Points[i] != p {
			t.Errorf("point %d = %+v, want %+v", i, s.Points[i], p)
		}
	}
}

func TestTeamSeriesSumsAllMembers(t *testing.T) {
	w1, w2 := "2024-01-01T00:00:00.000Z", "2024-01-08T00:00:00.000Z"
	weeks := []model.WeekData{
		wk("a", w1, 1), wk("b", w1, 2), wk("a", w2, 3),
	}
	s := TeamSeries("Zatrudnienia", weeks, []string{w1, w2}, WeekTotal)
	if s.Points[0].Y != 3 || s.Points[1].Y != 3 {
		t.Errorf("points = %v, want y values 3 and 3", s.Points)
	}
}

func TestSummarize(t *testing.T) {
	w1, w2 := "2024-01-01T00:00:00.000Z", "2024-01-08T00:00:00.000Z"
	members := []model.Member{{ID: "a"}, {ID: "b"}}
	weeks := []model.WeekData{
		{MemberID: "a", WeekStart: w1, RQMonday: "2"},
		{MemberID: "a", WeekStart: w2, RQMonday: "5"},
		{MemberID: "b", WeekStart: w2, RQTuesday: "1"},
	}
	s := Summarize(members, weeks)
	if s.TotalRQ != 8 {
		t.Errorf("TotalRQ = %d, want 8", s.TotalRQ)
	}
	if s.CurrentWeekRQ != 6 {
		t.Errorf("CurrentWeekRQ = %d, want 6", s.CurrentWeekRQ)
	}
	if s.MemberCount != 2 || s.WeekCount != 2 {
		t.Errorf("counts = %+v", s)
	}
}

func TestOverviewNewestFirst(t *testing.T) {
	w1, w2 := "2024-01-01T00:00:00.000Z", "2024-01-08T00:00:00.000Z"
	member := model.Member{ID: "a", Name: "A"}
	weeks := []model.WeekData{
		func() model.WeekData { w := wk("a", w1, 2); w.RQMonday = "1"; return w }(),
		wk("a", w2, 3),
		wk("b", w1, 9),
	}
	ov := Overview(member, weeks)
	if ov.TotalHired != 5 || ov.TotalRQ != 1 || ov.WeekCount != 2 {
		t.Errorf("overview = %+v", ov)
	}
	if ov.Weeks[0].WeekStart != w2 {
		t.Errorf("weeks not newest first: %v", ov.Weeks)
	}
}
