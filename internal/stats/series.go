package stats

import (
	"sort"
	"time"

	"team-board/internal/model"
	"team-board/internal/week"
)

// Point is one chart sample: x is the DD.MM week label, y the metric value.
type Point struct {
	X string `json:"x"`
	Y int    `json:"y"`
}

// Series is one labeled chart line.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"data"`
}

// Metric computes one number from a week record; WeekTotal and RQTotal are
// the two used by the dashboard.
type Metric func(model.WeekData) int

// DistinctWeekStarts returns the distinct week_start values in first-seen
// order.
func DistinctWeekStarts(weeks []model.WeekData) []string {
	seen := make(map[string]bool, len(weeks))
	var out []string
	for _, w := range weeks {
		if !seen[w.WeekStart] {
			seen[w.WeekStart] = true
			out = append(out, w.WeekStart)
		}
	}
	return out
}

// WeekCount is how many distinct weeks of history exist.
func WeekCount(weeks []model.WeekData) int {
	return len(DistinctWeekStarts(weeks))
}

// LatestWeeks selects the k most recent distinct week_start values and
// returns them in chronological order for plotting.
func LatestWeeks(weeks []model.WeekData, k int) []string {
	starts := DistinctWeekStarts(weeks)
	sort.SliceStable(starts, func(i, j int) bool {
		return startTime(starts[i]).After(startTime(starts[j]))
	})
	if len(starts) > k {
		starts = starts[:k]
	}
	// Reverse into ascending order.
	for i, j := 0, len(starts)-1; i < j; i, j = i+1, j-1 {
		starts[i], starts[j] = starts[j], starts[i]
	}
	return starts
}

func startTime(s string) time.Time {
	t, err := week.ParseStart(s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// MemberSeries builds one chart line for a member over the given ordered
// week_start values. Weeks without a record for the member plot as 0.
func MemberSeries(member model.Member, weeks []model.WeekData, starts []string, metric Metric) Series {
	byStart := make(map[string]model.WeekData, len(weeks))
	for _, w := range weeks {
		if w.MemberID == member.ID {
			byStart[w.WeekStart] = w
		}
	}
	points := make([]Point, 0, len(starts))
	for _, start := range starts {
		y := 0
		if w, ok := byStart[start]; ok {
			y = metric(w)
		}
		points = append(points, Point{X: week.LabelValue(start), Y: y})
	}
	return Series{Name: member.Name, Points: points}
}

// TopMemberSeries builds one line per ranked member.
func TopMemberSeries(ranked []MemberTotal, weeks []model.WeekData, starts []string, metric Metric) []Series {
	out := make([]Series, 0, len(ranked))
	for _, mt := range ranked {
		out = append(out, MemberSeries(mt.Member, weeks, starts, metric))
	}
	return out
}

// TeamSeries builds one line summing the metric over every member per week.
func TeamSeries(name string, weeks []model.WeekData, starts []string, metric Metric) Series {
	totals := make(map[string]int, len(starts))
	for _, w := range weeks {
		totals[w.WeekStart] += metric(w)
	}
	points := make([]Point, 0, len(starts))
	for _, start := range starts {
		points = append(points, Point{X: week.LabelValue(start), Y: totals[start]})
	}
	return Series{Name: name, Points: points}
}
