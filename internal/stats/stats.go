// Package stats computes the dashboard aggregates: per-week sums, lifetime
// totals, rankings and summary card numbers. Everything here is pure and
// total over well-formed records; malformed numeric content degrades to 0.
package stats

import (
	"sort"
	"strconv"
	"strings"

	"team-board/internal/model"
)

// TopN is how many members the rankings and trend charts show.
const TopN = 5

// WeekTotal sums the six daily count fields of one week record.
func WeekTotal(w model.WeekData) int {
	return w.Monday + w.Tuesday + w.Wednesday + w.Thursday + w.Friday + w.Saturday
}

// RQTotal sums the five RQ fields of one week record. RQ values are
// free-form strings; empty or non-numeric content counts as 0.
func RQTotal(w model.WeekData) int {
	sum := 0
	for _, field := range model.RQDays {
		sum += coerce(w.RQValue(field))
	}
	return sum
}

func coerce(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// MemberHireTotal sums week totals across every week owned by the member.
func MemberHireTotal(weeks []model.WeekData, memberID string) int {
	sum := 0
	for _, w := range weeks {
		if w.MemberID == memberID {
			sum += WeekTotal(w)
		}
	}
	return sum
}

// MemberRQTotal sums RQ totals across every week owned by the member.
func MemberRQTotal(weeks []model.WeekData, memberID string) int {
	sum := 0
	for _, w := range weeks {
		if w.MemberID == memberID {
			sum += RQTotal(w)
		}
	}
	return sum
}

// MemberTotal pairs a member with a lifetime total.
type MemberTotal struct {
	Member model.Member
	Total  int
}

// TopByHires ranks members descending by lifetime hire total, ties keeping
// input order, truncated to n.
func TopByHires(members []model.Member, weeks []model.WeekData, n int) []MemberTotal {
	return top(members, n, func(m model.Member) int { return MemberHireTotal(weeks, m.ID) })
}

// TopByRQ ranks members descending by lifetime RQ total, ties keeping
// input order, truncated to n.
func TopByRQ(members []model.Member, weeks []model.WeekData, n int) []MemberTotal {
	return top(members, n, func(m model.Member) int { return MemberRQTotal(weeks, m.ID) })
}

func top(members []model.Member, n int, total func(model.Member) int) []MemberTotal {
	ranked := make([]MemberTotal, 0, len(members))
	for _, m := range members {
		ranked = append(ranked, MemberTotal{Member: m, Total: total(m)})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Total > ranked[j].Total })
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
