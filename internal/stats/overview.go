package stats

import (
	"sort"

	"team-board/internal/model"
)

// Summary holds the dashboard stat-card numbers.
type Summary struct {
	TotalRQ       int `json:"total_rq"`
	CurrentWeekRQ int `json:"current_week_rq"`
	MemberCount   int `json:"member_count"`
	WeekCount     int `json:"week_count"`
}

// Summarize computes the RQ stat cards: lifetime RQ across the whole team,
// RQ in the most recent week, member count and distinct week count.
func Summarize(members []model.Member, weeks []model.WeekData) Summary {
	s := Summary{MemberCount: len(members), WeekCount: WeekCount(weeks)}
	for _, w := range weeks {
		s.TotalRQ += RQTotal(w)
	}
	latest := LatestWeeks(weeks, 1)
	if len(latest) == 1 {
		for _, w := range weeks {
			if w.WeekStart == latest[0] {
				s.CurrentWeekRQ += RQTotal(w)
			}
		}
	}
	return s
}

// MemberOverview is the per-member stats view: lifetime totals and the
// member's weeks, newest first.
type MemberOverview struct {
	Member     model.Member     `json:"member"`
	TotalHired int              `json:"total_hired"`
	TotalRQ    int              `json:"total_rq"`
	WeekCount  int              `json:"week_count"`
	Weeks      []model.WeekData `json:"weeks"`
}

// Overview gathers one member's stats from the full week set.
func Overview(member model.Member, weeks []model.WeekData) MemberOverview {
	var mine []model.WeekData
	for _, w := range weeks {
		if w.MemberID == member.ID {
			mine = append(mine, w)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		return startTime(mine[i].WeekStart).After(startTime(mine[j].WeekStart))
	})
	ov := MemberOverview{Member: member, WeekCount: len(mine), Weeks: mine}
	for _, w := range mine {
		ov.TotalHired += WeekTotal(w)
		ov.TotalRQ += RQTotal(w)
	}
	return ov
}
