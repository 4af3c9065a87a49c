package model

import "errors"

type Role string

const (
	RoleNS              Role = "NS"
	RoleBrandAmbassador Role = "Brand Ambassador"
	RoleLeader          Role = "Leader"
	RoleCrewLeader      Role = "Crew Leader"
	RoleAssistant       Role = "Assistant"
)

// Roles lists every assignable role in display order.
var Roles = []Role{RoleNS, RoleBrandAmbassador, RoleLeader, RoleCrewLeader, RoleAssistant}

// RoleColors maps roles to the UI color keys exposed to clients.
var RoleColors = map[Role]string{
	RoleNS:              "role-ns",
	RoleBrandAmbassador: "role-brand",
	RoleLeader:          "role-leader",
	RoleCrewLeader:      "role-crew",
	RoleAssistant:       "role-assistant",
}

// Days are the daily count fields of a week record, Monday through Saturday.
var Days = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// DayNames are the display labels matching Days.
var DayNames = []string{"Pon", "Wt", "Śr", "Czw", "Pt", "Sob"}

// RQDays are the RQ metric fields, Monday through Friday.
var RQDays = []string{"rq_monday", "rq_tuesday", "rq_wednesday", "rq_thursday", "rq_friday"}

// RQDayNames are the display labels matching RQDays.
var RQDayNames = []string{"Pon", "Wt", "Śr", "Czw", "Pt"}

var (
	ErrMissingField = errors.New("missing required field")
	ErrUnknownRole  = errors.New("unknown role")
)

func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Validate checks field presence on a member record.
func (m Member) Validate() error {
	if m.ID == "" || m.Name == "" {
		return ErrMissingField
	}
	if !m.Role.Valid() {
		return ErrUnknownRole
	}
	return nil
}

// Validate checks field presence on a week record.
func (w WeekData) Validate() error {
	if w.ID == "" || w.MemberID == "" || w.WeekStart == "" {
		return ErrMissingField
	}
	return nil
}

// Validate checks field presence on a change entry.
func (c StructureChange) Validate() error {
	if c.ID == "" || c.Action == "" || c.Timestamp == "" {
		return ErrMissingField
	}
	return nil
}

// DayCount returns the daily count for one of the Days fields, 0 for an
// unknown field name.
func (w WeekData) DayCount(field string) int {
	switch field {
	case "monday":
		return w.Monday
	case "tuesday":
		return w.Tuesday
	case "wednesday":
		return w.Wednesday
	case "thursday":
		return w.Thursday
	case "friday":
		return w.Friday
	case "saturday":
		return w.Saturday
	}
	return 0
}

// RQValue returns the raw RQ string for one of the RQDays fields.
func (w WeekData) RQValue(field string) string {
	switch field {
	case "rq_monday":
		return w.RQMonday
	case "rq_tuesday":
		return w.RQTuesday
	case "rq_wednesday":
		return w.RQWednesday
	case "rq_thursday":
		return w.RQThursday
	case "rq_friday":
		return w.RQFriday
	}
	return ""
}

// memberColumns and weekColumns whitelist patchable columns for the
// merge-patch update path.
var memberColumns = map[string]bool{
	"name": true, "role": true, "leader_id": true,
}

var weekColumns = map[string]bool{
	"name": true, "role": true, "leader_id": true, "week_number": true,
	"year": true, "goal": true, "monday": true, "tuesday": true,
	"wednesday": true, "thursday": true, "friday": true, "saturday": true,
	"rq_monday": true, "rq_tuesday": true, "rq_wednesday": true,
	"rq_thursday": true, "rq_friday": true, "rq_notes": true,
}

// FilterMemberPatch drops non-updatable keys from a member merge patch.
func FilterMemberPatch(patch map[string]any) map[string]any {
	return filterPatch(patch, memberColumns)
}

// FilterWeekPatch drops non-updatable keys from a week merge patch.
func FilterWeekPatch(patch map[string]any) map[string]any {
	return filterPatch(patch, weekColumns)
}

func filterPatch(patch map[string]any, allowed map[string]bool) map[string]any {
	out := make(map[string]any, len(patch))
	for k, v := range patch {
		if allowed[k] {
			out[k] = v
		}
	}
	return out
}
