package model

// Record kind discriminators carried in the wire "type" field. Each kind is
// its own Go type; the string exists for compatibility with stored records.
const (
	KindMember          = "member"
	KindWeekData        = "week_data"
	KindStructureChange = "structure_change"
)

// Record is implemented by every stored record kind.
type Record interface {
	Kind() string
	RecordID() string
}

// Member is one tracked team participant. LeaderID is a weak reference to
// another member's id; empty means top level.
type Member struct {
	ID       string `gorm:"primaryKey;column:id" json:"id"`
	Type     string `gorm:"column:type" json:"type"`
	Name     string `gorm:"column:name" json:"name"`
	Role     Role   `gorm:"column:role" json:"role"`
	LeaderID string `gorm:"column:leader_id" json:"leader_id"`
}

// WeekData is one member's record for one calendar week. MemberID is the
// authoritative owner reference; the id keeps the <member_id>_<week_start>
// shape for the wire contract. Name, role and leader are snapshots taken
// when the week was created and are not re-derived if the member changes.
type WeekData struct {
	ID          string `gorm:"primaryKey;column:id" json:"id"`
	Type        string `gorm:"column:type" json:"type"`
	MemberID    string `gorm:"index;column:member_id" json:"member_id"`
	Name        string `gorm:"column:name" json:"name"`
	Role        Role   `gorm:"column:role" json:"role"`
	LeaderID    string `gorm:"column:leader_id" json:"leader_id"`
	WeekStart   string `gorm:"primaryKey;column:week_start" json:"week_start"`
	WeekNumber  int    `gorm:"column:week_number" json:"week_number"`
	Year        int    `gorm:"column:year" json:"year"`
	Goal        int    `gorm:"column:goal" json:"goal"`
	Monday      int    `gorm:"column:monday" json:"monday"`
	Tuesday     int    `gorm:"column:tuesday" json:"tuesday"`
	Wednesday   int    `gorm:"column:wednesday" json:"wednesday"`
	Thursday    int    `gorm:"column:thursday" json:"thursday"`
	Friday      int    `gorm:"column:friday" json:"friday"`
	Saturday    int    `gorm:"column:saturday" json:"saturday"`
	RQMonday    string `gorm:"column:rq_monday" json:"rq_monday"`
	RQTuesday   string `gorm:"column:rq_tuesday" json:"rq_tuesday"`
	RQWednesday string `gorm:"column:rq_wednesday" json:"rq_wednesday"`
	RQThursday  string `gorm:"column:rq_thursday" json:"rq_thursday"`
	RQFriday    string `gorm:"column:rq_friday" json:"rq_friday"`
	RQNotes     string `gorm:"column:rq_notes" json:"rq_notes"`
}

// StructureChange is an append-only log entry for a membership event.
type StructureChange struct {
	ID        string `gorm:"primaryKey;column:id" json:"id"`
	Type      string `gorm:"column:type" json:"type"`
	Action    string `gorm:"column:action" json:"action"`
	Details   string `gorm:"column:details" json:"details"`
	Timestamp string `gorm:"column:timestamp" json:"timestamp"`
}

func (Member) TableName() string          { return "members" }
func (WeekData) TableName() string        { return "weeks" }
func (StructureChange) TableName() string { return "changes" }

func (Member) Kind() string          { return KindMember }
func (WeekData) Kind() string        { return KindWeekData }
func (StructureChange) Kind() string { return KindStructureChange }

func (m Member) RecordID() string          { return m.ID }
func (w WeekData) RecordID() string        { return w.ID }
func (c StructureChange) RecordID() string { return c.ID }

// UpdateRef marks week records as addressed by the compound (id, week_start)
// key on the update path.
func (w WeekData) UpdateRef() (id, weekStart string) { return w.ID, w.WeekStart }
