package model

// Member is a resident of the house. DailyData is sparse: a date key exists
// only once something has been recorded for that day. CreatedAt is epoch
// milliseconds, matching the stored blob layout.
type Member struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	RoomNumber     string                `json:"roomNumber"`
	Phone          string                `json:"phone"`
	Password       string                `json:"password"`
	IsContinuousOn bool                  `json:"isContinuousOn"`
	DailyData      map[string]*DayRecord `json:"dailyData"`
	CreatedAt      int64                 `json:"createdAt"`
}

// Day returns the member's record for the given ISO date, or nil.
func (m *Member) Day(date string) *DayRecord {
	return m.DailyData[date]
}

// Clone returns a deep copy of the member.
func (m Member) Clone() Member {
	c := m
	c.DailyData = make(map[string]*DayRecord, len(m.DailyData))
	for date, rec := range m.DailyData {
		c.DailyData[date] = rec.Clone()
	}
	return c
}

// CloneMembers deep-copies a member list. Snapshots handed to subscribers
// and API readers go through this so the canonical list is never shared.
func CloneMembers(members []Member) []Member {
	out := make([]Member, len(members))
	for i, m := range members {
		out[i] = m.Clone()
	}
	return out
}
