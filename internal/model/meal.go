package model

import "fmt"

// MealType identifies one of the three daily meals.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
)

// AllMealTypes returns the meal types in their fixed daily order.
func AllMealTypes() []MealType {
	return []MealType{Breakfast, Lunch, Dinner}
}

// ParseMealType validates a meal type string.
func ParseMealType(s string) (MealType, error) {
	switch MealType(s) {
	case Breakfast, Lunch, Dinner:
		return MealType(s), nil
	}
	return "", fmt.Errorf("unknown meal type %q", s)
}

// DayRecord holds one member's meal state for one calendar date.
type DayRecord struct {
	Note        string            `json:"note"`
	NoteHistory []string          `json:"noteHistory"`
	MealStatus  map[MealType]bool `json:"mealStatus"`
	GuestMeals  map[MealType]int  `json:"guestMeals"`
}

// NewDayRecord returns the default record for an untouched date:
// all three meals on, no guests, empty note.
func NewDayRecord() *DayRecord {
	return &DayRecord{
		NoteHistory: []string{},
		MealStatus:  map[MealType]bool{Breakfast: true, Lunch: true, Dinner: true},
		GuestMeals:  map[MealType]int{Breakfast: 0, Lunch: 0, Dinner: 0},
	}
}

// Clone returns a deep copy of the record.
func (r *DayRecord) Clone() *DayRecord {
	c := &DayRecord{
		Note:        r.Note,
		NoteHistory: make([]string, len(r.NoteHistory)),
		MealStatus:  make(map[MealType]bool, len(r.MealStatus)),
		GuestMeals:  make(map[MealType]int, len(r.GuestMeals)),
	}
	copy(c.NoteHistory, r.NoteHistory)
	for m, on := range r.MealStatus {
		c.MealStatus[m] = on
	}
	for m, n := range r.GuestMeals {
		c.GuestMeals[m] = n
	}
	return c
}

// SummaryStats is the projected meal count per type for one date.
// It is derived on demand and never persisted.
type SummaryStats struct {
	Breakfast int `json:"breakfast"`
	Lunch     int `json:"lunch"`
	Dinner    int `json:"dinner"`
}

// Get returns the count for the given meal type.
func (s SummaryStats) Get(m MealType) int {
	switch m {
	case Breakfast:
		return s.Breakfast
	case Lunch:
		return s.Lunch
	case Dinner:
		return s.Dinner
	}
	return 0
}

// Add increases the count for the given meal type.
func (s *SummaryStats) Add(m MealType, n int) {
	switch m {
	case Breakfast:
		s.Breakfast += n
	case Lunch:
		s.Lunch += n
	case Dinner:
		s.Dinner += n
	}
}
