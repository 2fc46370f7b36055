// Package summary derives the projected meal counts the kitchen must
// prepare for a given date.
package summary

import "github.com/dukerupert/mealbook/internal/model"

// Compute totals each member's contribution for the given date key.
//
// A member whose master switch is off contributes only the guest meals
// already recorded for that date; their own meals count zero no matter what
// the day's statuses say. An active member with a record contributes one
// meal per enabled status plus guests. An active member with no record for
// the date is assumed to be eating all three meals.
func Compute(members []model.Member, date string) model.SummaryStats {
	var stats model.SummaryStats

	for i := range members {
		m := &members[i]
		day := m.Day(date)

		if !m.IsContinuousOn {
			if day != nil {
				for _, meal := range model.AllMealTypes() {
					stats.Add(meal, day.GuestMeals[meal])
				}
			}
			continue
		}

		if day != nil {
			for _, meal := range model.AllMealTypes() {
				if day.MealStatus[meal] {
					stats.Add(meal, 1)
				}
				stats.Add(meal, day.GuestMeals[meal])
			}
			continue
		}

		for _, meal := range model.AllMealTypes() {
			stats.Add(meal, 1)
		}
	}

	return stats
}
