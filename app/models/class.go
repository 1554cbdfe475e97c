package models

import (
	"sort"
	"time"
)

// SchedulePeriod is one (weekday, period) slot in a class schedule.
type SchedulePeriod struct {
	Day    DayOfWeek `json:"day" firestore:"day"`
	Period int       `json:"period" firestore:"period"`
}

// Class represents a scheduled class group tied to one course.
// CourseName, Year and Semester are copied from the course at write time
// and are not re-synced when the course is later edited.
type Class struct {
	ID         string           `json:"id" firestore:"-"`
	CourseID   string           `json:"course_id" firestore:"course_id"`
	CourseName string           `json:"course_name" firestore:"course_name"`
	Year       int              `json:"year" firestore:"year"`
	Semester   int              `json:"semester" firestore:"semester"`
	ClassName  string           `json:"class_name" firestore:"class_name"`
	Schedule   []SchedulePeriod `json:"schedule" firestore:"schedule"`
	CreatedAt  time.Time        `json:"created_at" firestore:"created_at"`
}

// FlattenSchedule converts a per-weekday period selection into the stored
// schedule list: unique (day, period) pairs covering all weekdays at once,
// ordered Monday through Friday and by period within each day. Unknown
// days and out-of-range periods are dropped.
func FlattenSchedule(selection map[DayOfWeek][]int) []SchedulePeriod {
	schedule := make([]SchedulePeriod, 0)
	for _, day := range SchoolDays {
		periods := selection[day]
		seen := make(map[int]bool, len(periods))
		for _, p := range periods {
			if p < 1 || p > 8 || seen[p] {
				continue
			}
			seen[p] = true
			schedule = append(schedule, SchedulePeriod{Day: day, Period: p})
		}
	}
	sort.SliceStable(schedule, func(i, j int) bool {
		if schedule[i].Day != schedule[j].Day {
			return schedule[i].Day.Order() < schedule[j].Day.Order()
		}
		return schedule[i].Period < schedule[j].Period
	})
	return schedule
}
