package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenSchedule(t *testing.T) {
	selection := map[DayOfWeek][]int{
		Wednesday: {5, 2},
		Monday:    {3, 1, 3}, // duplicate period
		Friday:    {8},
	}

	schedule := FlattenSchedule(selection)

	assert.Equal(t, []SchedulePeriod{
		{Day: Monday, Period: 1},
		{Day: Monday, Period: 3},
		{Day: Wednesday, Period: 2},
		{Day: Wednesday, Period: 5},
		{Day: Friday, Period: 8},
	}, schedule)
}

func TestFlattenScheduleDropsInvalidSlots(t *testing.T) {
	selection := map[DayOfWeek][]int{
		Monday:              {0, 9, 4},
		DayOfWeek("sunday"): {1},
	}

	schedule := FlattenSchedule(selection)

	assert.Equal(t, []SchedulePeriod{{Day: Monday, Period: 4}}, schedule)
}

func TestFlattenScheduleEmpty(t *testing.T) {
	assert.Empty(t, FlattenSchedule(nil))
	assert.Empty(t, FlattenSchedule(map[DayOfWeek][]int{}))
}

func TestAttendanceStatusIsValid(t *testing.T) {
	for _, status := range []AttendanceStatus{Present, Absent, Late, Excused} {
		assert.True(t, status.IsValid(), status)
	}
	assert.False(t, AttendanceStatus("tardy").IsValid())
	assert.False(t, AttendanceStatus("").IsValid())
}
