package models

// AttendanceStatus defines the possible status values for attendance.
type AttendanceStatus string

const (
	Present AttendanceStatus = "present"
	Absent  AttendanceStatus = "absent"
	Late    AttendanceStatus = "late"
	Excused AttendanceStatus = "excused"
)

// IsValid reports whether the status is one of the four known values.
func (s AttendanceStatus) IsValid() bool {
	switch s {
	case Present, Absent, Late, Excused:
		return true
	}
	return false
}

// DayOfWeek defines the school days available for class schedules.
type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
)

// SchoolDays lists the schedulable weekdays in calendar order.
var SchoolDays = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday}

// Order returns the position of the day within the school week, or -1
// for a day that is not schedulable.
func (d DayOfWeek) Order() int {
	for i, day := range SchoolDays {
		if day == d {
			return i
		}
	}
	return -1
}
