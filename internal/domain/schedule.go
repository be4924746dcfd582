package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Weekdays fixed keys of OpeningHours, Monday first
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// TimeRange is an open interval of a day in "HH:MM" wall-clock time
type TimeRange struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// DaySchedule describes one weekday.
// Ranges == nil means the entry predates multi-range support and Start/End are used instead.
// An empty non-nil Ranges closes the day and must survive storage as "[]".
type DaySchedule struct {
	Closed bool        `json:"closed"`
	Ranges []TimeRange `json:"ranges"`

	// Legacy single-range fields
	Start types.TimeString `json:"start,omitempty"`
	End   types.TimeString `json:"end,omitempty"`
}

// OpeningHours maps an English lowercase weekday name to its schedule
type OpeningHours map[string]DaySchedule

// WeekdayKey returns the OpeningHours key for a date
func WeekdayKey(date time.Time) string {
	return strings.ToLower(date.Weekday().String())
}

// IsEmpty returns true if no weekday is configured
func (h OpeningHours) IsEmpty() bool {
	return len(h) == 0
}

// Unavailability blocks a window of a date for one team member or, when AssignedUserID is nil, for everyone
type Unavailability struct {
	ID             int64
	BusinessID     int64
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	AssignedUserID *int64
	Reason         *string
}

// AppliesTo returns true if the window blocks the given team member filter (nil = all members)
func (u *Unavailability) AppliesTo(teamMember *int64) bool {
	if teamMember == nil || u.AssignedUserID == nil {
		return true
	}
	return *u.AssignedUserID == *teamMember
}

// BlockedDateRange excludes whole calendar days, bounds inclusive
type BlockedDateRange struct {
	ID         int64
	BusinessID int64
	StartDate  time.Time
	EndDate    time.Time
	Reason     *string
}

// Contains returns true if the calendar day of date lies within the range
func (r *BlockedDateRange) Contains(date time.Time) bool {
	d := civilDay(date)
	return !d.Before(civilDay(r.StartDate)) && !d.After(civilDay(r.EndDate))
}

// civilDay drops the clock and location so that only the calendar day is compared
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
