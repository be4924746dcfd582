package domain

import "github.com/m04kA/SMC-SchedulingService/pkg/types"

// TimeSlot is a derived, never persisted, candidate start time of a day
type TimeSlot struct {
	Time      types.TimeString `json:"time"`
	Available bool             `json:"available"`
}

// DateTime is a calendar date and wall-clock time in the business timezone
type DateTime struct {
	Date string           `json:"date"`
	Time types.TimeString `json:"time"`
}
