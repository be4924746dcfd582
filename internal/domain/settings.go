package domain

import (
	"math"
	"time"
)

// DepositType defines how the deposit amount is computed
type DepositType string

const (
	DepositNone       DepositType = ""
	DepositPercentage DepositType = "percentage"
	DepositFixed      DepositType = "fixed"
)

// DepositConfig describes the deposit required to hold a booking
type DepositConfig struct {
	Enabled            bool        `json:"enabled"`
	Type               DepositType `json:"type"`
	Value              float64     `json:"value"`
	MultiplyByQuantity bool        `json:"multiplyByQuantity"`
}

// Amount returns the deposit for a booking of quantity participants at unit price,
// never exceeding the total price
func (c DepositConfig) Amount(price float64, quantity int) float64 {
	if !c.Enabled || c.Value <= 0 {
		return 0
	}
	if quantity < 1 {
		quantity = 1
	}
	total := price * float64(quantity)

	var amount float64
	switch c.Type {
	case DepositPercentage:
		amount = total * c.Value / 100
	case DepositFixed:
		amount = c.Value
		if c.MultiplyByQuantity {
			amount *= float64(quantity)
		}
	default:
		return 0
	}

	if amount > total {
		amount = total
	}
	return math.Round(amount*100) / 100
}

// BusinessSettings tenant-wide configuration read by the availability engine
type BusinessSettings struct {
	ID                       int64
	BusinessID               int64
	OpeningHours             OpeningHours
	BufferMinutes            int
	MinimumBookingDelayHours int
	Timezone                 string
	Deposit                  DepositConfig

	// Integration flags, opaque to the engine
	StripeEnabled   bool
	BrevoEnabled    bool
	CalendarEnabled bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location returns the business timezone, UTC when it is empty or unknown
func (s *BusinessSettings) Location() *time.Location {
	if s == nil || s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DefaultSettings returns settings used when a business has not configured any
func DefaultSettings(businessID int64) *BusinessSettings {
	hours := OpeningHours{}
	for _, day := range Weekdays {
		if day == "saturday" || day == "sunday" {
			hours[day] = DaySchedule{Closed: true, Ranges: []TimeRange{}}
			continue
		}
		hours[day] = DaySchedule{Ranges: []TimeRange{{Start: DefaultOpenTime, End: DefaultCloseTime}}}
	}

	return &BusinessSettings{
		BusinessID:               businessID,
		OpeningHours:             hours,
		BufferMinutes:            DefaultBufferMinutes,
		MinimumBookingDelayHours: DefaultMinimumBookingDelayHours,
		Timezone:                 DefaultTimezone,
	}
}
