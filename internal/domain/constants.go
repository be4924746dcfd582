package domain

import "github.com/m04kA/SMC-SchedulingService/pkg/types"

// Default configuration values
const (
	DefaultSlotStepMinutes          = 30
	DefaultBufferMinutes            = 0
	DefaultMinimumBookingDelayHours = 0
	DefaultTimezone                 = "UTC"
	DefaultOpenTime                 = types.TimeString("09:00")
	DefaultCloseTime                = types.TimeString("18:00")
)

// Business validation constants
const (
	MinSlotStepMinutes          = 5
	MaxSlotStepMinutes          = 240
	MaxMinimumBookingDelayHours = 8760 // 1 year
	MaxBufferMinutes            = 240
	MaxBookingQuantity          = 100
	MaxNotesLength              = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Booking origins
const (
	OriginPublic = "public"
	OriginStaff  = "staff"
)

// Permission actions checked against the authorization oracle
const (
	ActionBookingCreate  = "booking.create"
	ActionBookingRead    = "booking.read"
	ActionBookingCancel  = "booking.cancel"
	ActionBookingUpdate  = "booking.update"
	ActionSettingsRead   = "settings.read"
	ActionSettingsUpdate = "settings.update"
)
