package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// TimeRange интервал рабочего времени "HH:MM"-"HH:MM"
type TimeRange struct {
	Start string `json:"start" validate:"required,hhmm"`
	End   string `json:"end" validate:"required,hhmm"`
}

// DaySchedule расписание одного дня недели
type DaySchedule struct {
	Closed bool        `json:"closed"`
	Ranges []TimeRange `json:"ranges" validate:"omitempty,dive"`
	Start  string      `json:"start,omitempty" validate:"omitempty,hhmm"` // legacy
	End    string      `json:"end,omitempty" validate:"omitempty,hhmm"`   // legacy
}

// Deposit настройки предоплаты
type Deposit struct {
	Enabled            bool    `json:"enabled"`
	Type               string  `json:"type" validate:"omitempty,oneof=percentage fixed"`
	Value              float64 `json:"value" validate:"gte=0"`
	MultiplyByQuantity bool    `json:"multiplyByQuantity"`
}

// Request модели

// UpdateSettingsRequest запрос на полную замену настроек бизнеса
type UpdateSettingsRequest struct {
	UserID     int64 `json:"-"`
	BusinessID int64 `json:"-"`

	OpeningHours             map[string]DaySchedule `json:"openingHours" validate:"required,dive,keys,oneof=monday tuesday wednesday thursday friday saturday sunday,endkeys"`
	BufferMinutes            int                    `json:"bufferMinutes" validate:"gte=0,lte=240"`
	MinimumBookingDelayHours int                    `json:"minimumBookingDelayHours" validate:"gte=0,lte=8760"`
	Timezone                 string                 `json:"timezone" validate:"required,timezone"`
	Deposit                  Deposit                `json:"deposit"`

	StripeEnabled   bool `json:"stripeEnabled"`
	BrevoEnabled    bool `json:"brevoEnabled"`
	CalendarEnabled bool `json:"calendarEnabled"`
}

// ToDomainSettings конвертирует request в domain модель
func (r *UpdateSettingsRequest) ToDomainSettings() *domain.BusinessSettings {
	return &domain.BusinessSettings{
		BusinessID:               r.BusinessID,
		OpeningHours:             toDomainHours(r.OpeningHours),
		BufferMinutes:            r.BufferMinutes,
		MinimumBookingDelayHours: r.MinimumBookingDelayHours,
		Timezone:                 r.Timezone,
		Deposit: domain.DepositConfig{
			Enabled:            r.Deposit.Enabled,
			Type:               domain.DepositType(r.Deposit.Type),
			Value:              r.Deposit.Value,
			MultiplyByQuantity: r.Deposit.MultiplyByQuantity,
		},
		StripeEnabled:   r.StripeEnabled,
		BrevoEnabled:    r.BrevoEnabled,
		CalendarEnabled: r.CalendarEnabled,
	}
}

func toDomainHours(days map[string]DaySchedule) domain.OpeningHours {
	hours := make(domain.OpeningHours, len(days))
	for key, day := range days {
		schedule := domain.DaySchedule{
			Closed: day.Closed,
			Start:  types.TimeString(day.Start),
			End:    types.TimeString(day.End),
		}
		if day.Ranges != nil {
			schedule.Ranges = make([]domain.TimeRange, 0, len(day.Ranges))
			for _, r := range day.Ranges {
				schedule.Ranges = append(schedule.Ranges, domain.TimeRange{
					Start: types.TimeString(r.Start),
					End:   types.TimeString(r.End),
				})
			}
		}
		hours[key] = schedule
	}
	return hours
}

// Response модели

// SettingsResponse ответ с настройками бизнеса
type SettingsResponse struct {
	BusinessID               int64                  `json:"businessId"`
	OpeningHours             map[string]DaySchedule `json:"openingHours"`
	BufferMinutes            int                    `json:"bufferMinutes"`
	MinimumBookingDelayHours int                    `json:"minimumBookingDelayHours"`
	Timezone                 string                 `json:"timezone"`
	Deposit                  Deposit                `json:"deposit"`
	StripeEnabled            bool                   `json:"stripeEnabled"`
	BrevoEnabled             bool                   `json:"brevoEnabled"`
	CalendarEnabled          bool                   `json:"calendarEnabled"`
	IsDefault                bool                   `json:"isDefault"` // бизнес еще не сохранял настройки

	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.BusinessSettings, isDefault bool) *SettingsResponse {
	days := make(map[string]DaySchedule, len(s.OpeningHours))
	for key, day := range s.OpeningHours {
		dto := DaySchedule{Closed: day.Closed, Start: day.Start.String(), End: day.End.String()}
		if day.Ranges != nil {
			dto.Ranges = make([]TimeRange, 0, len(day.Ranges))
			for _, r := range day.Ranges {
				dto.Ranges = append(dto.Ranges, TimeRange{Start: r.Start.String(), End: r.End.String()})
			}
		}
		days[key] = dto
	}

	resp := &SettingsResponse{
		BusinessID:               s.BusinessID,
		OpeningHours:             days,
		BufferMinutes:            s.BufferMinutes,
		MinimumBookingDelayHours: s.MinimumBookingDelayHours,
		Timezone:                 s.Timezone,
		Deposit: Deposit{
			Enabled:            s.Deposit.Enabled,
			Type:               string(s.Deposit.Type),
			Value:              s.Deposit.Value,
			MultiplyByQuantity: s.Deposit.MultiplyByQuantity,
		},
		StripeEnabled:   s.StripeEnabled,
		BrevoEnabled:    s.BrevoEnabled,
		CalendarEnabled: s.CalendarEnabled,
		IsDefault:       isDefault,
	}

	if !s.CreatedAt.IsZero() {
		resp.CreatedAt = &s.CreatedAt
	}
	if !s.UpdatedAt.IsZero() {
		resp.UpdatedAt = &s.UpdatedAt
	}

	return resp
}
