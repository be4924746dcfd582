package get_business_bookings

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// date задает один день и имеет приоритет над startDate/endDate.
func ToServiceRequest(businessID, userID int64, query url.Values) (*models.GetBusinessBookingsRequest, error) {
	req := &models.GetBusinessBookingsRequest{
		UserID:     userID,
		BusinessID: businessID,
	}

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := handlers.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
	} else {
		if startStr := query.Get("startDate"); startStr != "" {
			start, err := handlers.ParseDate(startStr)
			if err != nil {
				return nil, err
			}
			req.StartDate = &start
		}
		if endStr := query.Get("endDate"); endStr != "" {
			end, err := handlers.ParseDate(endStr)
			if err != nil {
				return nil, err
			}
			req.EndDate = &end
		}
	}

	if statusStr := query.Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	teamMember, err := handlers.ParseTeamMember(query.Get("teamMember"))
	if err != nil {
		return nil, err
	}
	req.TeamMember = teamMember

	if includeStr := query.Get("includeCancelled"); includeStr != "" {
		include, err := strconv.ParseBool(includeStr)
		if err != nil {
			return nil, fmt.Errorf("%w: includeCancelled=%q", handlers.ErrInvalidParam, includeStr)
		}
		req.IncludeCancelled = include
	}

	return req, nil
}
