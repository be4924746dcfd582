package get_next_available

import "github.com/m04kA/SMC-SchedulingService/internal/domain"

// Response ближайший момент, который пройдет проверку lead time
type Response struct {
	BusinessID               int64
	Next                     domain.DateTime
	MinimumBookingDelayHours int
	Timezone                 string
}
