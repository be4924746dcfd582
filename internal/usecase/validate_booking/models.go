package validate_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на проверку слота перед отправкой формы
type Request struct {
	BusinessID int64
	ServiceID  int64
	Date       time.Time
	Time       types.TimeString
	Quantity   int
	TeamMember *int64
}

// Response результат проверки
type Response struct {
	IsValid         bool
	Reason          string     // код причины отказа, пусто если слот доступен
	Message         string     // сообщение для клиента
	MinimumDateTime *time.Time // минимально допустимый момент при нарушении lead time
}
