package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	UserID      *int64    // ID сотрудника, nil для публичного запроса
	BusinessID  int64     // ID бизнеса
	ServiceID   int64     // ID услуги
	Date        time.Time // Дата (без времени)
	TeamMember  *int64    // Фильтр по сотруднику, nil = все
	StepMinutes int       // Шаг сетки, 0 = значение из конфига
}

// IsPublic возвращает true для запроса клиента без авторизации
func (r *Request) IsPublic() bool {
	return r.UserID == nil
}

// Response модель ответа со списком слотов
type Response struct {
	Date       time.Time         // Дата, на которую запрашивались слоты
	BusinessID int64             // ID бизнеса
	ServiceID  int64             // ID услуги
	Slots      []domain.TimeSlot // Все слоты дня с признаком доступности
}
