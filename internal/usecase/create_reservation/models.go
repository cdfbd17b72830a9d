package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID     int64
	FacilityID int64
	Start      time.Time
	End        time.Time
	Purpose    *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	Reservation *domain.Reservation
}
