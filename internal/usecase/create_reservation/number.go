package create_reservation

import (
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// NumberGenerator генерирует номер бронирования
type NumberGenerator func() string

// GenerateBookingNumber возвращает номер вида BKG-XXXXXXXX из 8 шестнадцатеричных символов UUID
func GenerateBookingNumber() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return domain.BookingNumberPrefix + strings.ToUpper(hex[:domain.BookingNumberSuffixLength])
}
