package get_availability

import (
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	getAvailability "github.com/m04kA/SMC-FacilityBooking/internal/usecase/get_availability"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime string `json:"startTime"` // RFC 3339
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// AvailabilityResponse HTTP модель ответа
type AvailabilityResponse struct {
	FacilityID  int64          `json:"facilityId"`
	Date        string         `json:"date"`      // "2026-10-19"
	OpenTime    string         `json:"openTime"`  // "08:00"
	CloseTime   string         `json:"closeTime"` // "22:00"
	SlotMinutes int            `json:"slotMinutes"`
	FreeSlots   int            `json:"freeSlots"`
	Slots       []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		FacilityID:  resp.FacilityID,
		Date:        resp.Date.Format(domain.DateFormat),
		OpenTime:    resp.OpenTime,
		CloseTime:   resp.CloseTime,
		SlotMinutes: resp.SlotMinutes,
		Slots:       make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, slot := range resp.Slots {
		if slot.IsFree() {
			out.FreeSlots++
		}
		out.Slots = append(out.Slots, SlotResponse{
			StartTime: slot.Start.Format(time.RFC3339),
			EndTime:   slot.End.Format(time.RFC3339),
			Available: slot.IsFree(),
		})
	}

	return out
}
