package get_availability

import (
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// generateSlots делит окно [windowStart, windowEnd) на последовательные слоты длиной slotMinutes
// Последний слот обрезается по windowEnd, так что окно покрывается без пропусков
func generateSlots(windowStart, windowEnd time.Time, slotMinutes int) []domain.AvailabilitySlot {
	if slotMinutes <= 0 || !windowStart.Before(windowEnd) {
		return []domain.AvailabilitySlot{}
	}

	step := time.Duration(slotMinutes) * time.Minute
	slots := make([]domain.AvailabilitySlot, 0, int(windowEnd.Sub(windowStart)/step)+1)

	for slotStart := windowStart; slotStart.Before(windowEnd); slotStart = slotStart.Add(step) {
		slotEnd := slotStart.Add(step)
		if slotEnd.After(windowEnd) {
			slotEnd = windowEnd
		}
		slots = append(slots, domain.AvailabilitySlot{Start: slotStart, End: slotEnd})
	}

	return slots
}

// markOccupied помечает занятыми слоты, которые уже начались к моменту now
// или пересекаются с активным бронированием
//
// Примеры для слота 11:30-12:00:
// - бронирование 11:20-11:40 → занят
// - бронирование 11:00-11:30 → свободен (граничат)
// - бронирование 12:00-12:30 → свободен (граничат)
func markOccupied(slots []domain.AvailabilitySlot, reservations []*domain.Reservation, now time.Time) {
	for i := range slots {
		if slots[i].Start.Before(now) {
			slots[i].Occupied = true
			continue
		}

		for _, reservation := range reservations {
			if !reservation.IsActive() {
				continue
			}
			if reservation.Overlaps(slots[i].Start, slots[i].End) {
				slots[i].Occupied = true
				break
			}
		}
	}
}
