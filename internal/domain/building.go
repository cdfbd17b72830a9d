package domain

import "time"

// Building groups facilities under one campus address
type Building struct {
	ID        int64
	Name      string
	Address   *string
	CreatedAt time.Time
}
