// services/clock.go
package services

import (
	"fmt"
	"time"

	"agendador-backend/utils"
)

// Clock supplies the local civil date and time-of-day. The scheduling
// services never call time.Now directly so tests can pin "today".
type Clock interface {
	Today() string // "YYYY-MM-DD"
	Now() string   // "HH:MM"
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

func (SystemClock) Today() string {
	return utils.FormatDate(time.Now())
}

func (SystemClock) Now() string {
	hour, minute, _ := time.Now().Clock()
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
