package reconciliation

import (
	"time"

	"github.com/google/uuid"
)

// PeriodStatus is active or closed
type PeriodStatus string

const (
	PeriodActive PeriodStatus = "active"
	PeriodClosed PeriodStatus = "closed"
)

// Period is an externally managed reporting date range
type Period struct {
	ID        uuid.UUID
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Status    PeriodStatus
}

// Contains reports whether date falls within [StartDate, EndDate] by calendar day
func (p *Period) Contains(date time.Time) bool {
	d := dayOf(date)
	return !d.Before(dayOf(p.StartDate)) && !d.After(dayOf(p.EndDate))
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
