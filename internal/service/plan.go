package service

import (
	"time"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"
)

// PlanStatus is the banner state derived from the subscription fields.
type PlanStatus int

const (
	PlanActive PlanStatus = iota
	PlanExpiringSoon
	PlanExpired
)

func (p PlanStatus) String() string {
	switch p {
	case PlanActive:
		return "active"
	case PlanExpiringSoon:
		return "expiring_soon"
	default:
		return "expired"
	}
}

// MarshalText lets the status serialize as its name in JSON responses.
func (p PlanStatus) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// EvaluatePlan derives the banner state. Any status other than ativo or
// cancelado means the subscription lapsed. An active subscription whose due
// date falls within avisoDias (or already passed without the backend
// flipping the status yet) shows the expiring warning.
func EvaluatePlan(a domain.Atelie, now time.Time, avisoDias int) PlanStatus {
	if a.Status != "ativo" && a.Status != "cancelado" {
		return PlanExpired
	}
	if a.Status != "ativo" {
		return PlanActive
	}

	venc, ok := parseVencimento(a.DataVencimento)
	if !ok {
		return PlanActive
	}
	if venc.Sub(now) <= time.Duration(avisoDias)*24*time.Hour {
		return PlanExpiringSoon
	}
	return PlanActive
}

// parseVencimento accepts the two timestamp shapes the backend has used.
func parseVencimento(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
