package claims

import (
	"time"

	"github.com/jhoicas/Reembolsos-api/internal/domain/entity"
)

// BuildSummary recalcula la proyección agregada del scope a partir de la lista
// completa de reclamos. Siempre recomputada entera tras cada merge — nunca
// parchada incrementalmente — para que no pueda divergir de la lista.
func BuildSummary(scope entity.Scope, records []entity.ReimbursementRecord, now time.Time) *entity.ClaimSummary {
	s := entity.NewClaimSummary(scope)
	s.ComputedAt = now
	s.TotalClaims = len(records)

	for _, r := range records {
		switch r.Status {
		case entity.StatusApproved:
			s.TotalReceived = s.TotalReceived.Add(r.Amount)
		case entity.StatusPending:
			s.TotalPending = s.TotalPending.Add(r.Amount)
		case entity.StatusPotential:
			s.TotalPotential = s.TotalPotential.Add(r.Amount)
		case entity.StatusDenied:
			s.TotalDenied = s.TotalDenied.Add(r.Amount)
		}

		bd := s.ByType[r.ReimbursementType]
		bd.Count++
		bd.Amount = bd.Amount.Add(r.Amount)
		s.ByType[r.ReimbursementType] = bd

		if r.Status == entity.StatusApproved {
			if d := r.EffectiveDate(); d != nil {
				age := now.Sub(*d)
				if age >= 0 {
					if age <= 7*24*time.Hour {
						s.ReceivedLast7Days = s.ReceivedLast7Days.Add(r.Amount)
					}
					if age <= 30*24*time.Hour {
						s.ReceivedLast30Days = s.ReceivedLast30Days.Add(r.Amount)
					}
					if age <= 90*24*time.Hour {
						s.ReceivedLast90Days = s.ReceivedLast90Days.Add(r.Amount)
					}
				}
			}
		}

		if r.Status == entity.StatusPotential && r.ExpiryDate != nil {
			until := r.ExpiryDate.Sub(now)
			if until > 0 {
				if until <= 7*24*time.Hour {
					s.ClaimsExpiringIn7Days++
				}
				if until <= 30*24*time.Hour {
					s.ClaimsExpiringIn30Days++
				}
			}
		}

		if r.IsAutomated {
			s.AutomatedCount++
		} else {
			s.ManualCount++
		}
	}

	return s
}
