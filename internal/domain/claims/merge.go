package claims

import "github.com/jhoicas/Reembolsos-api/internal/domain/entity"

// MergeClaims funde reclamos potenciales recién detectados con la lista
// persistida del scope.
//
// Reglas:
//   - Si hubo ingesta fresca de aprobados (freshApproved != nil), el subconjunto
//     aprobado existente se reemplaza completo por ella: los datos aprobados son
//     source-of-truth, nunca se mergean incrementalmente.
//   - Cada potencial nuevo se omite si ya existe un registro abierto
//     (potential/pending) con la misma clave (sku, shipmentId, tipo). Esto hace
//     el merge idempotente entre ciclos de fetch repetidos.
//   - Los potenciales existentes nunca se borran aquí.
//
// Es una función pura: computa la lista nueva completa; la escritura atómica
// (lista + resumen en un solo write) es responsabilidad del caller.
func MergeClaims(existing, newPotential, freshApproved []entity.ReimbursementRecord) []entity.ReimbursementRecord {
	merged := make([]entity.ReimbursementRecord, 0, len(existing)+len(newPotential)+len(freshApproved))

	if freshApproved != nil {
		for _, r := range existing {
			if r.Status != entity.StatusApproved {
				merged = append(merged, r)
			}
		}
		merged = append(merged, freshApproved...)
	} else {
		merged = append(merged, existing...)
	}

	openKeys := make(map[string]struct{})
	for _, r := range merged {
		if r.IsOpen() {
			openKeys[r.MergeKey()] = struct{}{}
		}
	}

	for _, r := range newPotential {
		if _, dup := openKeys[r.MergeKey()]; dup {
			continue
		}
		merged = append(merged, r)
		openKeys[r.MergeKey()] = struct{}{}
	}

	return merged
}
