package claims_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reembolsos-api/internal/domain/claims"
	"github.com/jhoicas/Reembolsos-api/internal/domain/entity"
)

func potencial(sku, shipmentID string, amount int64) entity.ReimbursementRecord {
	return entity.ReimbursementRecord{
		SKU:               sku,
		ShipmentID:        shipmentID,
		ReimbursementType: entity.TypeInboundShipment,
		Status:            entity.StatusPotential,
		Amount:            decimal.NewFromInt(amount),
	}
}

func aprobado(id string, amount int64) entity.ReimbursementRecord {
	return entity.ReimbursementRecord{
		ReimbursementID:   id,
		ReimbursementType: entity.TypeLost,
		Status:            entity.StatusApproved,
		Amount:            decimal.NewFromInt(amount),
		IsAutomated:       true,
	}
}

// Idempotencia: mergear dos veces los mismos potenciales produce la misma
// lista que mergear una vez (dedupe por (sku, shipmentId, tipo)).
func TestMergeClaims_Idempotente(t *testing.T) {
	nuevos := []entity.ReimbursementRecord{
		potencial("SKU-1", "S1", 40),
		potencial("SKU-2", "S1", 10),
	}

	una := claims.MergeClaims(nil, nuevos, nil)
	require.Len(t, una, 2)

	dos := claims.MergeClaims(una, nuevos, nil)
	assert.Len(t, dos, 2, "repetir el ciclo de fetch no debe duplicar potenciales")
}

// Misma clave pero distinto tipo no es duplicado.
func TestMergeClaims_ClavePorTipo(t *testing.T) {
	existente := potencial("SKU-1", "S1", 40)
	distintoTipo := potencial("SKU-1", "S1", 40)
	distintoTipo.ReimbursementType = entity.TypeDamaged

	merged := claims.MergeClaims([]entity.ReimbursementRecord{existente},
		[]entity.ReimbursementRecord{distintoTipo}, nil)
	assert.Len(t, merged, 2)
}

// La ingesta fresca de aprobados reemplaza completo el subconjunto aprobado;
// los potenciales existentes sobreviven intactos.
func TestMergeClaims_AprobadosSeReemplazan(t *testing.T) {
	existente := []entity.ReimbursementRecord{
		aprobado("R-1", 100),
		aprobado("R-2", 50),
		potencial("SKU-1", "S1", 40),
	}
	frescos := []entity.ReimbursementRecord{aprobado("R-3", 120)}

	merged := claims.MergeClaims(existente, nil, frescos)
	require.Len(t, merged, 2)

	var ids []string
	for _, r := range merged {
		if r.Status == entity.StatusApproved {
			ids = append(ids, r.ReimbursementID)
		}
	}
	assert.Equal(t, []string{"R-3"}, ids, "los aprobados viejos no se mergean, se sustituyen")
}

// freshApproved nil significa "no hubo ingesta": los aprobados existentes quedan.
func TestMergeClaims_SinIngestaFresca(t *testing.T) {
	existente := []entity.ReimbursementRecord{aprobado("R-1", 100)}
	merged := claims.MergeClaims(existente, []entity.ReimbursementRecord{potencial("SKU-9", "S9", 5)}, nil)
	require.Len(t, merged, 2)
	assert.Equal(t, "R-1", merged[0].ReimbursementID)
}

// Un registro terminal (denied) con la misma clave no bloquea un potencial nuevo.
func TestMergeClaims_TerminalNoBloqueaNuevoPotencial(t *testing.T) {
	negado := potencial("SKU-1", "S1", 40)
	negado.Status = entity.StatusDenied

	merged := claims.MergeClaims([]entity.ReimbursementRecord{negado},
		[]entity.ReimbursementRecord{potencial("SKU-1", "S1", 40)}, nil)
	assert.Len(t, merged, 2)
}
