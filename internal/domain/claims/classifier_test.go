package claims_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Reembolsos-api/internal/domain/claims"
	"github.com/jhoicas/Reembolsos-api/internal/domain/entity"
)

// El clasificador debe ser total y determinista: toda entrada mapea a
// exactamente una categoría, sin coincidencia → OTHER.
func TestClassifyReason_CategoriasConocidas(t *testing.T) {
	cases := []struct {
		code, desc string
		want       entity.ReimbursementType
	}{
		{"Lost_warehouse", "", entity.TypeLost},
		{"LOST_INBOUND", "", entity.TypeLost}, // "lost" gana sobre "inbound" por orden de grupos
		{"Damaged_warehouse", "", entity.TypeWarehouseDamage},
		{"WAREHOUSE DAMAGE", "", entity.TypeWarehouseDamage},
		{"Damaged:Inbound", "", entity.TypeDamaged},
		{"CustomerReturns", "", entity.TypeCustomerReturn},
		{"", "Reembolso por customer return extraviado", entity.TypeCustomerReturn},
		{"RemovalOrder_Lost", "", entity.TypeRemovalOrder}, // "removal" se evalúa antes que "lost"
		{"Fee_Correction", "", entity.TypeFeeCorrection},
		{"INCORRECT_FEE", "", entity.TypeFeeCorrection},
		{"MISSING_FROM_INBOUND", "", entity.TypeInboundShipment},
		{"", "shipment shortage", entity.TypeInboundShipment},
		{"INVENTORY_ADJUSTMENT", "", entity.TypeInventoryDifference},
		{"REVERSAL_REIMBURSEMENT", "", entity.TypeOther},
		{"", "", entity.TypeOther},
	}

	for _, tc := range cases {
		got := claims.ClassifyReason(tc.code, tc.desc)
		assert.Equal(t, tc.want, got, "code=%q desc=%q", tc.code, tc.desc)
	}
}

func TestClassifyReason_CaseInsensitive(t *testing.T) {
	assert.Equal(t, claims.ClassifyReason("lost_WAREHOUSE", ""), claims.ClassifyReason("LOST_warehouse", ""))
}

func TestIsLostWarehouse(t *testing.T) {
	// Por reason code
	assert.True(t, claims.IsLostWarehouse(entity.ReimbursementRecord{ReasonCode: "Lost_warehouse"}))
	// Por tipo ya clasificado en la ingesta
	assert.True(t, claims.IsLostWarehouse(entity.ReimbursementRecord{ReimbursementType: entity.TypeLost}))
	// Un faltante de envío no cuenta como perdido en bodega
	assert.False(t, claims.IsLostWarehouse(entity.ReimbursementRecord{
		ReimbursementType: entity.TypeInboundShipment,
		ReasonCode:        "inbound_shipment_shortage",
	}))
}
