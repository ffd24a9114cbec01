// Package claims contiene los servicios de dominio del motor de recuperación
// FBA: clasificación de razones, agregación del ledger, detección de faltantes
// en envíos, reconciliación de inventario perdido, merge de reclamos y la
// proyección de resumen. Todo es transformación pura de datos ya fetcheados;
// sin I/O ni estado compartido.
package claims

import (
	"strings"

	"github.com/jhoicas/Reembolsos-api/internal/domain/entity"
)

// reasonGroup un grupo de keywords que mapea a una categoría. La lista está
// ordenada: gana la primera coincidencia, por eso los grupos más específicos
// (warehouse_damage) van antes que los genéricos (damaged).
type reasonGroup struct {
	category entity.ReimbursementType
	keywords []string
}

var reasonGroups = []reasonGroup{
	{entity.TypeCustomerReturn, []string{"customer_return", "customer return", "return"}},
	{entity.TypeRemovalOrder, []string{"removal_order", "removal order", "removal"}},
	{entity.TypeFeeCorrection, []string{"fee_correction", "fee correction", "incorrect_fee", "fee"}},
	{entity.TypeWarehouseDamage, []string{"warehouse_damage", "damaged_warehouse", "warehouse damage"}},
	{entity.TypeDamaged, []string{"damaged", "damage"}},
	{entity.TypeLost, []string{"lost"}},
	{entity.TypeInboundShipment, []string{"inbound", "shipment"}},
	{entity.TypeInventoryDifference, []string{"inventory_difference", "difference", "adjustment"}},
}

// ClassifyReason mapea el reason code/descripción libre de Amazon a una
// categoría cerrada. Matching por substring case-insensitive contra la lista
// ordenada de grupos; sin coincidencia → OTHER. Determinista y total: toda
// entrada mapea a exactamente una categoría, nunca a ninguna.
func ClassifyReason(reasonCode, reasonDescription string) entity.ReimbursementType {
	needle := strings.ToLower(reasonCode + " " + reasonDescription)
	for _, g := range reasonGroups {
		for _, kw := range g.keywords {
			if strings.Contains(needle, kw) {
				return g.category
			}
		}
	}
	return entity.TypeOther
}

// IsLostWarehouse indica si un reembolso corresponde a inventario perdido en
// bodega: categoría LOST (por tipo ya asignado o por clasificación de la
// razón) o mención explícita de "lost_warehouse" en el reason code.
func IsLostWarehouse(r entity.ReimbursementRecord) bool {
	if r.ReimbursementType == entity.TypeLost {
		return true
	}
	if ClassifyReason(r.ReasonCode, r.ReasonDescription) == entity.TypeLost {
		return true
	}
	return strings.Contains(strings.ToLower(r.ReasonCode), "lost_warehouse")
}
