package claims_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reembolsos-api/internal/domain/claims"
	"github.com/jhoicas/Reembolsos-api/internal/domain/entity"
)

var summaryNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func fecha(daysAgo int) *time.Time {
	d := summaryNow.AddDate(0, 0, -daysAgo)
	return &d
}

func TestBuildSummary_TotalesPorEstadoYTipo(t *testing.T) {
	scope := entity.Scope{UserID: "u1", Country: "US", Region: "na"}
	records := []entity.ReimbursementRecord{
		{Status: entity.StatusApproved, ReimbursementType: entity.TypeLost, Amount: decimal.NewFromInt(100), ReimbursementDate: fecha(3), IsAutomated: true},
		{Status: entity.StatusApproved, ReimbursementType: entity.TypeDamaged, Amount: decimal.NewFromInt(50), ReimbursementDate: fecha(40), IsAutomated: true},
		{Status: entity.StatusPending, ReimbursementType: entity.TypeLost, Amount: decimal.NewFromInt(30), IsAutomated: true},
		{Status: entity.StatusPotential, ReimbursementType: entity.TypeInboundShipment, Amount: decimal.NewFromInt(40), DiscoveryDate: fecha(0)},
		{Status: entity.StatusDenied, ReimbursementType: entity.TypeOther, Amount: decimal.NewFromInt(7)},
	}

	s := claims.BuildSummary(scope, records, summaryNow)

	assert.True(t, decimal.NewFromInt(150).Equal(s.TotalReceived))
	assert.True(t, decimal.NewFromInt(30).Equal(s.TotalPending))
	assert.True(t, decimal.NewFromInt(40).Equal(s.TotalPotential))
	assert.True(t, decimal.NewFromInt(7).Equal(s.TotalDenied))
	assert.Equal(t, 5, s.TotalClaims)

	require.Contains(t, s.ByType, entity.TypeLost)
	assert.Equal(t, 2, s.ByType[entity.TypeLost].Count)
	assert.True(t, decimal.NewFromInt(130).Equal(s.ByType[entity.TypeLost].Amount))

	assert.Equal(t, 3, s.AutomatedCount)
	assert.Equal(t, 2, s.ManualCount)
}

// Ventanas temporales sobre aprobados: reimbursementDate con fallback a
// discoveryDate; los de hace 40 días cuentan en 90 pero no en 7 ni 30.
func TestBuildSummary_VentanasTemporales(t *testing.T) {
	records := []entity.ReimbursementRecord{
		{Status: entity.StatusApproved, ReimbursementType: entity.TypeLost, Amount: decimal.NewFromInt(10), ReimbursementDate: fecha(2)},
		{Status: entity.StatusApproved, ReimbursementType: entity.TypeLost, Amount: decimal.NewFromInt(20), DiscoveryDate: fecha(20)}, // sin reimbursementDate → fallback
		{Status: entity.StatusApproved, ReimbursementType: entity.TypeLost, Amount: decimal.NewFromInt(40), ReimbursementDate: fecha(40)},
		{Status: entity.StatusApproved, ReimbursementType: entity.TypeLost, Amount: decimal.NewFromInt(80), ReimbursementDate: fecha(100)},
	}

	s := claims.BuildSummary(entity.Scope{}, records, summaryNow)

	assert.True(t, decimal.NewFromInt(10).Equal(s.ReceivedLast7Days))
	assert.True(t, decimal.NewFromInt(30).Equal(s.ReceivedLast30Days))
	assert.True(t, decimal.NewFromInt(70).Equal(s.ReceivedLast90Days))
}

// Buckets de expiración: solo potenciales con expiryDate hacia adelante.
func TestBuildSummary_BucketsDeExpiracion(t *testing.T) {
	en := func(days int) *time.Time {
		d := summaryNow.AddDate(0, 0, days)
		return &d
	}
	records := []entity.ReimbursementRecord{
		{Status: entity.StatusPotential, ReimbursementType: entity.TypeInboundShipment, ExpiryDate: en(3)},
		{Status: entity.StatusPotential, ReimbursementType: entity.TypeInboundShipment, ExpiryDate: en(20)},
		{Status: entity.StatusPotential, ReimbursementType: entity.TypeInboundShipment, ExpiryDate: en(45)},
		{Status: entity.StatusPotential, ReimbursementType: entity.TypeInboundShipment, ExpiryDate: en(-1)}, // ya vencido: fuera
		{Status: entity.StatusApproved, ReimbursementType: entity.TypeLost, ExpiryDate: en(3)},              // no potencial: fuera
	}

	s := claims.BuildSummary(entity.Scope{}, records, summaryNow)

	assert.Equal(t, 1, s.ClaimsExpiringIn7Days)
	assert.Equal(t, 2, s.ClaimsExpiringIn30Days, "el bucket de 30 incluye el de 7")
}

// Scope sin reclamos: resumen en ceros, nunca nil (contrato del dashboard).
func TestBuildSummary_SinDatos(t *testing.T) {
	s := claims.BuildSummary(entity.Scope{UserID: "u1"}, nil, summaryNow)
	require.NotNil(t, s)
	assert.True(t, s.TotalReceived.IsZero())
	assert.True(t, s.TotalPotential.IsZero())
	assert.NotNil(t, s.ByType)
	assert.Zero(t, s.TotalClaims)
}
