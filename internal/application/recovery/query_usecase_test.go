package recovery_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reembolsos-api/internal/application/dto"
	"github.com/jhoicas/Reembolsos-api/internal/application/recovery"
	"github.com/jhoicas/Reembolsos-api/internal/domain"
	"github.com/jhoicas/Reembolsos-api/internal/domain/entity"
	"github.com/jhoicas/Reembolsos-api/pkg/logger"
)

type fakeLetterGen struct {
	called bool
	claims int
}

func (f *fakeLetterGen) GenerateClaimLetter(_ context.Context, _ entity.Scope, claims []entity.ReimbursementRecord, _ *entity.ClaimSummary) ([]byte, error) {
	f.called = true
	f.claims = len(claims)
	return []byte("%PDF-1.4"), nil
}

func newQueryFixture() (*recovery.ClaimQueryUseCase, *fakeReimbRepo, *fakeLetterGen) {
	reimbRepo := newFakeReimbRepo()
	letters := &fakeLetterGen{}
	uc := recovery.NewClaimQueryUseCase(reimbRepo, &fakeLocker{}, letters, logger.Nop())
	return uc, reimbRepo, letters
}

func TestGetSummary_SinDatosDevuelveCeros(t *testing.T) {
	uc, _, _ := newQueryFixture()

	summary, err := uc.GetSummary(context.Background(), testScope)

	require.NoError(t, err)
	require.NotNil(t, summary, "dashboard vacío, nunca nil")
	assert.Equal(t, testScope, summary.Scope)
	assert.True(t, summary.TotalReceived.IsZero())
	assert.NotNil(t, summary.ByType)
	assert.Zero(t, summary.TotalClaims)
}

func TestGetDetailedClaims_FiltraPorEstado(t *testing.T) {
	uc, reimbRepo, _ := newQueryFixture()
	reimbRepo.records[testScope.Key()] = []entity.ReimbursementRecord{
		{ReimbursementID: "a", Status: entity.StatusApproved},
		{ReimbursementID: "b", Status: entity.StatusPotential},
	}

	resp, err := uc.GetDetailedClaims(context.Background(), testScope, dto.ClaimFilterRequest{Status: "potential"})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Reimbursements, 1)
	assert.Equal(t, "b", resp.Reimbursements[0].ReimbursementID)
}

func TestGetDetailedClaims_SinResultadosDevuelveListaVacia(t *testing.T) {
	uc, _, _ := newQueryFixture()

	resp, err := uc.GetDetailedClaims(context.Background(), testScope, dto.ClaimFilterRequest{})

	require.NoError(t, err)
	assert.Zero(t, resp.Total)
	assert.NotNil(t, resp.Reimbursements)
}

func TestUpdateProductCosts_SoloPotencialesDeEnvio(t *testing.T) {
	uc, reimbRepo, _ := newQueryFixture()
	reimbRepo.records[testScope.Key()] = []entity.ReimbursementRecord{
		{ReimbursementID: "p1", SKU: "SKU-1", Status: entity.StatusPotential, ReimbursementType: entity.TypeInboundShipment, Quantity: 5, Amount: decimal.NewFromInt(40)},
		{ReimbursementID: "a1", SKU: "SKU-1", Status: entity.StatusApproved, ReimbursementType: entity.TypeInboundShipment, Quantity: 5, Amount: decimal.NewFromInt(40)},
		{ReimbursementID: "p2", SKU: "SKU-2", Status: entity.StatusPotential, ReimbursementType: entity.TypeLost, Quantity: 2, Amount: decimal.NewFromInt(30)},
	}

	resp, err := uc.UpdateProductCosts(context.Background(), testScope, dto.UpdateProductCostsRequest{
		Costs: map[string]decimal.Decimal{"SKU-1": decimal.RequireFromString("6.50")},
	})

	require.NoError(t, err)
	assert.True(t, resp.Updated)
	assert.Equal(t, 1, resp.Patched)

	persisted := reimbRepo.records[testScope.Key()]
	byID := map[string]entity.ReimbursementRecord{}
	for _, r := range persisted {
		byID[r.ReimbursementID] = r
	}
	assert.True(t, byID["p1"].Amount.Equal(decimal.RequireFromString("32.5")), "5 × 6.50")
	assert.True(t, byID["a1"].Amount.Equal(decimal.NewFromInt(40)), "aprobados no se tocan")
	assert.True(t, byID["p2"].Amount.Equal(decimal.NewFromInt(30)), "otros tipos no se tocan")
	require.NotNil(t, reimbRepo.summaries[testScope.Key()], "el resumen se recalcula junto con el parcheo")
}

func TestUpdateProductCosts_SinCoincidenciasNoEscribe(t *testing.T) {
	uc, reimbRepo, _ := newQueryFixture()
	reimbRepo.records[testScope.Key()] = []entity.ReimbursementRecord{
		{ReimbursementID: "a1", SKU: "SKU-1", Status: entity.StatusApproved, ReimbursementType: entity.TypeInboundShipment},
	}

	resp, err := uc.UpdateProductCosts(context.Background(), testScope, dto.UpdateProductCostsRequest{
		Costs: map[string]decimal.Decimal{"SKU-1": decimal.NewFromInt(3)},
	})

	require.NoError(t, err)
	assert.False(t, resp.Updated)
	assert.Zero(t, reimbRepo.replaceAll)
}

func TestUpdateProductCosts_SinCostosEsInvalido(t *testing.T) {
	uc, _, _ := newQueryFixture()

	_, err := uc.UpdateProductCosts(context.Background(), testScope, dto.UpdateProductCostsRequest{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGenerateClaimLetter_SoloReclamosAbiertos(t *testing.T) {
	uc, reimbRepo, letters := newQueryFixture()
	reimbRepo.records[testScope.Key()] = []entity.ReimbursementRecord{
		{ReimbursementID: "p1", Status: entity.StatusPotential},
		{ReimbursementID: "a1", Status: entity.StatusApproved},
		{ReimbursementID: "d1", Status: entity.StatusDenied},
	}

	pdf, err := uc.GenerateClaimLetter(context.Background(), testScope)

	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.True(t, letters.called)
	assert.Equal(t, 1, letters.claims, "solo los abiertos van a la carta")
}

func TestGenerateClaimLetter_SinAbiertosReportaPrecondicion(t *testing.T) {
	uc, reimbRepo, _ := newQueryFixture()
	reimbRepo.records[testScope.Key()] = []entity.ReimbursementRecord{
		{ReimbursementID: "a1", Status: entity.StatusApproved},
	}

	_, err := uc.GenerateClaimLetter(context.Background(), testScope)

	assert.True(t, domain.IsMissingPrecondition(err))
}
