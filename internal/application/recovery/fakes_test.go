package recovery_test

import (
	"context"
	"io"

	"github.com/jhoicas/Reembolsos-api/internal/application/dto"
	"github.com/jhoicas/Reembolsos-api/internal/domain"
	"github.com/jhoicas/Reembolsos-api/internal/domain/entity"
	"github.com/jhoicas/Reembolsos-api/internal/domain/repository"
)

// Fakes en memoria de los puertos de persistencia, indexados por scope.Key().

type fakeLedgerRepo struct {
	snapshots map[string]*entity.LedgerSnapshot
	saves     int
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{snapshots: map[string]*entity.LedgerSnapshot{}}
}

func (f *fakeLedgerRepo) Save(_ context.Context, snapshot *entity.LedgerSnapshot) error {
	f.snapshots[snapshot.Scope.Key()] = snapshot
	f.saves++
	return nil
}

func (f *fakeLedgerRepo) GetLatest(_ context.Context, scope entity.Scope) (*entity.LedgerSnapshot, error) {
	return f.snapshots[scope.Key()], nil
}

type fakeFeeRepo struct {
	snapshots map[string]*entity.FeeSnapshot
}

func newFakeFeeRepo() *fakeFeeRepo {
	return &fakeFeeRepo{snapshots: map[string]*entity.FeeSnapshot{}}
}

func (f *fakeFeeRepo) Replace(_ context.Context, snapshot *entity.FeeSnapshot) error {
	f.snapshots[snapshot.Scope.Key()] = snapshot
	return nil
}

func (f *fakeFeeRepo) GetLatest(_ context.Context, scope entity.Scope) (*entity.FeeSnapshot, error) {
	return f.snapshots[scope.Key()], nil
}

type fakeShipmentRepo struct {
	shipments map[string][]entity.Shipment
}

func newFakeShipmentRepo() *fakeShipmentRepo {
	return &fakeShipmentRepo{shipments: map[string][]entity.Shipment{}}
}

func (f *fakeShipmentRepo) Replace(_ context.Context, scope entity.Scope, shipments []entity.Shipment) error {
	f.shipments[scope.Key()] = shipments
	return nil
}

func (f *fakeShipmentRepo) GetClosed(_ context.Context, scope entity.Scope) ([]entity.Shipment, error) {
	return f.shipments[scope.Key()], nil
}

type fakeProductRepo struct {
	products map[string][]entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string][]entity.Product{}}
}

func (f *fakeProductRepo) Replace(_ context.Context, scope entity.Scope, products []entity.Product) error {
	f.products[scope.Key()] = products
	return nil
}

func (f *fakeProductRepo) List(_ context.Context, scope entity.Scope) ([]entity.Product, error) {
	return f.products[scope.Key()], nil
}

type fakeReimbRepo struct {
	records    map[string][]entity.ReimbursementRecord
	summaries  map[string]*entity.ClaimSummary
	replaceAll int
}

func newFakeReimbRepo() *fakeReimbRepo {
	return &fakeReimbRepo{
		records:   map[string][]entity.ReimbursementRecord{},
		summaries: map[string]*entity.ClaimSummary{},
	}
}

func (f *fakeReimbRepo) GetByScope(_ context.Context, scope entity.Scope) ([]entity.ReimbursementRecord, error) {
	return f.records[scope.Key()], nil
}

func (f *fakeReimbRepo) Query(_ context.Context, scope entity.Scope, filter repository.ClaimFilter) ([]entity.ReimbursementRecord, error) {
	var out []entity.ReimbursementRecord
	for _, r := range f.records[scope.Key()] {
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.Type != "" && r.ReimbursementType != filter.Type {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeReimbRepo) ReplaceAll(_ context.Context, scope entity.Scope, records []entity.ReimbursementRecord, summary *entity.ClaimSummary) error {
	f.records[scope.Key()] = records
	f.summaries[scope.Key()] = summary
	f.replaceAll++
	return nil
}

func (f *fakeReimbRepo) GetSummary(_ context.Context, scope entity.Scope) (*entity.ClaimSummary, error) {
	return f.summaries[scope.Key()], nil
}

type fakeLostRepo struct {
	items    map[string][]entity.LostInventoryItem
	replaces int
}

func newFakeLostRepo() *fakeLostRepo {
	return &fakeLostRepo{items: map[string][]entity.LostInventoryItem{}}
}

func (f *fakeLostRepo) Replace(_ context.Context, scope entity.Scope, items []entity.LostInventoryItem) error {
	f.items[scope.Key()] = items
	f.replaces++
	return nil
}

func (f *fakeLostRepo) List(_ context.Context, scope entity.Scope) ([]entity.LostInventoryItem, error) {
	return f.items[scope.Key()], nil
}

// fakeLocker registra adquisiciones; con held=true simula contención.
type fakeLocker struct {
	held     bool
	acquired int
	released int
}

func (f *fakeLocker) Lock(_ context.Context, _ entity.Scope) (func(), error) {
	if f.held {
		return nil, domain.ErrScopeLocked
	}
	f.acquired++
	return func() { f.released++ }, nil
}

type fakeParser struct {
	rows []dto.RawLedgerRow
	err  error
}

func (f *fakeParser) Parse(_ io.Reader) ([]dto.RawLedgerRow, error) {
	return f.rows, f.err
}
