package inquiry_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/inquiry"
	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/application/project"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/memory"
)

var (
	employee = entity.Actor{UserID: "emp-1", Role: entity.RoleEmployee}
	other    = entity.Actor{UserID: "emp-2", Role: entity.RoleEmployee}
	manager  = entity.Actor{UserID: "sm-1", Role: entity.RoleSalesManager}
	admin    = entity.Actor{UserID: "adm-1", Role: entity.RoleAdmin}
)

type fixture struct {
	repos    ports.TxRepos
	projects *project.ProjectUseCase
	uc       *inquiry.InquiryUseCase
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	tx := memory.NewTxRunner(store)
	now := time.Now().UTC()

	require.NoError(t, repos.Categories.Create(ctx, &entity.Category{ID: "cat-1", Name: "VRF", CreatedAt: now}))
	require.NoError(t, repos.Devices.Create(ctx, &entity.Device{
		ID: "dev-1", CategoryID: "cat-1", ModelName: "VRF-500",
		FactoryPrice: d("50000"), Length: d("4.5"), Weight: d("2000"), IsActive: true,
	}))
	require.NoError(t, repos.Devices.Create(ctx, &entity.Device{
		ID: "dev-off", CategoryID: "cat-1", ModelName: "VRF-OLD",
		FactoryPrice: d("1000"), Length: d("1"), Weight: d("1"), IsActive: false,
	}))
	require.NoError(t, repos.Settings.Create(ctx, &entity.PricingSettings{
		ID: "set-1", IsActive: true,
		DiscountMultiplier: d("0.38"), FreightPerMeter: d("1000"),
		CustomsNumerator: d("350000"), CustomsDenominator: d("150000"),
		WarrantyRate: d("0.05"), CommissionFactor: d("0.95"), OfficeFactor: d("0.95"), ProfitFactor: d("0.65"),
		RoundingMode: pricing.RoundingCeil, RoundingStep: d("10"),
	}))

	return &fixture{
		repos:    repos,
		projects: project.NewProjectUseCase(tx, repos.Projects, repos.History, repos.Comments, repos.Inquiries),
		uc:       inquiry.NewInquiryUseCase(tx, repos.Projects, repos.Inquiries),
	}
}

func (f *fixture) newProject(t *testing.T, approve bool) string {
	t.Helper()
	ctx := context.Background()
	lat, lng := 35.7, 51.4
	p, err := f.projects.Create(ctx, employee, dto.CreateProjectRequest{
		ProjectName: "Hospital Central", EmployerName: "Ministerio", ProjectType: "healthcare",
		AddressText: "Calle 1", Latitude: &lat, Longitude: &lng,
	})
	require.NoError(t, err)
	if approve {
		_, err = f.projects.Decide(ctx, manager, p.ID, true, "")
		require.NoError(t, err)
	}
	return p.ID
}

func TestQuote_EmployeeOnPendingProject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := f.newProject(t, false)

	_, err := f.uc.Quote(ctx, employee, pid, dto.CreateInquiryRequest{DeviceID: "dev-1"})
	assert.ErrorIs(t, err, domain.ErrProjectNotApproved)

	// admin y sales_manager no dependen del estado del proyecto
	got, err := f.uc.Quote(ctx, admin, pid, dto.CreateInquiryRequest{DeviceID: "dev-1"})
	require.NoError(t, err)
	assert.True(t, got.SellPriceEUR.Equal(d("49640")))
	_, err = f.uc.Quote(ctx, manager, pid, dto.CreateInquiryRequest{DeviceID: "dev-1"})
	require.NoError(t, err)
}

func TestQuote_EmployeeProjection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := f.newProject(t, true)

	got, err := f.uc.Quote(ctx, employee, pid, dto.CreateInquiryRequest{DeviceID: "dev-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Quantity)
	assert.Equal(t, entity.InquiryPending, got.Status)
	assert.Equal(t, "VRF-500", got.DeviceModel)
	assert.Equal(t, "VRF", got.CategoryName)
	assert.True(t, got.SellPriceEUR.Equal(d("49640")))
	assert.Nil(t, got.FactoryPriceEUR)
	assert.Nil(t, got.CalculationBreakdown)
	assert.Nil(t, got.SellPriceIRR)

	logs, err := f.repos.Audit.ListByEntity(ctx, "project_inquiry", got.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestQuote_Guards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := f.newProject(t, true)

	_, err := f.uc.Quote(ctx, other, pid, dto.CreateInquiryRequest{DeviceID: "dev-1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.Quote(ctx, employee, "missing", dto.CreateInquiryRequest{DeviceID: "dev-1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Quote(ctx, employee, pid, dto.CreateInquiryRequest{DeviceID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// el equipo se resuelve antes que la propiedad del proyecto
	_, err = f.uc.Quote(ctx, other, pid, dto.CreateInquiryRequest{DeviceID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Quote(ctx, employee, pid, dto.CreateInquiryRequest{DeviceID: "dev-off"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Quote(ctx, employee, pid, dto.CreateInquiryRequest{DeviceID: "dev-1", Quantity: -2})
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, err := f.uc.Quote(ctx, employee, pid, dto.CreateInquiryRequest{DeviceID: "dev-1", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)
}

func TestQuote_InvalidActiveSettings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := f.newProject(t, true)

	require.NoError(t, f.repos.Settings.Create(ctx, &entity.PricingSettings{ID: "set-2"}))
	require.NoError(t, f.repos.Settings.Activate(ctx, "set-2"))
	// set-2 tiene divisores en cero
	_, err := f.uc.Quote(ctx, employee, pid, dto.CreateInquiryRequest{DeviceID: "dev-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidSettings)

	list, err := f.repos.Inquiries.ListByProject(ctx, pid)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDecide_SnapshotImmutable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := f.newProject(t, true)

	q, err := f.uc.Quote(ctx, employee, pid, dto.CreateInquiryRequest{DeviceID: "dev-1"})
	require.NoError(t, err)
	before, err := f.repos.Inquiries.GetByID(ctx, q.ID)
	require.NoError(t, err)

	_, err = f.uc.Decide(ctx, manager, q.ID, true)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// cambiar el costo del equipo no altera la cotización guardada
	dev, err := f.repos.Devices.GetByID(ctx, "dev-1")
	require.NoError(t, err)
	dev.FactoryPrice = d("99999")
	require.NoError(t, f.repos.Devices.Update(ctx, dev))

	decided, err := f.uc.Decide(ctx, admin, q.ID, true)
	require.NoError(t, err)
	assert.Equal(t, entity.InquiryApproved, decided.Status)
	require.NotNil(t, decided.AdminDecisionBy)
	assert.Equal(t, admin.UserID, *decided.AdminDecisionBy)
	require.NotNil(t, decided.CalculationBreakdown)

	after, err := f.repos.Inquiries.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.True(t, before.SellPriceEURSnapshot.Equal(after.SellPriceEURSnapshot))
	assert.True(t, before.CalculationBreakdown.FactoryPrice.Equal(after.CalculationBreakdown.FactoryPrice))
	assert.True(t, after.CalculationBreakdown.FactoryPrice.Equal(d("50000")))

	// una cotización decidida puede volver a decidirse
	again, err := f.uc.Decide(ctx, admin, q.ID, false)
	require.NoError(t, err)
	assert.Equal(t, entity.InquiryRejected, again.Status)

	_, err = f.uc.Decide(ctx, admin, "missing", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListByProject_AndPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := f.newProject(t, true)

	_, err := f.uc.Quote(ctx, employee, pid, dto.CreateInquiryRequest{DeviceID: "dev-1"})
	require.NoError(t, err)

	_, err = f.uc.ListByProject(ctx, other, pid)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	mgr, err := f.uc.ListByProject(ctx, manager, pid)
	require.NoError(t, err)
	require.Len(t, mgr, 1)
	require.NotNil(t, mgr[0].FactoryPriceEUR)
	assert.Nil(t, mgr[0].CalculationBreakdown)

	_, err = f.uc.ListPending(ctx, manager, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	pending, err := f.uc.ListPending(ctx, admin, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestConcurrentDecisionsAndQuotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := f.newProject(t, false)

	const n = 20
	decideErrs := make(chan error, n)
	quoteErrs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func(approve bool) {
			defer wg.Done()
			_, err := f.projects.Decide(ctx, manager, pid, approve, "revisado")
			decideErrs <- err
		}(i%2 == 0)
		go func() {
			defer wg.Done()
			_, err := f.uc.Quote(ctx, admin, pid, dto.CreateInquiryRequest{DeviceID: "dev-1"})
			quoteErrs <- err
		}()
	}
	wg.Wait()
	close(decideErrs)
	close(quoteErrs)

	won := 0
	for err := range decideErrs {
		if err == nil {
			won++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	}
	assert.Equal(t, 1, won)
	for err := range quoteErrs {
		assert.NoError(t, err)
	}

	history, err := f.repos.History.ListByProject(ctx, pid)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, entity.ProjectPendingApproval, history[1].FromStatus)

	list, err := f.repos.Inquiries.ListByProject(ctx, pid)
	require.NoError(t, err)
	require.Len(t, list, n)
	for _, q := range list {
		assert.Equal(t, entity.InquiryPending, q.Status)
		assert.True(t, q.SellPriceEURSnapshot.Equal(d("49640")))
	}
}
