package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/usecase"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/memory"
)

func newCatalog(t *testing.T) (*usecase.CategoryUseCase, *usecase.DeviceUseCase, string) {
	t.Helper()
	repos := memory.NewStore().Repos()
	cats := usecase.NewCategoryUseCase(repos.Categories)
	devs := usecase.NewDeviceUseCase(repos.Devices, repos.Categories)
	c, err := cats.Create(context.Background(), admin, dto.CategoryRequest{Name: "Enfriadores"})
	require.NoError(t, err)
	return cats, devs, c.ID
}

func TestDevice_ProjectionAndInactive(t *testing.T) {
	_, devs, catID := newCatalog(t)
	ctx := context.Background()

	inactive := false
	_, err := devs.Create(ctx, admin, dto.CreateDeviceRequest{
		CategoryID: catID, ModelName: "Chiller Agua 300",
		FactoryPriceEUR: d("80000"), LengthMeter: d("6"), WeightUnit: d("3500"),
	})
	require.NoError(t, err)
	off, err := devs.Create(ctx, admin, dto.CreateDeviceRequest{
		CategoryID: catID, ModelName: "Chiller Viejo",
		FactoryPriceEUR: d("1000"), LengthMeter: d("1"), WeightUnit: d("1"), IsActive: &inactive,
	})
	require.NoError(t, err)

	emp, err := devs.Search(ctx, employee, dto.DeviceSearchRequest{Query: "chiller"})
	require.NoError(t, err)
	require.Len(t, emp, 1)
	assert.Nil(t, emp[0].FactoryPriceEUR)
	assert.Equal(t, "Enfriadores", emp[0].CategoryName)

	mgr, err := devs.Search(ctx, manager, dto.DeviceSearchRequest{CategoryID: catID})
	require.NoError(t, err)
	require.Len(t, mgr, 1)
	require.NotNil(t, mgr[0].FactoryPriceEUR)
	assert.Nil(t, mgr[0].WeightUnit)

	adm, err := devs.Search(ctx, admin, dto.DeviceSearchRequest{Query: "CHÍLLER"})
	require.NoError(t, err)
	assert.Len(t, adm, 2)

	_, err = devs.Get(ctx, employee, off.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	got, err := devs.Get(ctx, admin, off.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.LengthMeter)
}

func TestDevice_AdminWrites(t *testing.T) {
	cats, devs, catID := newCatalog(t)
	ctx := context.Background()

	_, err := devs.Create(ctx, manager, dto.CreateDeviceRequest{CategoryID: catID, ModelName: "X"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = devs.Create(ctx, admin, dto.CreateDeviceRequest{CategoryID: catID, ModelName: "X", FactoryPriceEUR: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	dev, err := devs.Create(ctx, admin, dto.CreateDeviceRequest{CategoryID: catID, ModelName: "Split 12000", FactoryPriceEUR: d("900")})
	require.NoError(t, err)

	_, err = devs.Create(ctx, admin, dto.CreateDeviceRequest{CategoryID: catID, ModelName: "split 12000"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	price := d("950")
	upd, err := devs.Update(ctx, admin, dev.ID, dto.UpdateDeviceRequest{FactoryPriceEUR: &price})
	require.NoError(t, err)
	assert.True(t, upd.FactoryPriceEUR.Equal(price))

	// la categoría tiene equipos
	assert.ErrorIs(t, cats.Delete(ctx, admin, catID), domain.ErrConflict)
	require.NoError(t, devs.Delete(ctx, admin, dev.ID))
	require.NoError(t, cats.Delete(ctx, admin, catID))
}
