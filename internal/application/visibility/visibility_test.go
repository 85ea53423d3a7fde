package visibility_test

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/visibility"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
)

var roles = []string{entity.RoleEmployee, entity.RoleSalesManager, entity.RoleAdmin}

func sampleDevice() *entity.Device {
	return &entity.Device{
		ID:           "dev-1",
		CategoryID:   "cat-1",
		ModelName:    "VRF-500",
		FactoryPrice: decimal.NewFromInt(50000),
		Length:       decimal.RequireFromString("4.5"),
		Weight:       decimal.NewFromInt(2000),
		IsActive:     true,
	}
}

func sampleInquiry() *entity.ProjectInquiry {
	irr := decimal.NewFromInt(29784000000)
	return &entity.ProjectInquiry{
		ID:                   "inq-1",
		ProjectID:            "prj-1",
		DeviceID:             "dev-1",
		DeviceModel:          "VRF-500",
		CategoryName:         "VRF",
		Quantity:             2,
		Status:               entity.InquiryPending,
		SellPriceEURSnapshot: decimal.NewFromInt(49640),
		SellPriceIRRSnapshot: &irr,
		CalculationBreakdown: pricing.Breakdown{
			FactoryPrice:   decimal.NewFromInt(50000),
			Length:         decimal.RequireFromString("4.5"),
			Weight:         decimal.NewFromInt(2000),
			FinalSellPrice: decimal.NewFromInt(49640),
		},
		CreatedAt: time.Now(),
	}
}

func TestDevice_ByRole(t *testing.T) {
	d := sampleDevice()

	emp := visibility.Device(entity.RoleEmployee, d, "VRF")
	assert.Nil(t, emp.FactoryPriceEUR)
	assert.Nil(t, emp.LengthMeter)
	assert.Nil(t, emp.WeightUnit)
	assert.Equal(t, "VRF-500", emp.ModelName)
	assert.Equal(t, "VRF", emp.CategoryName)

	sm := visibility.Device(entity.RoleSalesManager, d, "VRF")
	require.NotNil(t, sm.FactoryPriceEUR)
	assert.True(t, sm.FactoryPriceEUR.Equal(decimal.NewFromInt(50000)))
	assert.Nil(t, sm.LengthMeter)
	assert.Nil(t, sm.WeightUnit)

	adm := visibility.Device(entity.RoleAdmin, d, "VRF")
	require.NotNil(t, adm.LengthMeter)
	require.NotNil(t, adm.WeightUnit)
	assert.NotNil(t, adm.FactoryPriceEUR)
}

func TestInquiry_EmployeeNeverSeesCost(t *testing.T) {
	v := visibility.Inquiry(entity.RoleEmployee, sampleInquiry())
	assert.Nil(t, v.FactoryPriceEUR)
	assert.Nil(t, v.LengthMeter)
	assert.Nil(t, v.WeightUnit)
	assert.Nil(t, v.CalculationBreakdown)
	assert.True(t, v.SellPriceEUR.Equal(decimal.NewFromInt(49640)))
	require.NotNil(t, v.SellPriceIRR)
	assert.Equal(t, 2, v.Quantity)
}

func TestInquiry_UnknownRoleIsPublic(t *testing.T) {
	v := visibility.Inquiry("guest", sampleInquiry())
	assert.Nil(t, v.FactoryPriceEUR)
	assert.Nil(t, v.CalculationBreakdown)
	assert.Equal(t, visibility.TierPublic, visibility.RoleTier(""))
}

func TestInquiry_AdminSeesBreakdownCopy(t *testing.T) {
	q := sampleInquiry()
	v := visibility.Inquiry(entity.RoleAdmin, q)
	require.NotNil(t, v.CalculationBreakdown)
	v.CalculationBreakdown.FinalSellPrice = decimal.Zero
	assert.True(t, q.CalculationBreakdown.FinalSellPrice.Equal(decimal.NewFromInt(49640)))
}

func TestUnclassifiedFieldIsAdminOnly(t *testing.T) {
	assert.False(t, visibility.IsClassified("internal_margin"))
	assert.False(t, visibility.CanSee(entity.RoleSalesManager, "internal_margin"))
	assert.True(t, visibility.CanSee(entity.RoleAdmin, "internal_margin"))
}

// jsonFields devuelve los nombres JSON de los campos exportados junto con su tipo.
func jsonFields(v any) map[string]reflect.Type {
	out := map[string]reflect.Type{}
	typ := reflect.TypeOf(v)
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		name := strings.Split(f.Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		out[name] = f.Type
	}
	return out
}

func TestEveryProjectedFieldIsClassified(t *testing.T) {
	for _, v := range []any{dto.DeviceResponse{}, dto.InquiryResponse{}} {
		for name, typ := range jsonFields(v) {
			assert.True(t, visibility.IsClassified(name), "campo sin clasificar: %s", name)
			if visibility.FieldTier(name) > visibility.TierPublic {
				assert.Equal(t, reflect.Ptr, typ.Kind(), "campo restringido %s debe ser puntero", name)
			}
		}
	}
}

// Lo que ve un rol lo ve también cualquier rol superior.
func TestVisibilityIsMonotonic(t *testing.T) {
	fields := jsonFields(dto.InquiryResponse{})
	for i := 0; i < len(roles)-1; i++ {
		lower, higher := roles[i], roles[i+1]
		for name := range fields {
			if visibility.CanSee(lower, name) {
				assert.True(t, visibility.CanSee(higher, name), "%s ve %s pero %s no", lower, name, higher)
			}
		}
	}
}
