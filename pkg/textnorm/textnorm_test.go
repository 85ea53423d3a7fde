package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Cotizador-api/pkg/textnorm"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "climatizacion central", textnorm.Fold("  Climatización   CENTRAL "))
	assert.Equal(t, "", textnorm.Fold(""))
}

func TestContains(t *testing.T) {
	assert.True(t, textnorm.Contains("Enfriador Agua-Helada Ñandú", "nandu"))
	assert.True(t, textnorm.Contains("VRF-500", "vrf"))
	assert.True(t, textnorm.Contains("anything", ""))
	assert.False(t, textnorm.Contains("Split 12000", "chiller"))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Fan Coil", textnorm.Title(" fan coil "))
}
