package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/pkg/config"
)

func TestPoolConfig_FromFields(t *testing.T) {
	pc, err := poolConfig(config.DBConfig{
		Host: "db.local", Port: 5433, User: "hvac", Password: "p@ss", DBName: "cotizador",
		SSLMode: "disable", MaxConns: 7,
	})
	require.NoError(t, err)

	assert.Equal(t, int32(7), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, "db.local", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "p@ss", pc.ConnConfig.Password)
	assert.Equal(t, applicationName, pc.ConnConfig.RuntimeParams["application_name"])
	assert.NotNil(t, pc.AfterConnect)
}

func TestPoolConfig_DatabaseURLKeepsApplicationName(t *testing.T) {
	pc, err := poolConfig(config.DBConfig{
		DatabaseURL: "postgres://u:p@h:5432/d?sslmode=disable&application_name=worker",
		MaxConns:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, "worker", pc.ConnConfig.RuntimeParams["application_name"])
	assert.Equal(t, int32(1), pc.MinConns)
}

func TestPoolConfig_InvalidDSN(t *testing.T) {
	_, err := poolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@h:notaport/d"})
	assert.Error(t, err)
}
