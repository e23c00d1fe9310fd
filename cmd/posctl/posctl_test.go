package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ledger-api/pkg/config"
)

func TestConfigCmd_OcultaSecretos(t *testing.T) {
	t.Setenv("JWT_SECRET", "super-secreto")
	t.Setenv("STORAGE_DRIVER", "memory")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "configuración válida")
	assert.Contains(t, out.String(), "memory")
	assert.NotContains(t, out.String(), "super-secreto")
}

func TestConfigCmd_CapacidadesInvalidas(t *testing.T) {
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("ROLE_CAPABILITIES", "cashier=pos,volar")

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"config"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	assert.Error(t, rootCmd.Execute())
}

func TestOpenPool_RechazaMemoria(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: config.StorageMemory}}
	_, err := openPool(context.Background(), cfg)
	assert.ErrorContains(t, err, "STORAGE_DRIVER")
}
