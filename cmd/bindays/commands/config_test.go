package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bindays.json5")

	cfg, err := readConfig(path)
	require.NoError(t, err)
	require.Equal(t, defaultConfig, cfg)

	err = os.WriteFile(path, []byte(`{
		// committed
		postcode: "G46 6UG",
		uprn: "42",
		smtp: { server: "smtp.example.com", recipients: ["a@example.com"] },
	}`), 0600)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "bindays.local.json5"), []byte(`{
		smtp: { password: "secret" },
		server: { port: 9000 },
	}`), 0600)
	require.NoError(t, err)

	cfg, err = readConfig(path)
	require.NoError(t, err)
	require.Equal(t, "G46 6UG", cfg.Postcode)
	require.Equal(t, "42", cfg.Uprn)
	require.Equal(t, 30, cfg.TimeoutSeconds)
	require.Equal(t, 9000, cfg.Server.Port)
	require.Equal(t, "smtp.example.com", cfg.Smtp.Server)
	require.Equal(t, "secret", cfg.Smtp.Password)
	require.Equal(t, 587, cfg.Smtp.Port)
	require.Equal(t, []string{"a@example.com"}, cfg.Smtp.Recipients)
}

func TestStringFlag(t *testing.T) {
	empty := ""
	set := "flag"
	require.Equal(t, "config", stringFlag(nil, "config"))
	require.Equal(t, "config", stringFlag(&empty, "config"))
	require.Equal(t, "flag", stringFlag(&set, "config"))
}
