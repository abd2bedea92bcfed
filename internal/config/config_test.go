package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/semester-planner/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("PLANNER_TEST_DIR", "/srv/planner")

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: home},
		{in: "~/catalog.db", want: filepath.Join(home, "catalog.db")},
		{in: "$PLANNER_TEST_DIR/catalog.db", want: "/srv/planner/catalog.db"},
		{in: "/abs/catalog.db", want: "/abs/catalog.db"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestFromViper_Defaults(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg, err := FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".local/share/planner/catalog.db"), cfg.DatabasePath)
	assert.Equal(t, DefaultServerAddr, cfg.ServerAddr)
	assert.Equal(t, DefaultAPITimeout, cfg.APITimeout)
	assert.Equal(t, DefaultAPIRetries, cfg.APIRetries)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, filepath.Join(home, ".local/share/planner/certs"), cfg.CertDir)
	assert.False(t, cfg.ServerTLS)
	assert.False(t, cfg.UseRemoteCatalog())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("database.path", "/tmp/catalog.db")
	v.Set("api.url", "http://127.0.0.1:5001/api/")
	v.Set("api.timeout", "5s")
	v.Set("server.cors_origins", []string{"http://example.test"})
	v.Set("server.tls", true)
	v.Set("server.tls_hosts", []string{"planner.lan"})

	cfg, err := FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/catalog.db", cfg.DatabasePath)
	assert.Equal(t, "http://127.0.0.1:5001/api", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.APITimeout)
	assert.Equal(t, []string{"http://example.test"}, cfg.CORSOrigins)
	assert.True(t, cfg.ServerTLS)
	assert.Equal(t, []string{"planner.lan"}, cfg.TLSHosts)
	assert.True(t, cfg.UseRemoteCatalog())
}

func TestFromViper_Invalid(t *testing.T) {
	v := viper.New()
	v.Set("api.retries", -1)

	_, err := FromViper(v)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	v = viper.New()
	v.Set("api.timeout", "0s")
	_, err = FromViper(v)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestSheetsConfigFromViper(t *testing.T) {
	for _, key := range []string{
		"GOOGLE_SHEETS_CLIENT_ID", "GOOGLE_SHEETS_CLIENT_SECRET", "GOOGLE_SHEETS_REFRESH_TOKEN",
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "GOOGLE_SHEETS_SPREADSHEET_ID", "GOOGLE_SHEETS_SPREADSHEET_NAME",
	} {
		t.Setenv(key, "")
	}

	v := viper.New()
	_, err := SheetsConfigFromViper(v)
	assert.Error(t, err, "no credentials")

	v.Set("sheets.service_account_path", "/keys/planner.json")
	v.Set("sheets.spreadsheet_name", "Spring 2027")
	cfg, err := SheetsConfigFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "/keys/planner.json", cfg.ServiceAccountPath)
	assert.Equal(t, "Spring 2027", cfg.SpreadsheetName)
}
