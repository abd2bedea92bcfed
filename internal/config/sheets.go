package config

import (
	"github.com/Veraticus/semester-planner/internal/sheets"
	"github.com/spf13/viper"
)

// LoadSheetsConfig loads Google Sheets configuration. Precedence is the
// viper key (config file or PLANNER_SHEETS_* env), then GOOGLE_SHEETS_*
// env, then defaults.
func LoadSheetsConfig() (*sheets.Config, error) {
	return SheetsConfigFromViper(viper.GetViper())
}

// SheetsConfigFromViper loads Google Sheets configuration from v.
func SheetsConfigFromViper(v *viper.Viper) (*sheets.Config, error) {
	cfg := sheets.DefaultConfig()

	cfg.ServiceAccountPath = ExpandPath(v.GetString("sheets.service_account_path"))
	cfg.ClientID = v.GetString("sheets.client_id")
	cfg.ClientSecret = v.GetString("sheets.client_secret")
	cfg.RefreshToken = v.GetString("sheets.refresh_token")
	cfg.SpreadsheetID = v.GetString("sheets.spreadsheet_id")
	if name := v.GetString("sheets.spreadsheet_name"); name != "" {
		cfg.SpreadsheetName = name
	}
	if tz := v.GetString("sheets.timezone"); tz != "" {
		cfg.TimeZone = tz
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	cfg.ServiceAccountPath = ExpandPath(cfg.ServiceAccountPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
