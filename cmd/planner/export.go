package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/semester-planner/internal/cli"
	"github.com/Veraticus/semester-planner/internal/config"
	"github.com/Veraticus/semester-planner/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a semester plan to Google Sheets",
		Long: `Write a plan to Google Sheets with Plan, Eligible and Completed tabs.

Configure sheets.service_account_path, or run "planner export auth" once
to store an OAuth2 refresh token.`,
		Example: `  planner export --major 1 --completed "CS 111,CS 141" --planned "CS 211,MATH 180"`,
		Args:    cobra.NoArgs,
		RunE:    runExport,
	}

	addSessionFlags(cmd)
	cmd.Flags().Bool("dry-run", false, "Print the plan instead of writing it")

	cmd.AddCommand(exportAuthCmd())

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	ctx := cmd.Context()
	provider, release, err := openProvider(ctx)
	if err != nil {
		return err
	}
	defer release()

	session, err := buildSession(ctx, provider, readSessionFlags(cmd))
	if err != nil {
		return err
	}
	if session.Plan().Len() == 0 {
		return fmt.Errorf("nothing to export: add courses with --planned")
	}

	report := planReport(session)
	report.GeneratedAt = time.Now()

	if dryRun {
		printPlanSummary(cmd, session)
		return nil
	}

	loadStoredRefreshToken()
	sheetsCfg, err := config.LoadSheetsConfig()
	if err != nil {
		return fmt.Errorf("google sheets is not configured: %w", err)
	}

	writer, err := sheets.NewWriter(ctx, *sheetsCfg, slog.Default())
	if err != nil {
		return err
	}

	handler := cli.NewInterruptHandler(os.Stderr, "Export", "The spreadsheet may be partially updated; run export again.")
	ctx = handler.HandleInterrupts(ctx)
	defer handler.Stop()

	if err := writer.WritePlan(ctx, report); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	slog.Info(cli.FormatSuccess("Plan exported"),
		"spreadsheet", sheetsCfg.SpreadsheetName,
		"courses", len(report.Planned),
		"credits", report.TotalCredits)
	return nil
}

func exportAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with Google Sheets",
		Long: `Authenticate with Google Sheets using OAuth2.

This command will:
1. Print a URL to authorize access in your browser
2. Save the token next to your config
3. Update your config file with the refresh token

You'll need to run this once before exporting with OAuth2 credentials.`,
		Args: cobra.NoArgs,
		RunE: runExportAuth,
	}

	cmd.Flags().String("client-id", "", "OAuth2 Client ID (overrides config)")
	cmd.Flags().String("client-secret", "", "OAuth2 Client Secret (overrides config)")

	return cmd
}

func runExportAuth(cmd *cobra.Command, _ []string) error {
	clientID := viper.GetString("sheets.client_id")
	clientSecret := viper.GetString("sheets.client_secret")

	if flagID, _ := cmd.Flags().GetString("client-id"); flagID != "" {
		clientID = flagID
	}
	if flagSecret, _ := cmd.Flags().GetString("client-secret"); flagSecret != "" {
		clientSecret = flagSecret
	}
	if clientID == "" {
		clientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if clientSecret == "" {
		clientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}

	if clientID == "" || clientSecret == "" {
		return fmt.Errorf("OAuth2 credentials not found. Set sheets.client_id and sheets.client_secret in config or use --client-id and --client-secret")
	}

	tokenFile, err := sheetsTokenFile()
	if err != nil {
		return err
	}
	slog.Info("Starting Google Sheets authentication", "token_file", tokenFile)

	token, err := sheets.Authenticate(cmd.Context(), sheets.OAuth2Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenFile:    tokenFile,
	})
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	viper.Set("sheets.client_id", clientID)
	viper.Set("sheets.client_secret", clientSecret)
	viper.Set("sheets.refresh_token", token.RefreshToken)
	if err := saveConfig(); err != nil {
		slog.Warn("⚠️  Could not save refresh token to config file", "error", err)
		slog.Info(fmt.Sprintf("Add this to your config.yaml manually:\nsheets:\n  refresh_token: %q", token.RefreshToken))
	} else {
		slog.Info("✅ Authentication successful!")
	}

	slog.Info("📊 Google Sheets is ready. Run 'planner export' to write a plan.")
	return nil
}

// loadStoredRefreshToken fills sheets.refresh_token from the token saved by
// "export auth" when the config does not carry one.
func loadStoredRefreshToken() {
	if viper.GetString("sheets.refresh_token") != "" || viper.GetString("sheets.client_id") == "" {
		return
	}
	path, err := sheetsTokenFile()
	if err != nil {
		return
	}
	token, err := sheets.LoadToken(path)
	if err != nil {
		slog.Debug("No stored Google Sheets token", "path", path, "error", err)
		return
	}
	if token.RefreshToken != "" {
		viper.Set("sheets.refresh_token", token.RefreshToken)
	}
}

func sheetsTokenFile() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "planner", "sheets-token.json"), nil
}

func saveConfig() error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		configFile = filepath.Join(home, ".config", "planner", "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0750); err != nil {
		return err
	}

	return viper.WriteConfigAs(configFile)
}
