package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/loan_report_app/internal/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	SourceDocument string   `mapstructure:"SOURCE_DOCUMENT" validate:"required"`
	OutputDir      string   `mapstructure:"OUTPUT_DIR" validate:"required"`
	StoreDriver    string   `mapstructure:"STORE_DRIVER" validate:"oneof=sqlite postgres"`
	SQLitePath     string   `mapstructure:"SQLITE_PATH" validate:"required_if=StoreDriver sqlite"`
	DatabaseURL    string   `mapstructure:"PGSQL_URL" validate:"required_if=StoreDriver postgres"`
	ReportFormats  []string `mapstructure:"REPORT_FORMATS" validate:"min=1,dive,oneof=csv xlsx"`
	LogLevel       string   `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"source":      "SOURCE_DOCUMENT",
	"output-dir":  "OUTPUT_DIR",
	"store":       "STORE_DRIVER",
	"sqlite-path": "SQLITE_PATH",
	"pgsql-url":   "PGSQL_URL",
	"formats":     "REPORT_FORMATS",
	"log-level":   "LOG_LEVEL",
}

// LoadConfig loads configuration from flags, environment variables and a .env file if present.
// Flags win over the environment, which wins over defaults.
func LoadConfig(args []string) (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("SOURCE_DOCUMENT", "")
	v.SetDefault("OUTPUT_DIR", "data")
	v.SetDefault("STORE_DRIVER", StoreSQLite)
	v.SetDefault("SQLITE_PATH", "data/loan_data.db")
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("REPORT_FORMATS", "csv")
	v.SetDefault("LOG_LEVEL", "info")
	v.AutomaticEnv()

	fs := pflag.NewFlagSet("loan_report", pflag.ContinueOnError)
	fs.String("source", "", "statement document to ingest (.pdf or pre-extracted text)")
	fs.String("output-dir", "data", "directory the reports are written to")
	fs.String("store", StoreSQLite, "loan store driver: sqlite or postgres")
	fs.String("sqlite-path", "data/loan_data.db", "SQLite database file")
	fs.String("pgsql-url", "", "PostgreSQL connection URL")
	fs.String("formats", "csv", "comma separated report formats: csv, xlsx")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	if fs.NArg() > 0 && !fs.Changed("source") {
		v.Set("SOURCE_DOCUMENT", fs.Arg(0))
	}
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}

	cfg := &Config{
		SourceDocument: v.GetString("SOURCE_DOCUMENT"),
		OutputDir:      v.GetString("OUTPUT_DIR"),
		StoreDriver:    strings.ToLower(v.GetString("STORE_DRIVER")),
		SQLitePath:     v.GetString("SQLITE_PATH"),
		DatabaseURL:    v.GetString("PGSQL_URL"),
		ReportFormats:  splitList(v.GetString("REPORT_FORMATS")),
		LogLevel:       strings.ToLower(v.GetString("LOG_LEVEL")),
	}

	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return nil, fmt.Errorf("%w: invalid config: %s", apperrors.ErrValidation, strings.Join(fields, ", "))
		}
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	seen := map[string]bool{}
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		out = append(out, part)
	}
	return out
}
