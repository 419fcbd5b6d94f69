package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"

	"shiptrack/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DBTypePostgres = "postgres"
	DBTypeSQLite   = "sqlite"
)

type Config struct {
	HTTPPort string

	DBType         string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSslMode      string
	DBSQLitePath   string
	DBMaxOpenConns int

	LogLevel  string
	LogFormat string

	NodeID              int64
	TrackingPrefix      string
	OverdueScanSchedule string
	RunMigrations       bool
}

var defaults = map[string]any{
	"HTTP_PORT":             "8080",
	"DB_TYPE":               DBTypePostgres,
	"DB_HOST":               "localhost",
	"DB_PORT":               "5432",
	"DB_USER":               "postgres",
	"DB_PASSWORD":           "postgres",
	"DB_NAME":               "shiptrack",
	"DB_SSLMODE":            "disable",
	"DB_SQLITE_PATH":        "shiptrack.db",
	"DB_MAX_OPEN_CONNS":     10,
	"LOG_LEVEL":             "info",
	"LOG_FORMAT":            "json",
	"NODE_ID":               1,
	"TRACKING_PREFIX":       "TRK",
	"OVERDUE_SCAN_SCHEDULE": "@every 5m",
	"RUN_MIGRATIONS":        true,
}

// LoadConfig reads the environment, after loading envFile if it exists.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := Config{
		HTTPPort:            v.GetString("HTTP_PORT"),
		DBType:              strings.ToLower(v.GetString("DB_TYPE")),
		DBHost:              v.GetString("DB_HOST"),
		DBPort:              v.GetString("DB_PORT"),
		DBUser:              v.GetString("DB_USER"),
		DBPassword:          v.GetString("DB_PASSWORD"),
		DBName:              v.GetString("DB_NAME"),
		DBSslMode:           v.GetString("DB_SSLMODE"),
		DBSQLitePath:        v.GetString("DB_SQLITE_PATH"),
		DBMaxOpenConns:      v.GetInt("DB_MAX_OPEN_CONNS"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		LogFormat:           v.GetString("LOG_FORMAT"),
		NodeID:              v.GetInt64("NODE_ID"),
		TrackingPrefix:      v.GetString("TRACKING_PREFIX"),
		OverdueScanSchedule: v.GetString("OVERDUE_SCAN_SCHEDULE"),
		RunMigrations:       v.GetBool("RUN_MIGRATIONS"),
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var typeErr, portErr, connsErr error
	switch c.DBType {
	case DBTypePostgres, DBTypeSQLite:
	default:
		typeErr = errs.NewValueIsInvalidErrorWithCause("DB_TYPE",
			fmt.Errorf("%q is not one of %s, %s", c.DBType, DBTypePostgres, DBTypeSQLite))
	}
	if strings.TrimSpace(c.HTTPPort) == "" {
		portErr = errs.NewValueIsRequiredError("HTTP_PORT")
	}
	if c.DBMaxOpenConns < 1 {
		connsErr = errs.NewValueIsOutOfRangeError("DB_MAX_OPEN_CONNS", c.DBMaxOpenConns, 1, "unbounded")
	}
	return errors.Join(typeErr, portErr, connsErr)
}

// PostgresDSN builds a libpq URL. It is understood by both the gorm driver and golang-migrate.
func (c Config) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}
