package config

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]interface{}) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	for key, value := range values {
		v.Set(key, value)
	}
	return v
}

func TestBuild_Defaults(t *testing.T) {
	cfg, err := build(newViper(map[string]interface{}{
		"DB_HOST": "db.local",
		"DB_USER": "report",
		"DB_NAME": "whmcs",
	}))
	require.NoError(t, err)

	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "0 0 1 * *", cfg.Report.CronSchedule)
	assert.Equal(t, 2*time.Minute, cfg.Report.Timeout)
	assert.Equal(t, time.Local, cfg.Report.Location)
}

func TestBuild_MissingCredentials(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]interface{}
		missing []string
	}{
		{
			name:    "MySQL sem nada",
			values:  map[string]interface{}{},
			missing: []string{"DB_HOST", "DB_USER", "DB_NAME"},
		},
		{
			name:    "Postgres sem usuário",
			values:  map[string]interface{}{"DB_DRIVER": "postgres", "DB_HOST": "h", "DB_NAME": "n"},
			missing: []string{"DB_USER"},
		},
		{
			name:    "SQLite sem arquivo",
			values:  map[string]interface{}{"DB_DRIVER": "sqlite"},
			missing: []string{"DB_NAME"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := build(newViper(tt.values))
			require.ErrorIs(t, err, ErrInvalidConfig)
			for _, key := range tt.missing {
				assert.Contains(t, err.Error(), key)
			}
		})
	}
}

func TestBuild_Invalid(t *testing.T) {
	base := func(extra map[string]interface{}) map[string]interface{} {
		values := map[string]interface{}{"DB_HOST": "h", "DB_USER": "u", "DB_NAME": "n"}
		for k, v := range extra {
			values[k] = v
		}
		return values
	}

	tests := []struct {
		name   string
		values map[string]interface{}
	}{
		{name: "Driver desconhecido", values: base(map[string]interface{}{"DB_DRIVER": "oracle"})},
		{name: "Fuso inválido", values: base(map[string]interface{}{"REPORT_TIMEZONE": "Mars/Olympus"})},
		{name: "Timeout zero", values: base(map[string]interface{}{"REPORT_TIMEOUT": "0s"})},
		{name: "Parâmetros inválidos", values: base(map[string]interface{}{"DB_PARAMS": "a=%zz"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := build(newViper(tt.values))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestBuildDSN_MySQL(t *testing.T) {
	cfg, err := build(newViper(map[string]interface{}{
		"DB_DRIVER":       "MySQL",
		"DB_HOST":         "db.local",
		"DB_USER":         "report",
		"DB_PASS":         "s3cr3t",
		"DB_NAME":         "whmcs",
		"DB_PARAMS":       "autocommit=1",
		"REPORT_TIMEZONE": "America/Sao_Paulo",
		"REPORT_TIMEOUT":  "30s",
	}))
	require.NoError(t, err)

	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, 30*time.Second, cfg.Report.Timeout)

	parsed, err := mysql.ParseDSN(cfg.Database.DSN)
	require.NoError(t, err)

	assert.Equal(t, "report", parsed.User)
	assert.Equal(t, "s3cr3t", parsed.Passwd)
	assert.Equal(t, "db.local:3306", parsed.Addr)
	assert.Equal(t, "whmcs", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.Equal(t, "America/Sao_Paulo", parsed.Loc.String())
	assert.Equal(t, "1", parsed.Params["autocommit"])
}

func TestBuildDSN_Postgres(t *testing.T) {
	cfg, err := build(newViper(map[string]interface{}{
		"DB_DRIVER": "postgres",
		"DB_HOST":   "replica",
		"DB_PORT":   "6432",
		"DB_USER":   "report",
		"DB_PASS":   "pw",
		"DB_NAME":   "whmcs",
	}))
	require.NoError(t, err)

	assert.Equal(t, "postgres://report:pw@replica:6432/whmcs?sslmode=disable", cfg.Database.DSN)
}

func TestBuildDSN_SQLite(t *testing.T) {
	d := Database{Driver: DriverSQLite, Name: "/tmp/whmcs.db"}

	dsn, err := d.BuildDSN(nil)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/whmcs.db", dsn)

	d.Params = "_pragma=busy_timeout(5000)"
	dsn, err = d.BuildDSN(nil)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/whmcs.db?_pragma=busy_timeout(5000)", dsn)
}
