package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Drivers suportados
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ErrInvalidConfig indica configuração ausente ou inválida
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	App      App      `mapstructure:",squash"`
	Database Database `mapstructure:",squash"`
	Report   Report   `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"db_driver"`
	Host     string `mapstructure:"db_host"`
	Port     string `mapstructure:"db_port"`
	User     string `mapstructure:"db_user"`
	Password string `mapstructure:"db_pass"`
	Name     string `mapstructure:"db_name"`
	Params   string `mapstructure:"db_params"`
}

type Report struct {
	CronSchedule string         `mapstructure:"report_cron_schedule"`
	TimeZone     string         `mapstructure:"report_timezone"`
	Timeout      time.Duration  `mapstructure:"report_timeout"`
	Location     *time.Location `mapstructure:"-"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("DB_DRIVER", DriverMySQL)
	v.SetDefault("DB_HOST", "")
	v.SetDefault("DB_PORT", "")
	v.SetDefault("DB_USER", "")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("DB_NAME", "")
	v.SetDefault("DB_PARAMS", "")

	v.SetDefault("REPORT_CRON_SCHEDULE", "0 0 1 * *") // Primeiro dia de cada mês
	v.SetDefault("REPORT_TIMEZONE", "Local")
	v.SetDefault("REPORT_TIMEOUT", "2m")

	v.SetDefault("LOG_LEVEL", "info")
}

// NewConfig carrega .env (se existir), variáveis de ambiente e valores padrão
func NewConfig() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	return build(v)
}

func build(v *viper.Viper) (*Config, error) {
	config := &Config{}

	// AutomaticEnv só é consultado para chaves conhecidas, por isso o Unmarshal
	// depende dos SetDefault acima
	err := v.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	config.Database.Driver = strings.ToLower(strings.TrimSpace(config.Database.Driver))

	if err := config.Validate(); err != nil {
		return nil, err
	}

	loc, err := loadLocation(config.Report.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("%w: REPORT_TIMEZONE %q: %v", ErrInvalidConfig, config.Report.TimeZone, err)
	}
	config.Report.Location = loc

	dsn, err := config.Database.BuildDSN(loc)
	if err != nil {
		return nil, err
	}
	config.Database.DSN = dsn

	return config, nil
}

// Validate verifica as credenciais obrigatórias para o driver escolhido
func (c *Config) Validate() error {
	var missing []string

	switch c.Database.Driver {
	case DriverMySQL, DriverPostgres:
		if c.Database.Host == "" {
			missing = append(missing, "DB_HOST")
		}
		if c.Database.User == "" {
			missing = append(missing, "DB_USER")
		}
		if c.Database.Name == "" {
			missing = append(missing, "DB_NAME")
		}
	case DriverSQLite:
		if c.Database.Name == "" {
			missing = append(missing, "DB_NAME")
		}
	default:
		return fmt.Errorf("%w: unsupported DB_DRIVER %q", ErrInvalidConfig, c.Database.Driver)
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidConfig, strings.Join(missing, ", "))
	}

	if c.Report.Timeout <= 0 {
		return fmt.Errorf("%w: REPORT_TIMEOUT must be positive", ErrInvalidConfig)
	}

	return nil
}

// BuildDSN monta a string de conexão no formato de cada driver
func (d Database) BuildDSN(loc *time.Location) (string, error) {
	switch d.Driver {
	case DriverMySQL:
		port := d.Port
		if port == "" {
			port = "3306"
		}

		mc := mysql.NewConfig()
		mc.User = d.User
		mc.Passwd = d.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(d.Host, port)
		mc.DBName = d.Name
		mc.ParseTime = true
		if loc != nil {
			mc.Loc = loc
		}
		if d.Params != "" {
			params, err := url.ParseQuery(d.Params)
			if err != nil {
				return "", fmt.Errorf("%w: DB_PARAMS: %v", ErrInvalidConfig, err)
			}
			mc.Params = make(map[string]string, len(params))
			for k := range params {
				mc.Params[k] = params.Get(k)
			}
		}
		return mc.FormatDSN(), nil

	case DriverPostgres:
		port := d.Port
		if port == "" {
			port = "5432"
		}

		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(d.User, d.Password),
			Host:   net.JoinHostPort(d.Host, port),
			Path:   "/" + d.Name,
		}
		params := d.Params
		if params == "" {
			params = "sslmode=disable"
		}
		u.RawQuery = params
		return u.String(), nil

	case DriverSQLite:
		if d.Params != "" {
			return d.Name + "?" + d.Params, nil
		}
		return d.Name, nil
	}

	return "", fmt.Errorf("%w: unsupported DB_DRIVER %q", ErrInvalidConfig, d.Driver)
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

// Função auxiliar para carregar o arquivo .env usando godotenv.
// Variáveis já definidas no ambiente têm precedência.
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			return
		}
	}
}
