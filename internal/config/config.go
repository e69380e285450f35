package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Cfg struct {
	App        App
	Database   Database
	Logger     Logger
	Browser    Browser
	Scraper    Scraper
	Output     Output
	Migrations Migrations
}

type Database struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Enabled сообщает, настроена ли история запусков в PostgreSQL
func (d Database) Enabled() bool {
	return d.Host != ""
}

// DSN строка подключения key=value, значения в кавычках
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		quoteDSN(d.Host), quoteDSN(d.Port), quoteDSN(d.User), quoteDSN(d.Password), quoteDSN(d.Name))
}

// URL адрес для migrate, логин и пароль экранируются
func (d Database) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func quoteDSN(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

type App struct {
	Host string
	Port string
}

// Addr адрес HTTP сервера команды serve
func (a App) Addr() string {
	return a.Host + ":" + a.Port
}

type Migrations struct {
	Path string
}

type Logger struct {
	Env   string
	Level string
}

type Browser struct {
	Engine     string
	Headless   bool
	UserAgent  string
	Timeout    time.Duration
	NavTimeout time.Duration
}

type Scraper struct {
	URL          string
	RegionsFile  string
	SettleDelay  time.Duration
	TableTimeout time.Duration
}

type Output struct {
	BaseDir     string
	MetricsFile string
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36"

func Load() (*Cfg, error) {
	_ = godotenv.Load()

	cfg := &Cfg{
		App: App{
			Host: env("APP_HOST", "127.0.0.1"),
			Port: env("APP_PORT", "8080"),
		},
		Database: Database{
			Host:     os.Getenv("DB_HOST"),
			Port:     env("DB_PORT", "5432"),
			Name:     os.Getenv("DB_NAME"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASS"),
		},
		Logger: Logger{
			Env:   env("ENV", "dev"),
			Level: env("LOG_LEVEL", "info"),
		},
		Browser: Browser{
			Engine:     strings.ToLower(env("PW_BROWSER", "chromium")),
			Headless:   envBoolDefault("PW_HEADLESS", true),
			UserAgent:  env("PW_USER_AGENT", defaultUserAgent),
			Timeout:    envDuration("PW_TIMEOUT", 30*time.Second),
			NavTimeout: envDuration("PW_NAVIGATE_TIMEOUT", 60*time.Second),
		},
		Scraper: Scraper{
			URL:          env("SCRAPER_URL", "https://tradingeconomics.com/country-list/temperature"),
			RegionsFile:  os.Getenv("SCRAPER_REGIONS_FILE"),
			SettleDelay:  envDuration("SCRAPER_SETTLE_DELAY", 3*time.Second),
			TableTimeout: envDuration("SCRAPER_TABLE_TIMEOUT", 20*time.Second),
		},
		Output: Output{
			BaseDir:     env("OUTPUT_DIR", "test_results"),
			MetricsFile: env("METRICS_FILE", "scraper.prom"),
		},
		Migrations: Migrations{
			Path: env("MIGRATIONS_PATH", "file://migrations"),
		},
	}

	switch cfg.Browser.Engine {
	case "chromium", "firefox", "webkit":
	default:
		return nil, fmt.Errorf("неизвестный браузер PW_BROWSER=%q", cfg.Browser.Engine)
	}

	if cfg.Database.Enabled() && cfg.Database.Name == "" {
		return nil, fmt.Errorf("DB_NAME обязателен, если задан DB_HOST")
	}

	return cfg, nil
}

func env(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func envInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "true" || v == "1" || v == "yes"
}

func envBoolDefault(key string, defaultValue bool) bool {
	if os.Getenv(key) == "" {
		return defaultValue
	}
	return envBool(key)
}

// envDuration принимает как "20s", так и голое число секунд
func envDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n := envInt(key, 0); n > 0 {
		return time.Duration(n) * time.Second
	}
	return defaultValue
}
