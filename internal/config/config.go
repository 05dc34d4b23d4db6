package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/trillium/massage-availability/internal/domain"
	"github.com/trillium/massage-availability/pkg/types"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Redis     RedisConfig     `toml:"redis"`
	Calendar  CalendarConfig  `toml:"calendar"`
	Schedule  ScheduleConfig  `toml:"schedule"`
	Admin     AdminConfig     `toml:"admin"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
}

// ServerConfig параметры HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // пусто = stdout
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig кэш занятости календаря, выключен при Enabled=false
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

// CalendarConfig параметры Google Calendar
type CalendarConfig struct {
	CredentialsFile string   `toml:"credentials_file"` // пусто = Application Default Credentials
	BusyCalendarIDs []string `toml:"busy_calendar_ids"`
	Timeout         int      `toml:"timeout"` // секунды

	// ContainerCalendarID календарь с событиями-контейнерами
	ContainerCalendarID string `toml:"container_calendar_id"`
}

// ScheduleConfig недельный шаблон рабочего времени владельца
type ScheduleConfig struct {
	TimeZone        string              `toml:"time_zone"`
	SlotStepMinutes int                 `toml:"slot_step_minutes"`
	Weekly          map[string][]string `toml:"weekly"` // "monday" -> ["09:00-13:00", "14:00-18:00"]
	RangeDays       int                 `toml:"range_days"`
}

type AdminConfig struct {
	Token string `toml:"token"`
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "availability",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "massage-availability",
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			TTLSeconds: 60,
		},
		Calendar: CalendarConfig{
			BusyCalendarIDs: []string{"primary"},
			Timeout:         10,
		},
		Schedule: ScheduleConfig{
			TimeZone:        domain.DefaultTimeZone,
			SlotStepMinutes: domain.DefaultSlotStepMinutes,
			Weekly:          defaultWeekly(),
			RangeDays:       domain.DefaultRangeDays,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 5,
			Burst:             20,
		},
	}
}

// Load читает TOML файл поверх значений по умолчанию
// Секреты можно передать через DATABASE_PASSWORD, REDIS_PASSWORD и ADMIN_TOKEN
func Load(path string) (*Config, error) {
	cfg := Default()
	// недельный шаблон из файла заменяет шаблон по умолчанию целиком
	cfg.Schedule.Weekly = nil

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("decode %s: unknown keys %v", path, undecoded)
	}

	if cfg.Schedule.Weekly == nil {
		cfg.Schedule.Weekly = defaultWeekly()
	}
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultWeekly() map[string][]string {
	weekly := make(map[string][]string, len(weekdays))
	for name := range weekdays {
		weekly[name] = []string{"10:00-22:00"}
	}
	return weekly
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("ADMIN_TOKEN"); v != "" {
		cfg.Admin.Token = v
	}
}

// Validate проверяет значения, без которых сервис не может работать
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port %d is out of range", c.Server.HTTPPort))
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("metrics.path %q must start with /", c.Metrics.Path))
	}
	if c.Redis.Enabled && c.Redis.TTLSeconds <= 0 {
		errs = append(errs, errors.New("redis.ttl_seconds must be positive"))
	}
	if len(c.Calendar.BusyCalendarIDs) == 0 {
		errs = append(errs, errors.New("calendar.busy_calendar_ids must not be empty"))
	}
	if c.Schedule.RangeDays <= 0 || c.Schedule.RangeDays > domain.MaxRangeDays {
		errs = append(errs, fmt.Errorf("schedule.range_days must be between 1 and %d", domain.MaxRangeDays))
	}
	if _, err := c.Schedule.Build(); err != nil {
		errs = append(errs, err)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		errs = append(errs, errors.New("ratelimit.requests_per_second and ratelimit.burst must be positive"))
	}

	return errors.Join(errs...)
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Build строит неизменяемое расписание domain.Schedule
func (s ScheduleConfig) Build() (domain.Schedule, error) {
	loc, err := time.LoadLocation(s.TimeZone)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("schedule.time_zone %q: %w", s.TimeZone, err)
	}
	if s.SlotStepMinutes <= 0 {
		return domain.Schedule{}, fmt.Errorf("schedule.slot_step_minutes must be positive, got %d", s.SlotStepMinutes)
	}

	template := make(domain.WeeklyTemplate, len(s.Weekly))
	for name, ranges := range s.Weekly {
		day, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return domain.Schedule{}, fmt.Errorf("schedule.weekly: unknown weekday %q", name)
		}
		for _, raw := range ranges {
			window, err := parseWindow(raw)
			if err != nil {
				return domain.Schedule{}, fmt.Errorf("schedule.weekly.%s: %w", name, err)
			}
			template[day] = append(template[day], window)
		}
	}

	return domain.Schedule{
		Template: template,
		Location: loc,
		Step:     time.Duration(s.SlotStepMinutes) * time.Minute,
	}, nil
}

// parseWindow разбирает окно вида "HH:MM-HH:MM"
func parseWindow(raw string) (domain.WindowRange, error) {
	from, to, ok := strings.Cut(raw, "-")
	if !ok {
		return domain.WindowRange{}, fmt.Errorf("window %q must look like HH:MM-HH:MM", raw)
	}

	start, err := types.NewTimeStringFromString(strings.TrimSpace(from))
	if err != nil {
		return domain.WindowRange{}, fmt.Errorf("window %q: %w", raw, err)
	}
	end, err := types.NewTimeStringFromString(strings.TrimSpace(to))
	if err != nil {
		return domain.WindowRange{}, fmt.Errorf("window %q: %w", raw, err)
	}

	window := domain.WindowRange{Start: start, End: end}
	if !window.Valid() {
		return domain.WindowRange{}, fmt.Errorf("window %q must open before it closes", raw)
	}
	return window, nil
}
