package nimsforestkiosk

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
)

// Config is the kiosk process configuration, read from the environment.
type Config struct {
	Addr     string `env:"KIOSK_LISTEN_ADDR" envDefault:":8080" validate:"required"`
	WebDir   string `env:"KIOSK_WEB_DIR"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn warning error fatal panic"`
	Locale   string `env:"KIOSK_LOCALE" envDefault:"en" validate:"required"`
	TimeZone string `env:"KIOSK_TIMEZONE" envDefault:"Local" validate:"required"`

	LoadStep    time.Duration `env:"KIOSK_LOAD_STEP" envDefault:"200ms" validate:"gt=0"`
	CallDelay   time.Duration `env:"KIOSK_CALL_DELAY" envDefault:"1500ms" validate:"gt=0"`
	SuccessHold time.Duration `env:"KIOSK_SUCCESS_HOLD" envDefault:"3s" validate:"gt=0"`
	ErrorHold   time.Duration `env:"KIOSK_ERROR_HOLD" envDefault:"3s" validate:"gt=0"`

	// Scenarios exposes the manual test scenarios over HTTP.
	Scenarios bool `env:"KIOSK_TEST_SCENARIOS" envDefault:"false"`

	RefreshInterval    time.Duration `env:"KIOSK_REFRESH_INTERVAL" envDefault:"0s" validate:"gte=0"`
	TVDiscoveryTimeout time.Duration `env:"KIOSK_TV_DISCOVERY_TIMEOUT" envDefault:"5s" validate:"gt=0"`
}

// LoadConfig reads and validates Config from the process environment.
func LoadConfig() (Config, error) {
	return loadConfig(env.Options{})
}

// LoadConfigFrom reads and validates Config from environ instead of the process environment.
func LoadConfigFrom(environ map[string]string) (Config, error) {
	return loadConfig(env.Options{Environment: environ})
}

func loadConfig(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints, the locale and the time zone.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.LocaleTag(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Timings returns the configured simulation delays.
func (c Config) Timings() Timings {
	return Timings{
		LoadStep:    c.LoadStep,
		CallDelay:   c.CallDelay,
		SuccessHold: c.SuccessHold,
		ErrorHold:   c.ErrorHold,
	}
}

// LocaleTag resolves Locale to a supported language.
func (c Config) LocaleTag() (language.Tag, error) {
	return ParseLocale(c.Locale)
}

// Location loads TimeZone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// KioskOptions returns the kiosk options this configuration implies.
func (c Config) KioskOptions() ([]KioskOption, error) {
	tag, err := c.LocaleTag()
	if err != nil {
		return nil, err
	}
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	return []KioskOption{
		WithTimings(c.Timings()),
		WithLocale(tag),
		WithLocation(loc),
	}, nil
}
