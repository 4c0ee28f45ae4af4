package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/i474232898/weather-bot/internal/weather/providers"
)

var (
	// ErrMissingCredential is returned when a required credential is not set.
	ErrMissingCredential = errors.New("missing required credential")
	// ErrInvalidConfig is returned when a setting has an unusable value.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Required credentials for running the bot.
var botCredentials = []string{"WEATHER_API", "TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID"}

type AppConfig struct {
	WeatherAPIKey  string `mapstructure:"weather_api"`
	TelegramToken  string `mapstructure:"telegram_token"`
	TelegramChatID int64  `mapstructure:"telegram_chat_id"`

	WeatherEndpoint string        `mapstructure:"weather_endpoint" validate:"required,url"`
	HTTPTimeout     time.Duration `mapstructure:"http_timeout" validate:"gt=0"`

	Port string `mapstructure:"port" validate:"required,numeric"`

	// DigestCity enables the periodic report to TelegramChatID when set.
	DigestCity     string        `mapstructure:"digest_city"`
	DigestInterval time.Duration `mapstructure:"digest_interval" validate:"gte=1m"`

	LogLevel  string `mapstructure:"log_level" validate:"oneof=trace debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"oneof=json console"`
}

var defaults = map[string]any{
	"weather_endpoint": providers.DefaultWeatherAPIEndpoint,
	"http_timeout":     "10s",
	"port":             "8080",
	"digest_interval":  "10m",
	"log_level":        "info",
	"log_format":       "json",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.ToUpper(fld.Tag.Get("mapstructure"))
	})
	return v
}

// Load reads the bot configuration from the environment. All bot
// credentials must be present.
func Load() (*AppConfig, error) {
	return load(botCredentials...)
}

// LoadReportOnly reads the configuration needed for one-off reports,
// which only talk to the weather provider.
func LoadReportOnly() (*AppConfig, error) {
	return load("WEATHER_API")
}

func load(required ...string) (*AppConfig, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for _, key := range envKeys() {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	var missing []string
	for _, name := range required {
		if strings.TrimSpace(v.GetString(strings.ToLower(name))) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingCredential, strings.Join(missing, ", "))
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(fields, ", "))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return cfg, nil
}

// envKeys lists the viper keys of every AppConfig field.
func envKeys() []string {
	t := reflect.TypeOf(AppConfig{})
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if key := t.Field(i).Tag.Get("mapstructure"); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}
