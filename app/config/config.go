package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     Server     `yaml:"server"`
	Assessment Assessment `yaml:"assessment"`
	Session    Session    `yaml:"session"`
	Log        Log        `yaml:"log"`

	// Departments selectable on the entry screen, in display order
	Departments []Department `yaml:"departments" validate:"required,dive"`
	// Languages offered in the language dropdown, in display order
	Languages []Language `yaml:"languages" validate:"required,dive"`
}

type Server struct {
	// Port to listen on
	Port string `yaml:"port" example:"8080" validate:"required"`
	// Allowed CORS origins, comma-separated
	CorsOrigins string `yaml:"cors_origins" example:"http://localhost:3000"`
}

type Assessment struct {
	// Base URL of the assessment service
	BaseURL string `yaml:"base_url" example:"http://localhost:5000" validate:"required,url"`
	// Per-request timeout
	Timeout time.Duration `yaml:"timeout" example:"15s"`
	// Language used before the user picks one
	DefaultLanguage string `yaml:"default_language" example:"en" validate:"required"`
}

type Session struct {
	// Idle time after which a session is dropped
	TTL time.Duration `yaml:"ttl" example:"1h"`
	// How often expired sessions are purged
	CleanupInterval time.Duration `yaml:"cleanup_interval" example:"10m"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

type Department struct {
	ID   string `yaml:"id" validate:"required"`
	Name string `yaml:"name" validate:"required"`
}

type Language struct {
	Code string `yaml:"code" validate:"required"`
	Name string `yaml:"name" validate:"required"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	result.applyDefaults()

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Assessment.Timeout == 0 {
		c.Assessment.Timeout = 15 * time.Second
	}
	if c.Assessment.DefaultLanguage == "" {
		c.Assessment.DefaultLanguage = "en"
	}
	if c.Session.TTL == 0 {
		c.Session.TTL = time.Hour
	}
	if c.Session.CleanupInterval == 0 {
		c.Session.CleanupInterval = 10 * time.Minute
	}
	if len(c.Departments) == 0 {
		c.Departments = DefaultDepartments()
	}
	if len(c.Languages) == 0 {
		c.Languages = DefaultLanguages()
	}
}

func DefaultDepartments() []Department {
	return []Department{
		{ID: "gastrointestinal", Name: "Gastrointestinal Issues"},
		{ID: "dermatology", Name: "Skin & Dermatology"},
		{ID: "first_aid", Name: "First Aid & Emergency"},
		{ID: "general_medicine", Name: "General Medicine"},
		{ID: "mental_health", Name: "Mental Health"},
		{ID: "musculoskeletal", Name: "Musculoskeletal & Pain"},
	}
}

func DefaultLanguages() []Language {
	return []Language{
		{Code: "en", Name: "English"},
		{Code: "es", Name: "Español"},
		{Code: "fr", Name: "Français"},
		{Code: "de", Name: "Deutsch"},
		{Code: "hi", Name: "हिन्दी"},
		{Code: "ta", Name: "தமிழ்"},
		{Code: "te", Name: "తెలుగు"},
		{Code: "kn", Name: "ಕನ್ನಡ"},
		{Code: "ml", Name: "മലയാളം"},
		{Code: "bn", Name: "বাংলা"},
		{Code: "gu", Name: "ગુજરાતી"},
		{Code: "mr", Name: "मराठी"},
		{Code: "pa", Name: "ਪੰਜਾਬੀ"},
	}
}
