package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"mcq-server/utils"
)

const (
	SourceFile     = "file"
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	ServerPort   string          `mapstructure:"SERVER_PORT" validate:"required"`
	GinMode      string          `mapstructure:"GIN_MODE" validate:"oneof=debug release test"`
	Env          string          `mapstructure:"ENV" validate:"oneof=development production"`
	DatabaseURL  string          `mapstructure:"DATABASE_URL"`
	TemplatesDir string          `mapstructure:"TEMPLATES_DIR"`
	Questions    QuestionsConfig `mapstructure:"QUESTIONS"`
	Session      SessionConfig   `mapstructure:"SESSION"`
	Converter    ConverterConfig `mapstructure:"CONVERTER"`

	// ConfigFile is the config.yaml that was read, empty when none was found.
	ConfigFile string `mapstructure:"-"`
}

// QuestionsConfig selects where the question list is loaded from.
type QuestionsConfig struct {
	Source   string        `mapstructure:"SOURCE" validate:"oneof=file http postgres"`
	Path     string        `mapstructure:"PATH" validate:"required_if=Source file"`
	URL      string        `mapstructure:"URL" validate:"required_if=Source http,omitempty,url"`
	MetaPath string        `mapstructure:"META_PATH"`
	Timeout  time.Duration `mapstructure:"TIMEOUT" validate:"min=0"`
}

// SessionConfig holds the browser session cookie settings.
type SessionConfig struct {
	SigningKey    string        `mapstructure:"SIGNING_KEY" validate:"required,min=16"`
	CookieName    string        `mapstructure:"COOKIE_NAME" validate:"required"`
	TTL           time.Duration `mapstructure:"TTL" validate:"min=1m"`
	SweepInterval time.Duration `mapstructure:"SWEEP_INTERVAL" validate:"min=1s"`
}

// ConverterConfig holds the pdf2json defaults.
type ConverterConfig struct {
	DefaultInput string `mapstructure:"DEFAULT_INPUT" validate:"required"`
	RawTextPath  string `mapstructure:"RAW_TEXT_PATH" validate:"required"`
	OutputPath   string `mapstructure:"OUTPUT_PATH" validate:"required"`
	PdfToText    string `mapstructure:"PDFTOTEXT" validate:"required"` // fallback extractor binary
	Publish      bool   `mapstructure:"PUBLISH"`                       // load results into DATABASE_URL when set
}

// LoadConfig loads configuration from config.yaml (searched in paths, default ".")
// and MCQ_ prefixed environment variables, e.g. MCQ_QUESTIONS_SOURCE.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetDefault("SERVER_PORT", ":8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("ENV", "development")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("TEMPLATES_DIR", "templates")
	v.SetDefault("QUESTIONS.SOURCE", SourceFile)
	v.SetDefault("QUESTIONS.PATH", "public/questions.json")
	v.SetDefault("QUESTIONS.URL", "")
	v.SetDefault("QUESTIONS.META_PATH", "public/exam.yaml")
	v.SetDefault("QUESTIONS.TIMEOUT", "10s")
	v.SetDefault("SESSION.SIGNING_KEY", "change-me-mcq-session-signing-key") // override in production
	v.SetDefault("SESSION.COOKIE_NAME", "mcq_session")
	v.SetDefault("SESSION.TTL", "2h")
	v.SetDefault("SESSION.SWEEP_INTERVAL", "5m")
	v.SetDefault("CONVERTER.DEFAULT_INPUT", "GE MCQ's pdf.pdf")
	v.SetDefault("CONVERTER.RAW_TEXT_PATH", "pdf-raw-text.txt")
	v.SetDefault("CONVERTER.OUTPUT_PATH", "public/questions.json")
	v.SetDefault("CONVERTER.PDFTOTEXT", "pdftotext")
	v.SetDefault("CONVERTER.PUBLISH", true)

	v.SetEnvPrefix("MCQ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("fatal error config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := utils.ValidateStruct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
