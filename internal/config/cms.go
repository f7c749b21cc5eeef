package config

import (
	"bytes"
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	// EnvInjectedConfig is the variable the hosting pipeline injects the production configuration into.
	EnvInjectedConfig = "CMS_CONFIG"

	// DefaultDevConfigFile is the local development configuration file.
	DefaultDevConfigFile = "config/dev-config.json"

	// TokenPrefix is the prefix every repository access token must carry.
	TokenPrefix = "ghp_"

	placeholderMarker = "YOUR_"
)

// StoreConfig holds the identity and document store connection settings.
type StoreConfig struct {
	APIKey     string `mapstructure:"apiKey" json:"apiKey" validate:"required,noplaceholder"`
	AuthDomain string `mapstructure:"authDomain" json:"authDomain" validate:"required,noplaceholder,url"`
	ProjectID  string `mapstructure:"projectId" json:"projectId" validate:"required,noplaceholder"`
	Driver     string `mapstructure:"driver" json:"driver" validate:"required,oneof=mongo postgres memory"`
	URI        string `mapstructure:"uri" json:"uri" validate:"required,noplaceholder"`
	AdminEmail string `mapstructure:"adminEmail" json:"adminEmail" validate:"required,noplaceholder,email"`
}

// S3Config holds the S3-compatible file backend settings, used when RepoConfig.Files is "s3".
type S3Config struct {
	Endpoint   string `mapstructure:"endpoint" json:"endpoint" validate:"required,noplaceholder"`
	AccessKey  string `mapstructure:"accessKey" json:"accessKey" validate:"required,noplaceholder"`
	SecretKey  string `mapstructure:"secretKey" json:"secretKey" validate:"required,noplaceholder"`
	Bucket     string `mapstructure:"bucket" json:"bucket" validate:"required,noplaceholder"`
	UseSSL     bool   `mapstructure:"useSSL" json:"useSSL"`
	PublicBase string `mapstructure:"publicBase" json:"publicBase" validate:"required,url"`
}

// RepoConfig holds the file-hosting repository settings. The same token authenticates the
// build trigger.
type RepoConfig struct {
	Owner   string    `mapstructure:"owner" json:"owner" validate:"required,noplaceholder"`
	Repo    string    `mapstructure:"repo" json:"repo" validate:"required,noplaceholder"`
	Token   string    `mapstructure:"token" json:"token" validate:"required,noplaceholder,startswith=ghp_"`
	APIBase string    `mapstructure:"apiBase" json:"apiBase" validate:"required,noplaceholder,url"`
	Branch  string    `mapstructure:"branch" json:"branch"`
	Files   string    `mapstructure:"files" json:"files" validate:"omitempty,oneof=github s3"`
	S3      *S3Config `mapstructure:"s3" json:"s3"`
}

// Config is the validated CMS configuration.
type Config struct {
	Store *StoreConfig `mapstructure:"store" json:"store" validate:"required"`
	Repo  *RepoConfig  `mapstructure:"repo" json:"repo" validate:"required"`
}

// FileBackend returns the configured file backend, "github" unless set otherwise.
func (c *Config) FileBackend() string {
	if c.Repo == nil || c.Repo.Files == "" {
		return "github"
	}
	return c.Repo.Files
}

// Loader resolves the CMS configuration once per process.
// Production configuration injected through EnvInjectedConfig wins over the development file.
type Loader struct {
	File      string
	LookupEnv func(string) (string, bool)

	mu  sync.Mutex
	cfg *Config
}

// NewLoader creates a Loader falling back to the given development file.
func NewLoader(file string) *Loader {
	if file == "" {
		file = DefaultDevConfigFile
	}
	return &Loader{File: file, LookupEnv: os.LookupEnv}
}

// Load returns the cached configuration or resolves and validates it.
// Failures are not cached so a later call can succeed once the setup is fixed.
func (l *Loader) Load() (*Config, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cfg != nil {
		return l.cfg, nil
	}

	cfg, err := l.loadProd()
	switch {
	case errors.Is(err, ErrProdConfigMissing):
		log.Debug().Msg("production config not set, trying local config")

		cfg, err = l.loadDev()
		if err != nil {
			return nil, errors.Wrap(err, "configuration loading failed")
		}
	case err != nil:
		return nil, errors.Wrap(err, "configuration loading failed")
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration loading failed")
	}

	l.cfg = cfg
	return cfg, nil
}

func (l *Loader) loadProd() (*Config, error) {
	lookup := l.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	raw, ok := lookup(EnvInjectedConfig)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, ErrProdConfigMissing
	}

	return decode([]byte(raw))
}

func (l *Loader) loadDev() (*Config, error) {
	raw, err := os.ReadFile(l.File)
	if err != nil {
		return nil, errors.Wrapf(err,
			"local config error; please create and configure %s with your store and repository settings", l.File)
	}

	cfg, err := decode(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "local config error in %s", l.File)
	}
	return cfg, nil
}

func decode(raw []byte) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")

	if err := v.ReadConfig(bytes.NewReader(raw)); err != nil {
		return nil, errors.Wrap(err, "malformed configuration")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "malformed configuration")
	}
	return &cfg, nil
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func configValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("noplaceholder", func(fl validator.FieldLevel) bool {
			return !strings.Contains(fl.Field().String(), placeholderMarker)
		})
	})
	return validate
}

// Validate checks required sections and fields, placeholder values and the token format.
// The first problem found is returned as a *ValidationError naming the field.
func Validate(cfg *Config) error {
	if cfg == nil {
		return &ValidationError{Field: "", Msg: "configuration is empty"}
	}

	err := configValidator().Struct(cfg)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fieldError(verrs[0])
		}
		return errors.Wrap(err, "validate configuration")
	}

	if cfg.Repo.Files == "s3" && cfg.Repo.S3 == nil {
		return &ValidationError{Field: "repo.s3", Msg: "configuration section 'repo.s3' is missing"}
	}

	return nil
}

func fieldError(fe validator.FieldError) *ValidationError {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		if fe.Kind() == reflect.Ptr || !strings.Contains(field, ".") {
			return &ValidationError{Field: field, Msg: fmt.Sprintf("configuration section '%s' is missing", field)}
		}
		return &ValidationError{Field: field, Msg: fmt.Sprintf("configuration field '%s' is missing", field)}
	case "noplaceholder":
		return &ValidationError{Field: field, Msg: fmt.Sprintf(
			"configuration field '%s' holds a placeholder value; configure it with real credentials", field)}
	case "startswith":
		return &ValidationError{Field: field, Msg: fmt.Sprintf(
			"invalid repository token format - must start with %s", fe.Param())}
	case "oneof":
		return &ValidationError{Field: field, Msg: fmt.Sprintf(
			"configuration field '%s' must be one of: %s", field, fe.Param())}
	default:
		return &ValidationError{Field: field, Msg: fmt.Sprintf(
			"configuration field '%s' is invalid (%s)", field, fe.Tag())}
	}
}
