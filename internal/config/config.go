package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all client configuration
type Config struct {
	API     APIConfig
	Session SessionConfig
	Upload  UploadConfig
	Log     LogConfig
}

// APIConfig holds backend connection settings
type APIConfig struct {
	BaseURL  string
	Timeout  time.Duration
	PageSize int
}

// SessionConfig holds token persistence settings
type SessionConfig struct {
	TokenPath string
}

// UploadConfig holds attachment upload limits
type UploadConfig struct {
	MaxFileSize  int64 // bytes
	AllowedTypes []string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string
}

// DefaultAllowedTypes is the attachment allow-list the backend accepts.
var DefaultAllowedTypes = []string{
	// Images
	"image/jpeg", "image/png", "image/gif", "image/webp",
	// Documents
	"application/pdf", "application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	// Audio
	"audio/mpeg", "audio/wav", "audio/ogg",
	// Video
	"video/mp4", "video/webm", "video/quicktime",
}

const (
	defaultBaseURL  = "http://localhost:9090/api"
	defaultTimeout  = 15 * time.Second
	defaultPageSize = 10
	defaultMaxSize  = 10 << 20 // 10 MiB
)

// newViper builds a viper instance with defaults, env bindings and the
// optional config file wired in.
func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("api.base_url", defaultBaseURL)
	v.SetDefault("api.timeout", defaultTimeout)
	v.SetDefault("api.page_size", defaultPageSize)
	v.SetDefault("session.token_path", defaultTokenPath())
	v.SetDefault("upload.max_file_size", int64(defaultMaxSize))
	v.SetDefault("upload.allowed_types", DefaultAllowedTypes)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetEnvPrefix("FORUMCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "forumctl"))
	}
	v.AddConfigPath(".")

	return v
}

// Load reads configuration from defaults, an optional config file, and
// FORUMCTL_* environment variables, in increasing precedence. Flags already
// registered on fs override everything once the flag set is parsed.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := newViper()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if fs != nil {
		if f := fs.Lookup("server"); f != nil {
			if err := v.BindPFlag("api.base_url", f); err != nil {
				return nil, err
			}
		}
		if f := fs.Lookup("page-size"); f != nil {
			if err := v.BindPFlag("api.page_size", f); err != nil {
				return nil, err
			}
		}
		if f := fs.Lookup("timeout"); f != nil {
			if err := v.BindPFlag("api.timeout", f); err != nil {
				return nil, err
			}
		}
	}

	return &Config{
		API: APIConfig{
			BaseURL:  strings.TrimRight(v.GetString("api.base_url"), "/"),
			Timeout:  v.GetDuration("api.timeout"),
			PageSize: v.GetInt("api.page_size"),
		},
		Session: SessionConfig{
			TokenPath: v.GetString("session.token_path"),
		},
		Upload: UploadConfig{
			MaxFileSize:  v.GetInt64("upload.max_file_size"),
			AllowedTypes: v.GetStringSlice("upload.allowed_types"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}, nil
}

// Validate checks that all required configuration values are present and
// valid. It returns an error describing all validation failures, or nil.
func (c *Config) Validate() error {
	var errs []error

	// API validation
	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("FORUMCTL_API_BASE_URL is required"))
	} else {
		u, err := url.Parse(c.API.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("FORUMCTL_API_BASE_URL must be an http(s) URL, got '%s'", c.API.BaseURL))
		}
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("FORUMCTL_API_TIMEOUT must be positive"))
	}
	if c.API.PageSize <= 0 || c.API.PageSize > 100 {
		errs = append(errs, fmt.Errorf("FORUMCTL_API_PAGE_SIZE must be between 1 and 100, got %d", c.API.PageSize))
	}

	// Session validation
	if c.Session.TokenPath == "" {
		errs = append(errs, errors.New("FORUMCTL_SESSION_TOKEN_PATH is required"))
	}

	// Upload validation
	if c.Upload.MaxFileSize <= 0 {
		errs = append(errs, errors.New("FORUMCTL_UPLOAD_MAX_FILE_SIZE must be positive"))
	}
	if len(c.Upload.AllowedTypes) == 0 {
		errs = append(errs, errors.New("FORUMCTL_UPLOAD_ALLOWED_TYPES must have at least one MIME type"))
	}

	// Log validation
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("FORUMCTL_LOG_LEVEL must be debug, info, warn, or error, got '%s'", c.Log.Level))
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("FORUMCTL_LOG_FORMAT must be 'text' or 'json', got '%s'", c.Log.Format))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func defaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".forumctl-token")
	}
	return filepath.Join(dir, "forumctl", "token")
}
