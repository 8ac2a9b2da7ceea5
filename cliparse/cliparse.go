package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Watcher settings
	APIBaseURL   string
	TenantID     string
	Token        string
	RememberMe   bool
	PollInterval time.Duration

	// Durable state store (watcher) / order database (simulator)
	DatabaseURL  string
	DatabaseType string

	// Simulator settings
	Port      int
	TokenSalt string
}

// fileConfig is the optional YAML config file shape for the watcher.
type fileConfig struct {
	APIBaseURL   string `yaml:"api_base_url"`
	TenantID     string `yaml:"tenant_id"`
	Token        string `yaml:"token"`
	Remember     bool   `yaml:"remember"`
	PollInterval string `yaml:"poll_interval"`
	DatabaseURL  string `yaml:"database_url"`
	DatabaseType string `yaml:"database_type"`
}

// ParseFlags parses the watcher configuration. Precedence: CLI flags, then
// environment, then the YAML config file, then defaults. A .env file in the
// working directory is loaded into the environment first when present.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var configPath string
	var intervalFlag string

	// Best-effort: absence of a .env file is the normal case
	_ = godotenv.Load()

	fs := flag.NewFlagSet("order-watch", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "api", "", "Order API base URL")
	fs.StringVar(&cfg.TenantID, "tenant", "", "Tenant (supermarket) id")
	fs.StringVar(&cfg.Token, "token", "", "Bearer token (prefer env)")
	fs.BoolVar(&cfg.RememberMe, "remember", false, "Persist the token across runs")
	fs.StringVar(&intervalFlag, "interval", "", "Poll interval (e.g. 4s)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "State database URL or sqlite path")
	fs.StringVar(&cfg.DatabaseType, "t", "", "State database type (sqlite or postgres)")
	fs.StringVar(&configPath, "config", "", "YAML config file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = os.Getenv("API_BASE_URL")
	}
	if cfg.TenantID == "" {
		cfg.TenantID = os.Getenv("TENANT_ID")
	}
	if cfg.Token == "" {
		cfg.Token = os.Getenv("API_TOKEN")
	}
	if !cfg.RememberMe {
		cfg.RememberMe = os.Getenv("REMEMBER_TOKEN") == "true"
	}
	if intervalFlag == "" {
		intervalFlag = os.Getenv("POLL_INTERVAL")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
	}
	if configPath == "" {
		configPath = os.Getenv("ORDER_WATCH_CONFIG")
	}

	// Then the YAML config file
	if configPath != "" {
		fc, err := loadFile(configPath)
		if err != nil {
			return Config{}, err
		}
		if cfg.APIBaseURL == "" {
			cfg.APIBaseURL = fc.APIBaseURL
		}
		if cfg.TenantID == "" {
			cfg.TenantID = fc.TenantID
		}
		if cfg.Token == "" {
			cfg.Token = fc.Token
		}
		if !cfg.RememberMe {
			cfg.RememberMe = fc.Remember
		}
		if intervalFlag == "" {
			intervalFlag = fc.PollInterval
		}
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = fc.DatabaseURL
		}
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = fc.DatabaseType
		}
	}

	// Then defaults
	if intervalFlag != "" {
		d, err := time.ParseDuration(intervalFlag)
		if err != nil {
			return Config{}, fmt.Errorf("invalid poll interval %q: %w", intervalFlag, err)
		}
		cfg.PollInterval = d
	} else {
		cfg.PollInterval = 4 * time.Second
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = "sqlite"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "order-watch.db"
	}

	if cfg.APIBaseURL == "" {
		return Config{}, errors.New("API base URL required (use -api or API_BASE_URL env)")
	}
	if cfg.TenantID == "" {
		return Config{}, errors.New("tenant id required (use -tenant or TENANT_ID env)")
	}

	return cfg, nil
}

// ParseSimFlags parses the order API simulator configuration.
func ParseSimFlags(args []string) (Config, error) {
	var cfg Config

	_ = godotenv.Load()

	fs := flag.NewFlagSet("ordersim", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or sqlite path")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.TokenSalt, "token-salt", "", "Integration token salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3380 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "ordersim.db"
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}

	// Secret - MUST be provided
	if cfg.TokenSalt == "" {
		cfg.TokenSalt = os.Getenv("TOKEN_SALT")
	}
	if cfg.TokenSalt == "" {
		return Config{}, errors.New("TOKEN_SALT required")
	}

	return cfg, nil
}

func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	return fc, nil
}
