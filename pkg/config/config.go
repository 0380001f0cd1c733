package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	BackendGraph      = "graph"
	BackendRelational = "relational"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	// Store selection
	StoreBackend string `koanf:"store_backend" default:"relational" validate:"oneof=graph relational"`

	// Relational database
	DatabaseDriver            string        `koanf:"database_driver" default:"sqlite" validate:"oneof=sqlite postgres"`
	DatabaseFilePath          string        `koanf:"database_file_path"`
	DatabaseURL               string        `koanf:"database_url"`
	DatabaseDebug             bool          `koanf:"database_debug"`
	DatabaseConnectRetryCount int           `koanf:"database_connect_retry_count" default:"5" validate:"min=1"`
	DatabaseConnectRetryDelay time.Duration `koanf:"database_connect_retry_delay" default:"2s"`
	DatabaseMaxRetries        int           `koanf:"database_max_retries" default:"5" validate:"min=0"`
	DatabaseBusyTimeout       time.Duration `koanf:"database_busy_timeout" default:"5s"`
	DatabaseMaxOpenConns      int           `koanf:"database_max_open_conns" default:"10" validate:"min=1,max=10"`

	// Graph database
	Neo4jURI         string `koanf:"neo4j_uri" default:"bolt://localhost:7687"`
	Neo4jUser        string `koanf:"neo4j_user" default:"neo4j"`
	Neo4jPassword    string `koanf:"neo4j_password"`
	Neo4jDatabase    string `koanf:"neo4j_database"`
	Neo4jMaxPoolSize int    `koanf:"neo4j_max_pool_size" default:"10" validate:"min=1,max=10"`

	// Description generation
	GeminiAPIKey         string        `koanf:"gemini_api_key"`
	GeminiAPIURL         string        `koanf:"gemini_api_url"`
	DescriptionTimeout   time.Duration `koanf:"description_timeout" default:"10s"`
	DescriptionMinLength int           `koanf:"description_min_length" default:"10" validate:"min=0"`

	// Migration tool
	MigrationOutputPath string `koanf:"migration_output_path" default:"db_init/data_neo4j.cypher"`

	// HTTP server
	ServerHost string `koanf:"server_host" default:"0.0.0.0"`
	ServerPort int    `koanf:"server_port" default:"5000" validate:"min=0,max=65535"`
	StaticDir  string `koanf:"static_dir" default:"./static"`
}

const (
	configFileENV  = "CONFIG_FILE"
	dotenvFileENV  = "DOTENV_FILE"
	defaultConfig  = "./config.yaml"
	defaultEnvFile = ".env"
)

// New loads the configuration. Values are layered as defaults, then the YAML
// config file, then environment variables (which may come from a .env file).
func New() (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	// Variables already in the environment win over the .env file.
	envFile := os.Getenv(dotenvFileENV)
	if envFile == "" {
		envFile = defaultEnvFile
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, errors.Wrapf(err, "failed to read env file %s", envFile)
		}
	}

	k := koanf.New(".")

	configFile := os.Getenv(configFileENV)
	if configFile == "" {
		configFile = defaultConfig
	}
	if _, err := os.Stat(configFile); err == nil {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config file %s", configFile)
		}
	}

	keys := knownKeys()
	err := k.Load(env.Provider("", ".", func(s string) string {
		key := strings.ToLower(s)
		if _, ok := keys[key]; !ok {
			return ""
		}
		return key
	}), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) validate() error {
	var missing []string
	for _, key := range cfg.requiredKeys() {
		missing = append(missing, fmt.Sprintf("%s (%s)", strings.ToUpper(key), key))
	}
	if len(missing) > 0 {
		return errors.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}

	if err := validator.New().Struct(cfg); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

// requiredKeys returns the keys that must be set for the selected backend but
// are empty.
func (cfg *Config) requiredKeys() []string {
	var keys []string
	switch cfg.StoreBackend {
	case BackendGraph:
		if cfg.Neo4jURI == "" {
			keys = append(keys, "neo4j_uri")
		}
	case BackendRelational:
		switch cfg.DatabaseDriver {
		case DriverSQLite:
			if cfg.DatabaseFilePath == "" {
				keys = append(keys, "database_file_path")
			}
		case DriverPostgres:
			if cfg.DatabaseURL == "" {
				keys = append(keys, "database_url")
			}
		}
	}
	return keys
}

// RelationalConfigured reports whether enough settings are present to open
// the relational database. The migration tool needs it even when the API
// serves from the graph.
func (cfg *Config) RelationalConfigured() bool {
	if cfg.DatabaseDriver == DriverPostgres {
		return cfg.DatabaseURL != ""
	}
	return cfg.DatabaseFilePath != ""
}

func knownKeys() map[string]struct{} {
	keys := map[string]struct{}{}
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("koanf"); tag != "" {
			keys[tag] = struct{}{}
		}
	}
	return keys
}
