package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del scanner.
type Config struct {
	Scanner ScannerConfig `yaml:"scanner"`
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// ScannerConfig controla el comportamiento del scanner.
type ScannerConfig struct {
	SportKey             string   `yaml:"sport_key"`              // tennis_atp, tennis_wta...
	Regions              []string `yaml:"regions"`                // uk, eu, us, au
	MinEdgePct           float64  `yaml:"min_edge_pct"`           // edge mínimo en %
	Bankroll             float64  `yaml:"bankroll"`               // para el cálculo de stakes
	RequireDistinctBooks *bool    `yaml:"require_distinct_books"` // casas distintas por lado
	IntervalSeconds      int      `yaml:"interval_seconds"`
	CacheTTLSeconds      int      `yaml:"cache_ttl_seconds"` // TTL de caché de la API
	Workers              int      `yaml:"workers"`           // 0 = NumCPU
}

// APIConfig contiene el base URL y la API key de The Odds API.
// La key no va en el YAML: se lee de THE_ODDS_API_KEY (env o .env).
type APIConfig struct {
	BaseURL string `yaml:"base_url"`

	key string
}

// StorageConfig controla dónde se persisten los datos.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Las variables de entorno sobreescriben el YAML para las keys que correspondan.
// Falla si THE_ODDS_API_KEY no está definida: sin key no hay datos.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if cfg.API.key == "" {
		return nil, fmt.Errorf("config.Load: THE_ODDS_API_KEY no definida (env o .env)")
	}

	return &cfg, nil
}

// APIKey devuelve la API key de The Odds API.
func (c *Config) APIKey() string {
	return c.API.key
}

// ScanInterval devuelve el intervalo de escaneo como time.Duration.
func (c *Config) ScanInterval() time.Duration {
	return time.Duration(c.Scanner.IntervalSeconds) * time.Second
}

// CacheTTL devuelve el TTL de la caché de la API como time.Duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Scanner.CacheTTLSeconds) * time.Second
}

// RequireDistinctBooks devuelve el flag con default true si no se configuró.
func (c *Config) RequireDistinctBooks() bool {
	if c.Scanner.RequireDistinctBooks == nil {
		return true
	}
	return *c.Scanner.RequireDistinctBooks
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	cfg.API.key = os.Getenv("THE_ODDS_API_KEY")

	if v := os.Getenv("SPORT_KEY"); v != "" {
		cfg.Scanner.SportKey = v
	}
	if v := os.Getenv("MIN_EDGE_PCT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Scanner.MinEdgePct = f
		}
	}
	if v := os.Getenv("BANKROLL"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Scanner.Bankroll = f
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Scanner.SportKey == "" {
		cfg.Scanner.SportKey = "tennis_atp"
	}
	if len(cfg.Scanner.Regions) == 0 {
		cfg.Scanner.Regions = []string{"uk", "eu"}
	}
	if cfg.Scanner.MinEdgePct <= 0 {
		cfg.Scanner.MinEdgePct = 1.0
	}
	if cfg.Scanner.Bankroll <= 0 {
		cfg.Scanner.Bankroll = 100
	}
	if cfg.Scanner.IntervalSeconds <= 0 {
		cfg.Scanner.IntervalSeconds = 60
	}
	if cfg.Scanner.CacheTTLSeconds < 0 {
		cfg.Scanner.CacheTTLSeconds = 0
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://api.the-odds-api.com/v4"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "tennisarb.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
