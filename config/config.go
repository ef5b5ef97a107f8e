package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/caawww/data-vis/analysis"
	"github.com/caawww/data-vis/models"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	CatalogCSVPath string
	LogLevel       string
	LogFormat      string

	MaxConcurrency       int
	MaxRetries           int
	MinIntersectionItems int

	// Analysis holds the defaults for every analysis command; CLI flags
	// override individual fields.
	Analysis   analysis.Params
	OwnerTiers models.OwnerTiers
	PresetFile string

	// EnvFileLoaded reports whether a .env file was found.
	EnvFileLoaded bool
}

// Preset is the YAML document referenced by ANALYSIS_PRESET_FILE. Keys that
// are left out keep the value they had before the preset was applied.
type Preset struct {
	Analysis   analysis.Params   `yaml:"analysis"`
	OwnerTiers models.OwnerTiers `yaml:"owner_tiers"`
}

// Load reads the .env file, then the environment, then the optional preset.
func Load() (*Config, error) {
	envErr := godotenv.Load()

	def := analysis.DefaultParams()
	cfg := &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "datavis"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "datavis123"),
		PostgresDB:       getEnv("POSTGRES_DB", "steam_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		CatalogCSVPath: getEnv("CATALOG_CSV_PATH", "./data/games.csv"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),

		MaxConcurrency:       getEnvInt("MAX_CONCURRENCY", 4),
		MaxRetries:           getEnvInt("MAX_RETRIES", 3),
		MinIntersectionItems: getEnvInt("MIN_INTERSECTION_ITEMS", 50),

		Analysis: analysis.Params{
			Dimension:        models.Dimension(getEnv("LABEL_DIMENSION", string(def.Dimension))),
			YearFrom:         getEnvInt("YEAR_FROM", def.YearFrom),
			YearTo:           getEnvInt("YEAR_TO", def.YearTo),
			MinGamesPerLabel: getEnvInt("MIN_GAMES_PER_LABEL", def.MinGamesPerLabel),
			Method:           analysis.Method(getEnv("AGGREGATION_METHOD", string(def.Method))),
			Demand:           analysis.DemandMetric(getEnv("DEMAND_METRIC", string(def.Demand))),
			Mode:             def.Mode,
			MinReviews:       getEnvFloat("MIN_REVIEWS", def.MinReviews),
			MinPeakCCU:       getEnvFloat("MIN_PEAK_CCU", def.MinPeakCCU),
			TopK:             getEnvInt("RANKING_TOP_K", def.TopK),
		},
		OwnerTiers: models.DefaultOwnerTiers,
		PresetFile: getEnv("ANALYSIS_PRESET_FILE", ""),

		EnvFileLoaded: envErr == nil,
	}

	if cfg.PresetFile != "" {
		preset, err := LoadPreset(cfg.PresetFile, Preset{Analysis: cfg.Analysis, OwnerTiers: cfg.OwnerTiers})
		if err != nil {
			return nil, err
		}
		cfg.Analysis = preset.Analysis
		cfg.OwnerTiers = preset.OwnerTiers
	}

	if err := cfg.Analysis.Validate(); err != nil {
		return nil, fmt.Errorf("config: analysis defaults: %w", err)
	}
	return cfg, nil
}

// LoadPreset applies the YAML file at path on top of base.
func LoadPreset(path string, base Preset) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("config: read preset: %w", err)
	}
	p := base
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("config: parse preset %s: %w", path, err)
	}
	if len(p.OwnerTiers) == 0 {
		return Preset{}, fmt.Errorf("config: preset %s: owner_tiers must not be empty", path)
	}
	return p, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}
