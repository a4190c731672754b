package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/obriclabs/corpgraph/internal/platform/envutil"
	"github.com/obriclabs/corpgraph/internal/platform/neo4jdb"
	"github.com/obriclabs/corpgraph/internal/platform/openai"
)

// Config holds everything the process needs at startup. Values come from
// an optional YAML file (CORPGRAPH_CONFIG) with environment variables
// layered on top; env always wins.
type Config struct {
	HTTPAddr string         `yaml:"http_addr"`
	LogMode  string         `yaml:"log_mode"`
	Neo4j    neo4jdb.Config `yaml:"neo4j"`
	OpenAI   openai.Config  `yaml:"openai"`
}

func Load() (Config, error) {
	cfg := Config{
		HTTPAddr: ":8080",
		LogMode:  "development",
	}

	if path := strings.TrimSpace(os.Getenv("CORPGRAPH_CONFIG")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.HTTPAddr = envutil.Str("HTTP_ADDR", cfg.HTTPAddr)
	cfg.LogMode = envutil.Str("LOG_MODE", cfg.LogMode)

	cfg.Neo4j.URI = envutil.Str("NEO4J_URI", cfg.Neo4j.URI)
	cfg.Neo4j.User = envutil.Str("NEO4J_USER", cfg.Neo4j.User)
	cfg.Neo4j.Password = envutil.Str("NEO4J_PASSWORD", cfg.Neo4j.Password)
	cfg.Neo4j.Database = envutil.Str("NEO4J_DATABASE", cfg.Neo4j.Database)
	cfg.Neo4j.TimeoutSeconds = envutil.Int("NEO4J_TIMEOUT_SECONDS", cfg.Neo4j.TimeoutSeconds)
	cfg.Neo4j.MaxPoolSize = envutil.Int("NEO4J_MAX_POOL_SIZE", cfg.Neo4j.MaxPoolSize)

	cfg.OpenAI.APIKey = envutil.Str("OPENAI_API_KEY", cfg.OpenAI.APIKey)
	cfg.OpenAI.Model = envutil.Str("OPENAI_EMBEDDING_MODEL", cfg.OpenAI.Model)
	cfg.OpenAI.Dimensions = envutil.Int("OPENAI_EMBEDDING_DIMENSIONS", cfg.OpenAI.Dimensions)

	if strings.TrimSpace(cfg.Neo4j.URI) == "" {
		return Config{}, fmt.Errorf("config: NEO4J_URI is required")
	}
	return cfg, nil
}
