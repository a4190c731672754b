package neo4jdb

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/obriclabs/corpgraph/internal/platform/logger"
)

// ConnectionError means the graph store could not be reached. It carries
// the target URI so operators can tell which endpoint failed.
type ConnectionError struct {
	URI string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("neo4j unreachable at %s: %v", e.URI, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

type Config struct {
	URI            string `yaml:"uri"`
	User           string `yaml:"user"`
	Password       string `yaml:"password"`
	Database       string `yaml:"database"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxPoolSize    int    `yaml:"max_pool_size"`
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.User) == "" {
		c.User = "neo4j"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 10
	}
	if c.MaxPoolSize <= 0 {
		c.MaxPoolSize = 50
	}
	return c
}

// Client owns the pooled driver. Connect is lazy and idempotent; every
// query opens its own short-lived session via Session.
type Client struct {
	cfg Config
	log *logger.Logger

	mu     sync.Mutex
	driver neo4j.DriverWithContext
}

func New(cfg Config, log *logger.Logger) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("neo4jdb: logger required")
	}
	if strings.TrimSpace(cfg.URI) == "" {
		return nil, fmt.Errorf("neo4jdb: uri required")
	}
	return &Client{
		cfg: cfg.withDefaults(),
		log: log.With("client", "Neo4jDB"),
	}, nil
}

// Connect establishes the pooled driver and verifies connectivity.
// Calling it again on a connected client is a no-op.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.driver != nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	auth := neo4j.BasicAuth(c.cfg.User, c.cfg.Password, "")
	driver, err := neo4j.NewDriverWithContext(c.cfg.URI, auth, func(cfg *neo4j.Config) {
		cfg.MaxConnectionPoolSize = c.cfg.MaxPoolSize
		cfg.SocketConnectTimeout = time.Duration(c.cfg.TimeoutSeconds) * time.Second
	})
	if err != nil {
		return &ConnectionError{URI: c.cfg.URI, Err: err}
	}

	verifyCtx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutSeconds)*time.Second)
	defer cancel()
	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		_ = driver.Close(ctx)
		return &ConnectionError{URI: c.cfg.URI, Err: err}
	}

	c.driver = driver
	c.log.Info("connected to neo4j", "uri", c.cfg.URI, "database", c.cfg.Database)
	return nil
}

// Session opens a fresh read session. Callers own the session and must
// close it on every exit path.
func (c *Client) Session(ctx context.Context) (neo4j.SessionWithContext, error) {
	c.mu.Lock()
	driver := c.driver
	c.mu.Unlock()
	if driver == nil {
		return nil, &ConnectionError{URI: c.cfg.URI, Err: fmt.Errorf("not connected")}
	}
	return driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: c.cfg.Database,
	}), nil
}

func (c *Client) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.driver == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := c.driver.Close(ctx)
	c.driver = nil
	return err
}
