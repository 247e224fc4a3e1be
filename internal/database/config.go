package database

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Driver identifies the database engine.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverMySQL    Driver = "mysql"
)

const (
	// SSLModeRequire encrypts the connection without verifying the server
	// certificate, matching libpq's sslmode=require.
	SSLModeRequire = "require"

	DefaultSchema         = "public"
	DefaultConnectTimeout = 10 * time.Second
)

// Config is the connection descriptor for a single inspection run.
// It is built once from the connection URL and never mutated afterwards.
type Config struct {
	Driver   Driver
	Host     string
	Port     int
	User     string
	Password string
	Database string

	// SSLMode is always SSLModeRequire for URLs parsed by the config package.
	SSLMode string

	// Schema is the namespace whose tables are listed. Ignored by MySQL,
	// where the database itself is the schema.
	Schema string

	// ConnectTimeout bounds connection establishment only; queries have no deadline.
	ConnectTimeout time.Duration
}

// DefaultPort returns the well-known port for d.
func DefaultPort(d Driver) int {
	if d == DriverMySQL {
		return 3306
	}
	return 5432
}

// Dialect returns the SQL dialect spoken by the configured driver.
func (c *Config) Dialect() Dialect {
	if c.Driver == DriverMySQL {
		return DialectMySQL
	}
	return DialectPostgres
}

// Addr returns host:port, falling back to the driver's default port.
func (c *Config) Addr() string {
	port := c.Port
	if port == 0 {
		port = DefaultPort(c.Driver)
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}

// String describes the target without the password, for logs.
func (c *Config) String() string {
	return fmt.Sprintf("%s://%s@%s/%s", c.Driver, c.User, c.Addr(), c.Database)
}
