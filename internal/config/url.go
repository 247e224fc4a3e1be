package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/koustreak/dbinspect/internal/database"
	"github.com/koustreak/dbinspect/internal/errs"
)

// Descriptor parses c.URL into a connection descriptor. Any sslmode in the
// URL is ignored: the connection always requires TLS.
func (c *Config) Descriptor() (*database.Config, error) {
	u, err := url.Parse(c.URL)
	if err != nil {
		// url.Error echoes the whole URL, password included.
		return nil, errs.New(errs.KindInvalidInput, "malformed connection URL")
	}

	drv, err := driverFor(u.Scheme)
	if err != nil {
		return nil, err
	}

	desc := &database.Config{
		Driver:         drv,
		Host:           u.Hostname(),
		Database:       strings.TrimPrefix(u.Path, "/"),
		SSLMode:        database.SSLModeRequire,
		Schema:         c.Schema,
		ConnectTimeout: c.ConnectTimeout,
	}

	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil || port <= 0 || port > 65535 {
			return nil, errs.New(errs.KindInvalidInput, fmt.Sprintf("invalid port %q", p))
		}
		desc.Port = port
	} else {
		desc.Port = database.DefaultPort(drv)
	}

	if u.User != nil {
		desc.User = u.User.Username()
		desc.Password, _ = u.User.Password()
	}
	return desc, nil
}

func driverFor(scheme string) (database.Driver, error) {
	switch strings.ToLower(scheme) {
	case "postgres", "postgresql":
		return database.DriverPostgres, nil
	case "mysql":
		return database.DriverMySQL, nil
	default:
		return "", errs.New(errs.KindInvalidInput, fmt.Sprintf("unsupported URL scheme %q", scheme))
	}
}
