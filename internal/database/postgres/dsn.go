package postgres

import (
	"math"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/koustreak/dbinspect/internal/database"
)

const applicationName = "dbinspect"

// parseConfig turns the descriptor into a pgx connection config.
func parseConfig(cfg *database.Config) (*pgx.ConnConfig, error) {
	return pgx.ParseConfig(buildDSN(cfg))
}

// buildDSN constructs a keyword/value connection string. TLS defaults to
// require; there is no plaintext fallback.
func buildDSN(cfg *database.Config) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = database.SSLModeRequire
	}
	port := cfg.Port
	if port == 0 {
		port = database.DefaultPort(database.DriverPostgres)
	}
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = database.DefaultConnectTimeout
	}

	pairs := [][2]string{
		{"host", cfg.Host},
		{"port", strconv.Itoa(port)},
		{"dbname", cfg.Database},
		{"user", cfg.User},
		{"password", cfg.Password},
		{"sslmode", sslMode},
		{"connect_timeout", strconv.Itoa(int(math.Ceil(timeout.Seconds())))},
		{"application_name", applicationName},
	}

	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if p[1] == "" {
			continue
		}
		parts = append(parts, p[0]+"="+quoteValue(p[1]))
	}
	return strings.Join(parts, " ")
}

// quoteValue single-quotes a keyword/value DSN value when it is empty or
// contains whitespace, quotes or backslashes.
func quoteValue(v string) string {
	if v != "" && !strings.ContainsAny(v, " \t\n\r'\\") {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
