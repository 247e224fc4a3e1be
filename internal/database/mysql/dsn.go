package mysql

import (
	gomysql "github.com/go-sql-driver/mysql" // also registers the "mysql" driver

	"github.com/koustreak/dbinspect/internal/database"
)

// buildDSN constructs the go-sql-driver DSN for cfg. TLS follows libpq's
// sslmode vocabulary so both drivers read the same descriptor.
func buildDSN(cfg *database.Config) string {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = database.DefaultConnectTimeout
	}

	mc := gomysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = cfg.Addr()
	mc.DBName = cfg.Database
	mc.TLSConfig = tlsConfigName(cfg.SSLMode)
	mc.Timeout = timeout
	mc.ParseTime = true
	mc.ConnectionAttributes = "program_name:" + applicationName
	return mc.FormatDSN()
}

const applicationName = "dbinspect"

// tlsConfigName maps an sslmode to a go-sql-driver tls parameter.
func tlsConfigName(sslMode string) string {
	switch sslMode {
	case "disable":
		return "false"
	case "verify-ca", "verify-full":
		return "true"
	default:
		return "skip-verify"
	}
}
