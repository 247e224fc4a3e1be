package mysql

import (
	"testing"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/dbinspect/internal/database"
)

func TestBuildDSN_RoundTrip(t *testing.T) {
	cfg := &database.Config{
		Driver:         database.DriverMySQL,
		Host:           "db-mysql-fra1-00000.ondigitalocean.com",
		Port:           25060,
		User:           "doadmin",
		Password:       "p@ss:w/rd",
		Database:       "defaultdb",
		SSLMode:        database.SSLModeRequire,
		ConnectTimeout: 10 * time.Second,
	}

	parsed, err := gomysql.ParseDSN(buildDSN(cfg))
	require.NoError(t, err)

	assert.Equal(t, "tcp", parsed.Net)
	assert.Equal(t, "db-mysql-fra1-00000.ondigitalocean.com:25060", parsed.Addr)
	assert.Equal(t, "doadmin", parsed.User)
	assert.Equal(t, "p@ss:w/rd", parsed.Passwd)
	assert.Equal(t, "defaultdb", parsed.DBName)
	assert.Equal(t, "skip-verify", parsed.TLSConfig)
	assert.Equal(t, 10*time.Second, parsed.Timeout)
	assert.True(t, parsed.ParseTime)
}

func TestBuildDSN_DefaultPortAndTimeout(t *testing.T) {
	cfg := &database.Config{Driver: database.DriverMySQL, Host: "localhost", User: "root", Database: "shop"}

	parsed, err := gomysql.ParseDSN(buildDSN(cfg))
	require.NoError(t, err)

	assert.Equal(t, "localhost:3306", parsed.Addr)
	assert.Equal(t, database.DefaultConnectTimeout, parsed.Timeout)
	assert.Equal(t, "skip-verify", parsed.TLSConfig)
}

func TestTLSConfigName(t *testing.T) {
	assert.Equal(t, "skip-verify", tlsConfigName("require"))
	assert.Equal(t, "skip-verify", tlsConfigName(""))
	assert.Equal(t, "true", tlsConfigName("verify-full"))
	assert.Equal(t, "false", tlsConfigName("disable"))
}
