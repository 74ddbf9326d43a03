//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/clinickart/backend/internal/config"
	"github.com/clinickart/backend/internal/db"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"
)

func newMySQLRepositories(t *testing.T) *Repositories {
	t.Helper()
	ctx := context.Background()

	container, err := tcmysql.Run(ctx, "mysql:8.0.36",
		tcmysql.WithDatabase("clinickart"),
		tcmysql.WithUsername("clinickart"),
		tcmysql.WithPassword("clinickart"),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "3306/tcp")
	require.NoError(t, err)

	conn, err := db.NewMySQL(config.MySQLConfig{
		Net:                "tcp",
		Server:             host + ":" + port.Port(),
		DBName:             "clinickart",
		User:               "clinickart",
		Password:           "clinickart",
		TimeZone:           "UTC",
		Timeout:            10 * time.Second,
		MaxIdleConnections: 4,
		MaxOpenConnections: 4,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, MigrateMySQL(ctx, conn))
	// Applying twice must be harmless.
	require.NoError(t, MigrateMySQL(ctx, conn))

	return NewMySQLRepositories(conn)
}

func newMongoRepositories(t *testing.T) *Repositories {
	t.Helper()
	ctx := context.Background()

	container, err := tcmongo.Run(ctx, "mongo:7")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := db.NewMongo(ctx, config.MongoConfig{URI: uri, Database: "clinickart", Timeout: 10 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	repos, err := NewMongoRepositories(ctx, client.Database("clinickart"))
	require.NoError(t, err)
	return repos
}

func TestMySQLRepositories(t *testing.T) {
	repos := newMySQLRepositories(t)
	t.Run("vendors", func(t *testing.T) { testVendorsContract(t, repos) })
	t.Run("profiles", func(t *testing.T) { testVendorProfilesContract(t, repos) })
}

func TestMongoRepositories(t *testing.T) {
	repos := newMongoRepositories(t)
	t.Run("vendors", func(t *testing.T) { testVendorsContract(t, repos) })
	t.Run("profiles", func(t *testing.T) { testVendorProfilesContract(t, repos) })
}
