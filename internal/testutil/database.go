//go:build integration

package testutil

import (
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jmoiron/sqlx"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"studentsites/internal/config"
	"studentsites/internal/infrastructure/mongo"
	"studentsites/internal/infrastructure/mysql"
)

const (
	mysqlImage = "mysql:8.4"
	mongoImage = "mongo:7.0"
)

func mysqlConfig(host string, port int) config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:            host,
		Port:            port,
		User:            "root",
		Password:        "secret",
		Name:            "studentsites_test",
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
	}
}

// SetupMySQL starts a disposable MySQL container with the schema migrated.
// The test is skipped when no container runtime is available.
func SetupMySQL(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image: mysqlImage,
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret",
			"MYSQL_DATABASE":      "studentsites_test",
		},
		ExposedPorts: []string{"3306/tcp"},
		WaitingFor: wait.ForSQL("3306/tcp", "mysql", func(host string, port nat.Port) string {
			return mysql.DSN(mysqlConfig(host, port.Int()))
		}).WithStartupTimeout(90 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("mysql container not available: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("resolving container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "3306/tcp")
	if err != nil {
		t.Fatalf("resolving container port: %v", err)
	}

	db, err := mysql.NewConnection(ctx, mysqlConfig(host, port.Int()))
	if err != nil {
		t.Fatalf("connecting to test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := mysql.Migrate(db.DB); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	return db
}

// CleanupTables empties the given tables between tests.
func CleanupTables(t *testing.T, db *sqlx.DB, tables ...string) {
	t.Helper()
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

// SetupMongo starts a disposable MongoDB container and returns a fresh
// database with indexes created.
func SetupMongo(t *testing.T) *mongodriver.Database {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        mongoImage,
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("mongo container not available: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("resolving container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "27017/tcp")
	if err != nil {
		t.Fatalf("resolving container port: %v", err)
	}

	client, err := mongo.NewConnection(ctx, config.MongoConfig{
		URI: "mongodb://" + host + ":" + strconv.Itoa(port.Int()),
	})
	if err != nil {
		t.Fatalf("connecting to test mongo: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	db := client.Database("studentsites_test")
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		t.Fatalf("creating indexes: %v", err)
	}

	return db
}
