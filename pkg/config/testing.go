package config

import "time"

// NewForTest returns a config backed by an in-memory SQLite database.
func NewForTest() *Config {
	return &Config{
		StoreBackend:              BackendRelational,
		DatabaseDriver:            DriverSQLite,
		DatabaseFilePath:          ":memory:",
		DatabaseConnectRetryCount: 1,
		DatabaseMaxRetries:        5,
		DatabaseBusyTimeout:       5 * time.Second,
		DatabaseMaxOpenConns:      1,
		Neo4jMaxPoolSize:          1,
		DescriptionTimeout:        10 * time.Second,
		DescriptionMinLength:      10,
		MigrationOutputPath:       "db_init/data_neo4j.cypher",
		ServerHost:                "127.0.0.1",
		StaticDir:                 "./static",
	}
}
