/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package provider provides functionality for managing database connections and clients.
package provider

import (
	"database/sql"
	"errors"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/casurance/intake/internal/system/config"
	"github.com/casurance/intake/internal/system/database/client"
	"github.com/casurance/intake/internal/system/log"
	"github.com/casurance/intake/internal/system/metrics"
)

const (
	dataSourceTypePostgres = "postgres"
	dataSourceTypeSQLite   = "sqlite"
)

const (
	// IntakeDB is the name of the database holding submissions and content.
	IntakeDB = "intake"
	// RuntimeDB is the name of the database holding short lived quote flow sessions.
	RuntimeDB = "runtime"
)

// dbConfig represents the local database configuration.
type dbConfig struct {
	dsn        string
	driverName string
}

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetDBClient(dbName string) (client.DBClientInterface, error)
}

// DBProvider is the implementation of DBProviderInterface.
type DBProvider struct {
	intakeClient  client.DBClientInterface
	intakeMutex   sync.RWMutex
	runtimeClient client.DBClientInterface
	runtimeMutex  sync.RWMutex
}

var (
	instance *DBProvider
	once     sync.Once
)

// GetDBProvider returns the instance of DBProvider.
func GetDBProvider() DBProviderInterface {
	once.Do(func() {
		instance = &DBProvider{}
	})
	return instance
}

// GetDBClient returns a database client based on the provided database name.
// Not required to close the returned client manually since it manages its own connection pool.
func (d *DBProvider) GetDBClient(dbName string) (client.DBClientInterface, error) {
	switch dbName {
	case IntakeDB:
		intakeDBConfig := config.GetRuntime().Config.Database.Intake
		return d.getOrInitClient(&d.intakeClient, &d.intakeMutex, IntakeDB, intakeDBConfig)
	case RuntimeDB:
		runtimeDBConfig := config.GetRuntime().Config.Database.Runtime
		return d.getOrInitClient(&d.runtimeClient, &d.runtimeMutex, RuntimeDB, runtimeDBConfig)
	default:
		return nil, fmt.Errorf("unsupported database name: %s", dbName)
	}
}

// getOrInitClient gets or initializes a DB client with locking.
func (d *DBProvider) getOrInitClient(
	clientPtr *client.DBClientInterface,
	mutex *sync.RWMutex,
	dbName string,
	dataSource config.DataSource,
) (client.DBClientInterface, error) {
	mutex.RLock()
	if *clientPtr != nil {
		dbClient := *clientPtr
		mutex.RUnlock()
		return dbClient, nil
	}
	mutex.RUnlock()

	mutex.Lock()
	defer mutex.Unlock()

	if *clientPtr != nil {
		return *clientPtr, nil
	}

	if err := d.initializeClient(clientPtr, dbName, dataSource); err != nil {
		return nil, err
	}

	return *clientPtr, nil
}

// initializeClient opens the named database and assigns its client to the provided pointer.
func (d *DBProvider) initializeClient(clientPtr *client.DBClientInterface, dbName string,
	dataSource config.DataSource) error {
	dbConfig, err := getDBConfig(dataSource)
	if err != nil {
		return err
	}

	db, err := sql.Open(dbConfig.driverName, dbConfig.dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database %s: %w", dbName, err)
	}

	if dataSource.MaxOpenConns > 0 {
		db.SetMaxOpenConns(dataSource.MaxOpenConns)
	}
	if dataSource.MaxIdleConns > 0 {
		db.SetMaxIdleConns(dataSource.MaxIdleConns)
	}
	if dataSource.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(dataSource.ConnMaxLifetime) * time.Second)
	}

	if err := db.Ping(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return fmt.Errorf("failed to ping database %s: %w (close error: %w)", dbName, err, closeErr)
		}
		return fmt.Errorf("failed to ping database %s: %w", dbName, err)
	}

	if err := metrics.RegisterDBStats(dbName, db); err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DBProvider")).
			Warn("Failed to register connection pool metrics", log.String("database", dbName), log.Error(err))
	}

	log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DBProvider")).
		Debug("Database client initialized", log.String("database", dbName), log.String("type", dbConfig.driverName))
	*clientPtr = client.NewDBClient(db, dbConfig.driverName)
	return nil
}

// getDBConfig returns the database configuration based on the provided data source.
func getDBConfig(dataSource config.DataSource) (dbConfig, error) {
	var cfg dbConfig

	switch dataSource.Type {
	case dataSourceTypePostgres:
		cfg.driverName = dataSourceTypePostgres
		cfg.dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			dataSource.Hostname, dataSource.Port, dataSource.Username, dataSource.Password,
			dataSource.Name, dataSource.SSLMode)
	case dataSourceTypeSQLite:
		cfg.driverName = dataSourceTypeSQLite
		options := dataSource.Options
		if options != "" && options[0] != '?' {
			options = "?" + options
		}
		cfg.dsn = fmt.Sprintf("%s%s", path.Join(config.GetRuntime().IntakeHome, dataSource.Path), options)
	default:
		return cfg, fmt.Errorf("unsupported data source type: %q", dataSource.Type)
	}

	return cfg, nil
}

// Close closes all open database connections.
func (d *DBProvider) Close() error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DBProvider"))
	intakeErr := d.closeClient(&d.intakeClient, &d.intakeMutex, IntakeDB)
	runtimeErr := d.closeClient(&d.runtimeClient, &d.runtimeMutex, RuntimeDB)
	err := errors.Join(intakeErr, runtimeErr)
	if err == nil {
		logger.Debug("Database connections closed successfully")
	}
	return err
}

// closeClient is a helper to close a DB client with locking.
func (d *DBProvider) closeClient(clientPtr *client.DBClientInterface, mutex *sync.RWMutex,
	clientName string) error {
	mutex.Lock()
	defer mutex.Unlock()
	if *clientPtr != nil {
		if err := (*clientPtr).Close(); err != nil {
			return fmt.Errorf("failed to close %s client: %w", clientName, err)
		}
		*clientPtr = nil
	}
	return nil
}
