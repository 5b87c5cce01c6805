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

// Package client runs named queries against the intake and runtime databases.
package client

import (
	"strings"
	"time"

	"github.com/casurance/intake/internal/system/database/model"
	"github.com/casurance/intake/internal/system/log"
	"github.com/casurance/intake/internal/system/metrics"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// DBClientInterface defines the interface for database operations.
type DBClientInterface interface {
	// Query runs a SELECT and returns every row as a map keyed by the lowercased column name.
	Query(query model.DBQuery, args ...interface{}) ([]map[string]interface{}, error)
	// Execute runs a statement and returns the number of rows it affected.
	Execute(query model.DBQuery, args ...interface{}) (int64, error)
	// Ping verifies the database is reachable.
	Ping() error
	// Close closes the database connection.
	Close() error
}

// DBClient is the implementation of DBClientInterface.
type DBClient struct {
	conn   model.Conn
	dbType string
	logger *log.Logger
}

// NewDBClient creates a client running queries on conn using the SQL variant of dbType.
func NewDBClient(conn model.Conn, dbType string) DBClientInterface {
	return &DBClient{
		conn:   conn,
		dbType: dbType,
		logger: log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DBClient"),
			log.String("dbType", dbType)),
	}
}

// Query runs a SELECT and returns every row as a map keyed by the lowercased column name.
// Lowercasing makes postgres and sqlite rows look the same to the stores.
func (c *DBClient) Query(query model.DBQuery, args ...interface{}) ([]map[string]interface{}, error) {
	done := c.observe(query, "query")

	rows, err := c.conn.Query(query.GetQuery(c.dbType), args...)
	if err != nil {
		done(err)
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			c.logger.Error("Error closing rows", log.String("queryID", query.GetID()), log.Error(closeErr))
		}
	}()

	columns, err := rows.Columns()
	if err != nil {
		done(err)
		return nil, err
	}
	keys := make([]string, len(columns))
	for i, col := range columns {
		keys[i] = strings.ToLower(col)
	}

	var results []map[string]interface{}
	values := make([]interface{}, len(columns))
	pointers := make([]interface{}, len(columns))
	for i := range values {
		pointers[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(pointers...); err != nil {
			done(err)
			return nil, err
		}
		row := make(map[string]interface{}, len(keys))
		for i, key := range keys {
			row[key] = values[i]
		}
		results = append(results, row)
	}

	err = rows.Err()
	done(err)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Execute runs a statement and returns the number of rows it affected.
func (c *DBClient) Execute(query model.DBQuery, args ...interface{}) (int64, error) {
	done := c.observe(query, "exec")

	res, err := c.conn.Exec(query.GetQuery(c.dbType), args...)
	if err != nil {
		done(err)
		return 0, err
	}
	affected, err := res.RowsAffected()
	done(err)
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// Ping verifies the database is reachable.
func (c *DBClient) Ping() error {
	return c.conn.Ping()
}

// Close closes the database connection.
func (c *DBClient) Close() error {
	return c.conn.Close()
}

// observe starts timing a query. The returned func records the duration and outcome.
func (c *DBClient) observe(query model.DBQuery, operation string) func(error) {
	start := time.Now()
	c.logger.Debug("Executing query", log.String("queryID", query.GetID()), log.String("operation", operation))
	return func(err error) {
		elapsed := time.Since(start)
		metrics.DBQueryDuration.WithLabelValues(query.GetID(), operation).Observe(elapsed.Seconds())
		if err != nil {
			metrics.DBQueryErrors.WithLabelValues(query.GetID(), operation).Inc()
			c.logger.Debug("Query failed", log.String("queryID", query.GetID()),
				log.Duration("elapsed", elapsed), log.Error(err))
		}
	}
}
