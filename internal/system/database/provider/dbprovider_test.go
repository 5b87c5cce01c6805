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

package provider

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/casurance/intake/internal/system/config"
)

type DBProviderTestSuite struct {
	suite.Suite
	home string
}

func TestDBProviderSuite(t *testing.T) {
	suite.Run(t, new(DBProviderTestSuite))
}

func (suite *DBProviderTestSuite) SetupTest() {
	suite.home = suite.T().TempDir()
	config.ResetRuntime()
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Intake:  config.DataSource{Type: "sqlite", Name: "intake", Path: "intake.db"},
			Runtime: config.DataSource{Type: "sqlite", Name: "runtime", Path: "runtime.db", Options: "_pragma=busy_timeout(5000)"},
		},
	}
	_ = config.InitializeRuntime(suite.home, cfg)
}

func (suite *DBProviderTestSuite) TearDownTest() {
	config.ResetRuntime()
}

func (suite *DBProviderTestSuite) TestGetDBConfigSQLite() {
	cfg, err := getDBConfig(config.GetRuntime().Config.Database.Runtime)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "sqlite", cfg.driverName)
	assert.Equal(suite.T(), filepath.Join(suite.home, "runtime.db")+"?_pragma=busy_timeout(5000)", cfg.dsn)
}

func (suite *DBProviderTestSuite) TestGetDBConfigPostgres() {
	cfg, err := getDBConfig(config.DataSource{
		Type: "postgres", Hostname: "db", Port: 5432, Username: "u", Password: "p", Name: "intake", SSLMode: "disable",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "postgres", cfg.driverName)
	assert.Equal(suite.T(), "host=db port=5432 user=u password=p dbname=intake sslmode=disable", cfg.dsn)
}

func (suite *DBProviderTestSuite) TestGetDBConfigUnsupportedType() {
	_, err := getDBConfig(config.DataSource{Type: "oracle"})

	assert.Error(suite.T(), err)
}

func (suite *DBProviderTestSuite) TestGetDBClientReusesSQLiteClient() {
	provider := &DBProvider{}

	first, err := provider.GetDBClient(IntakeDB)
	assert.NoError(suite.T(), err)
	second, err := provider.GetDBClient(IntakeDB)
	assert.NoError(suite.T(), err)

	assert.Same(suite.T(), first, second)
	assert.NoError(suite.T(), first.Ping())
	assert.NoError(suite.T(), provider.Close())
}

func (suite *DBProviderTestSuite) TestGetDBClientUnknownName() {
	provider := &DBProvider{}

	dbClient, err := provider.GetDBClient("identity")

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), dbClient)
}
