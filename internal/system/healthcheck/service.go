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

package healthcheck

import (
	dbprovider "github.com/casurance/intake/internal/system/database/provider"
	"github.com/casurance/intake/internal/system/log"
)

// ReadinessCheck probes one dependency of the server.
type ReadinessCheck struct {
	Name  string
	Probe func() error
}

// HealthCheckServiceInterface defines the interface for the health check service.
type HealthCheckServiceInterface interface {
	CheckReadiness() ServerStatus
}

// healthCheckService is the default implementation of the HealthCheckServiceInterface.
type healthCheckService struct {
	dbProvider dbprovider.DBProviderInterface
	extra      []ReadinessCheck
}

// newHealthCheckService creates a health check service probing both databases and any extra checks.
func newHealthCheckService(provider dbprovider.DBProviderInterface, extra ...ReadinessCheck) HealthCheckServiceInterface {
	return &healthCheckService{
		dbProvider: provider,
		extra:      extra,
	}
}

// CheckReadiness checks the readiness of the server and its dependencies.
func (hcs *healthCheckService) CheckReadiness() ServerStatus {
	statuses := []ServiceStatus{
		{ServiceName: "IntakeDB", Status: hcs.checkDatabaseStatus(dbprovider.IntakeDB)},
		{ServiceName: "RuntimeDB", Status: hcs.checkDatabaseStatus(dbprovider.RuntimeDB)},
	}
	for _, check := range hcs.extra {
		statuses = append(statuses, ServiceStatus{ServiceName: check.Name, Status: runProbe(check)})
	}

	status := StatusUp
	for _, s := range statuses {
		if s.Status == StatusDown {
			status = StatusDown
			break
		}
	}
	return ServerStatus{Status: status, ServiceStatus: statuses}
}

// checkDatabaseStatus pings the named database.
func (hcs *healthCheckService) checkDatabaseStatus(dbName string) Status {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "HealthCheckService"))

	dbClient, err := hcs.dbProvider.GetDBClient(dbName)
	if err != nil {
		logger.Error("Failed to get database client", log.String("db", dbName), log.Error(err))
		return StatusDown
	}
	if err := dbClient.Ping(); err != nil {
		logger.Error("Database ping failed", log.String("db", dbName), log.Error(err))
		return StatusDown
	}
	return StatusUp
}

func runProbe(check ReadinessCheck) Status {
	if err := check.Probe(); err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, "HealthCheckService")).
			Error("Readiness probe failed", log.String("service", check.Name), log.Error(err))
		return StatusDown
	}
	return StatusUp
}
