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

// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"database/sql"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "intake"

// Outcome labels for quote submissions.
const (
	OutcomeAccepted = "accepted"
	OutcomeInvalid  = "invalid"
	OutcomeFailed   = "failed"
)

var (
	registry = prometheus.NewRegistry()

	// QuoteSubmissions counts quote intake attempts by product and outcome.
	QuoteSubmissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quote_submissions_total",
		Help:      "Quote submissions received, by product and outcome.",
	}, []string{"product", "outcome"})

	// WizardActions counts server held wizard actions by product, action and result.
	WizardActions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "wizard_actions_total",
		Help:      "Quote flow actions processed, by product, action and result.",
	}, []string{"product", "action", "result"})

	// AgentStatusUpdates counts agent driven submission status changes.
	AgentStatusUpdates = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "agent_status_updates_total",
		Help:      "Submission status updates made by agents, by submission type and new status.",
	}, []string{"type", "status"})

	// DBQueryDuration observes named database queries by query id and operation.
	DBQueryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "db_query_duration_seconds",
		Help:      "Duration of named database queries, by query id and operation.",
		Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"query", "operation"})

	// DBQueryErrors counts failed database queries by query id and operation.
	DBQueryErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "db_query_errors_total",
		Help:      "Database queries that returned an error, by query id and operation.",
	}, []string{"query", "operation"})

	dbStatsMu sync.Mutex
	dbStats   = map[string]prometheus.Collector{}
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		QuoteSubmissions,
		WizardActions,
		AgentStatusUpdates,
		DBQueryDuration,
		DBQueryErrors,
	)
}

// RegisterDBStats exposes the connection pool statistics of the named database.
// A pool registered earlier under the same name is replaced.
func RegisterDBStats(name string, db *sql.DB) error {
	dbStatsMu.Lock()
	defer dbStatsMu.Unlock()

	if prev, ok := dbStats[name]; ok {
		registry.Unregister(prev)
		delete(dbStats, name)
	}
	collector := collectors.NewDBStatsCollector(db, name)
	if err := registry.Register(collector); err != nil {
		return err
	}
	dbStats[name] = collector
	return nil
}

// Registry returns the registry holding every intake collector.
func Registry() *prometheus.Registry {
	return registry
}

// Handler returns the HTTP handler serving the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
