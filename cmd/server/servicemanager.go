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

package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/casurance/intake/internal/agent"
	"github.com/casurance/intake/internal/attachment"
	"github.com/casurance/intake/internal/content"
	"github.com/casurance/intake/internal/notification"
	"github.com/casurance/intake/internal/quote"
	"github.com/casurance/intake/internal/quoteflow"
	"github.com/casurance/intake/internal/submission"
	"github.com/casurance/intake/internal/system/database/provider"
	"github.com/casurance/intake/internal/system/healthcheck"
	"github.com/casurance/intake/internal/system/log"
	"github.com/casurance/intake/internal/system/metrics"
	"github.com/casurance/intake/internal/system/middleware"
)

const (
	janitorInterval = 5 * time.Minute
	probeTimeout    = 2 * time.Second
)

// registerServices registers every service with the multiplexer and returns a function releasing
// the connections they hold.
func registerServices(ctx context.Context, mux *http.ServeMux) func() {
	logger := log.GetLogger()
	limiter := middleware.NewRateLimiterFromConfig()

	guard := agent.Initialize(mux, agent.NewTokenManagerFromConfig())
	submissions := submission.Initialize(mux, guard.Require)

	publisher := notification.NewPublisherFromConfig()
	quoteService := quote.Initialize(mux, submissions, publisher, limiter)

	_, flowStore := quoteflow.Initialize(mux, quote.NewSubmitter(quoteService), limiter)
	go quoteflow.RunJanitor(ctx, flowStore, janitorInterval)

	assistant, err := content.NewAssistantFromConfig(ctx)
	if err != nil {
		if !errors.Is(err, content.ErrAssistantDisabled) {
			logger.Error("AI content assist could not be started", log.Error(err))
		}
		assistant = nil
	}
	_ = content.Initialize(mux, guard, assistant)

	uploader, err := attachment.NewUploaderFromConfig(ctx)
	if err != nil {
		if !errors.Is(err, attachment.ErrUploadsDisabled) {
			logger.Error("Attachment storage could not be configured", log.Error(err))
		}
		uploader = nil
	}
	_ = attachment.Initialize(mux, uploader, limiter)

	mux.Handle("GET /metrics", metrics.Handler())

	checks := []healthcheck.ReadinessCheck{{
		Name:  "QuoteFlowSessions",
		Probe: func() error { return probe(flowStore.Ping) },
	}}
	if p, ok := publisher.(notification.Pinger); ok {
		checks = append(checks, healthcheck.ReadinessCheck{Name: "SubmissionEvents", Probe: p.Ping})
	}
	if uploader != nil {
		checks = append(checks, healthcheck.ReadinessCheck{
			Name:  "AttachmentStorage",
			Probe: func() error { return probe(uploader.Ping) },
		})
	}
	dbProvider := provider.GetDBProvider()
	healthcheck.Initialize(mux, dbProvider, checks...)

	return func() {
		publisher.Close()
		if closer, ok := dbProvider.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				logger.Error("Failed to close database connections", log.Error(err))
			}
		}
	}
}

func probe(ping func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	return ping(ctx)
}
