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

// Package notification publishes submission events to NATS.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/casurance/intake/internal/system/config"
	"github.com/casurance/intake/internal/system/log"
)

const loggerComponentName = "SubmissionEventPublisher"

// EventSubmissionCreated is the event name of a stored submission.
const EventSubmissionCreated = "submission.created"

// SubmissionEvent is the JSON body of a submission event.
type SubmissionEvent struct {
	Event           string `json:"event"`
	SubmissionType  string `json:"submissionType"`
	ID              string `json:"id"`
	ReferenceNumber string `json:"referenceNumber"`
	ContactName     string `json:"contactName,omitempty"`
	CreatedAt       string `json:"createdAt"`
}

// Publisher delivers submission events.
type Publisher interface {
	PublishSubmissionCreated(ctx context.Context, event SubmissionEvent) error
	Close()
}

// natsConn is the subset of *nats.Conn used by the publisher.
type natsConn interface {
	Publish(subject string, data []byte) error
	Drain() error
	IsConnected() bool
}

type natsPublisher struct {
	conn          natsConn
	subjectPrefix string
}

// NewNATSPublisher connects to the NATS server at url.
func NewNATSPublisher(url, subjectPrefix string) (Publisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("casurance-intake"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return newNATSPublisher(conn, subjectPrefix), nil
}

func newNATSPublisher(conn natsConn, subjectPrefix string) *natsPublisher {
	return &natsPublisher{conn: conn, subjectPrefix: strings.TrimSuffix(subjectPrefix, ".")}
}

// Subject returns the subject submission events are published on.
func (p *natsPublisher) Subject() string {
	if p.subjectPrefix == "" {
		return EventSubmissionCreated
	}
	return p.subjectPrefix + "." + EventSubmissionCreated
}

// PublishSubmissionCreated publishes the event on <prefix>.submission.created.
func (p *natsPublisher) PublishSubmissionCreated(ctx context.Context, event SubmissionEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before publish: %w", err)
	}
	event.Event = EventSubmissionCreated
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.conn.Publish(p.Subject(), data); err != nil {
		return fmt.Errorf("publish %s: %w", p.Subject(), err)
	}
	return nil
}

// Close drains the connection.
func (p *natsPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Warn("Failed to drain NATS connection", log.Error(err))
	}
}

// Ping reports whether the connection is up.
func (p *natsPublisher) Ping() error {
	if !p.conn.IsConnected() {
		return fmt.Errorf("NATS connection is not established")
	}
	return nil
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishSubmissionCreated(context.Context, SubmissionEvent) error { return nil }

func (noopPublisher) Close() {}

// NewPublisherFromConfig returns a NATS publisher when events are enabled and a no-op publisher otherwise.
// A NATS server that cannot be reached at startup falls back to the no-op publisher.
func NewPublisherFromConfig() Publisher {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	cfg := config.GetRuntime().Config.Events
	if !cfg.Enabled || cfg.URL == "" {
		logger.Debug("Submission events are disabled")
		return NewNoopPublisher()
	}
	p, err := NewNATSPublisher(cfg.URL, cfg.SubjectPrefix)
	if err != nil {
		logger.Error("Failed to connect to NATS, submission events are disabled", log.Error(err))
		return NewNoopPublisher()
	}
	logger.Info("Publishing submission events", log.String("url", cfg.URL))
	return p
}

// Pinger is implemented by publishers that can report their connection health.
type Pinger interface {
	Ping() error
}
