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

package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casurance/intake/internal/system/config"
)

type fakeConn struct {
	subject   string
	data      []byte
	err       error
	drained   bool
	connected bool
}

func (c *fakeConn) Publish(subject string, data []byte) error {
	c.subject = subject
	c.data = data
	return c.err
}

func (c *fakeConn) Drain() error {
	c.drained = true
	return nil
}

func (c *fakeConn) IsConnected() bool {
	return c.connected
}

func TestPublishSubmissionCreated(t *testing.T) {
	conn := &fakeConn{connected: true}
	p := newNATSPublisher(conn, "intake.")

	err := p.PublishSubmissionCreated(context.Background(), SubmissionEvent{
		SubmissionType: "hotel", ID: "sub-1", ReferenceNumber: "CAS-20240101-ABC123", CreatedAt: "2024-01-01T00:00:00Z",
	})

	require.NoError(t, err)
	assert.Equal(t, "intake.submission.created", conn.subject)
	var event map[string]any
	require.NoError(t, json.Unmarshal(conn.data, &event))
	assert.Equal(t, "submission.created", event["event"])
	assert.Equal(t, "CAS-20240101-ABC123", event["referenceNumber"])
	assert.NotContains(t, event, "contactName")
	assert.NoError(t, p.Ping())
}

func TestPublishErrorIsWrapped(t *testing.T) {
	conn := &fakeConn{err: errors.New("nats: connection closed")}
	p := newNATSPublisher(conn, "")

	err := p.PublishSubmissionCreated(context.Background(), SubmissionEvent{})

	assert.ErrorContains(t, err, "publish submission.created")
	assert.Error(t, p.Ping())
}

func TestPublishCancelledContext(t *testing.T) {
	conn := &fakeConn{}
	p := newNATSPublisher(conn, "intake")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.PublishSubmissionCreated(ctx, SubmissionEvent{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, conn.subject)
}

func TestCloseDrainsConnection(t *testing.T) {
	conn := &fakeConn{}
	newNATSPublisher(conn, "intake").Close()

	assert.True(t, conn.drained)
}

func TestNewPublisherFromConfigDisabled(t *testing.T) {
	config.ResetRuntime()
	t.Cleanup(config.ResetRuntime)
	require.NoError(t, config.InitializeRuntime(t.TempDir(), &config.Config{}))

	p := NewPublisherFromConfig()

	assert.IsType(t, noopPublisher{}, p)
	assert.NoError(t, p.PublishSubmissionCreated(context.Background(), SubmissionEvent{}))
	p.Close()
}
