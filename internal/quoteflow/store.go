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

package quoteflow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/casurance/intake/internal/system/database/provider"
	"github.com/casurance/intake/internal/wizard"
)

// SessionStore persists quote flow sessions between requests.
type SessionStore interface {
	Create(ctx context.Context, session Session) error
	Get(ctx context.Context, flowID string) (*Session, error)
	Update(ctx context.Context, session Session) error
	Delete(ctx context.Context, flowID string) error
	// TryBeginSubmit takes the submit lock of a session. It reports false when the lock is already held.
	// A lock older than the store's lock TTL counts as released.
	TryBeginSubmit(ctx context.Context, flowID string) (bool, error)
	EndSubmit(ctx context.Context, flowID string) error
	Ping(ctx context.Context) error
}

// dbSessionStore keeps sessions in the runtime database.
type dbSessionStore struct {
	dbProvider provider.DBProviderInterface
	lockTTL    time.Duration
	now        func() time.Time
}

func newDBSessionStore(lockTTL time.Duration) SessionStore {
	return &dbSessionStore{
		dbProvider: provider.GetDBProvider(),
		lockTTL:    lockTTL,
		now:        time.Now,
	}
}

// Create inserts a new session.
func (s *dbSessionStore) Create(ctx context.Context, session Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dbClient, err := s.dbProvider.GetDBClient(provider.RuntimeDB)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}
	state, err := json.Marshal(session.State)
	if err != nil {
		return fmt.Errorf("failed to encode wizard state: %w", err)
	}

	_, err = dbClient.Execute(queryCreateSession, session.FlowID, session.Product, string(state),
		formatTime(session.ExpiresAt), formatTime(session.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to create quote flow session: %w", err)
	}
	return nil
}

// Get loads a session. Expired sessions are removed and reported as not found.
func (s *dbSessionStore) Get(ctx context.Context, flowID string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dbClient, err := s.dbProvider.GetDBClient(provider.RuntimeDB)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(queryGetSession, flowID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrSessionNotFound
	}
	if len(results) != 1 {
		return nil, fmt.Errorf("unexpected number of results: %d", len(results))
	}

	session, err := buildSessionFromResultRow(results[0])
	if err != nil {
		return nil, err
	}
	if !session.ExpiresAt.After(s.now()) {
		if _, err := dbClient.Execute(queryDeleteSession, flowID); err != nil {
			return nil, fmt.Errorf("failed to delete expired session: %w", err)
		}
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Update stores the wizard state of a session and slides its expiry.
func (s *dbSessionStore) Update(ctx context.Context, session Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dbClient, err := s.dbProvider.GetDBClient(provider.RuntimeDB)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}
	state, err := json.Marshal(session.State)
	if err != nil {
		return fmt.Errorf("failed to encode wizard state: %w", err)
	}

	rows, err := dbClient.Execute(queryUpdateSession, session.FlowID, string(state),
		formatTime(session.ExpiresAt), formatTime(s.now()))
	if err != nil {
		return fmt.Errorf("failed to update quote flow session: %w", err)
	}
	if rows == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// Delete removes a session.
func (s *dbSessionStore) Delete(ctx context.Context, flowID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dbClient, err := s.dbProvider.GetDBClient(provider.RuntimeDB)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}
	if _, err := dbClient.Execute(queryDeleteSession, flowID); err != nil {
		return fmt.Errorf("failed to delete quote flow session: %w", err)
	}
	return nil
}

// TryBeginSubmit sets the submit lock with a conditional update that also takes over stale locks.
func (s *dbSessionStore) TryBeginSubmit(ctx context.Context, flowID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	dbClient, err := s.dbProvider.GetDBClient(provider.RuntimeDB)
	if err != nil {
		return false, fmt.Errorf("failed to get database client: %w", err)
	}
	now := s.now().UTC()
	rows, err := dbClient.Execute(queryAcquireSubmitLock, flowID, formatTime(now), formatTime(now.Add(-s.lockTTL)))
	if err != nil {
		return false, fmt.Errorf("failed to acquire submit lock: %w", err)
	}
	return rows == 1, nil
}

// EndSubmit releases the submit lock.
func (s *dbSessionStore) EndSubmit(ctx context.Context, flowID string) error {
	dbClient, err := s.dbProvider.GetDBClient(provider.RuntimeDB)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}
	if _, err := dbClient.Execute(queryReleaseSubmitLock, flowID); err != nil {
		return fmt.Errorf("failed to release submit lock: %w", err)
	}
	return nil
}

// Ping checks the runtime database connection.
func (s *dbSessionStore) Ping(ctx context.Context) error {
	dbClient, err := s.dbProvider.GetDBClient(provider.RuntimeDB)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}
	return dbClient.Ping()
}

// PurgeExpired removes every session that expired before now.
func (s *dbSessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	dbClient, err := s.dbProvider.GetDBClient(provider.RuntimeDB)
	if err != nil {
		return 0, fmt.Errorf("failed to get database client: %w", err)
	}
	rows, err := dbClient.Execute(queryDeleteExpiredSessions, formatTime(s.now()))
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired sessions: %w", err)
	}
	return rows, nil
}

func buildSessionFromResultRow(row map[string]interface{}) (*Session, error) {
	flowID, ok := row["flow_id"].(string)
	if !ok || flowID == "" {
		return nil, fmt.Errorf("failed to parse flow_id as string")
	}
	productType, ok := row["product"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse product as string")
	}

	var rawState string
	switch v := row["state"].(type) {
	case string:
		rawState = v
	case []byte:
		rawState = string(v)
	default:
		return nil, fmt.Errorf("failed to parse state as string")
	}
	var state wizard.WizardState
	if err := json.Unmarshal([]byte(rawState), &state); err != nil {
		return nil, fmt.Errorf("failed to decode wizard state: %w", err)
	}

	expiresAt, err := parseTime(row["expires_at"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse expires_at: %w", err)
	}
	createdAt, err := parseTime(row["created_at"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return &Session{
		FlowID:    flowID,
		Product:   productType,
		State:     state,
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(v any) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		return val, nil
	case string:
		return time.Parse(time.RFC3339, val)
	case []byte:
		return time.Parse(time.RFC3339, string(val))
	default:
		return time.Time{}, fmt.Errorf("unexpected type %T", v)
	}
}
