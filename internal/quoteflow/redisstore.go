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
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisSessionStore keeps sessions in redis as JSON values with a sliding TTL.
type redisSessionStore struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
	lockTTL   time.Duration
}

func newRedisSessionStore(client redis.UniversalClient, keyPrefix string,
	ttl, lockTTL time.Duration) *redisSessionStore {
	return &redisSessionStore{client: client, keyPrefix: keyPrefix, ttl: ttl, lockTTL: lockTTL}
}

func (s *redisSessionStore) sessionKey(flowID string) string {
	return fmt.Sprintf("%s:quoteflow:%s", s.keyPrefix, flowID)
}

func (s *redisSessionStore) lockKey(flowID string) string {
	return s.sessionKey(flowID) + ":submit"
}

// Create stores a new session. It fails when the flow ID is already taken.
func (s *redisSessionStore) Create(ctx context.Context, session Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	created, err := s.client.SetNX(ctx, s.sessionKey(session.FlowID), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to create quote flow session: %w", err)
	}
	if !created {
		return fmt.Errorf("quote flow session %s already exists", session.FlowID)
	}
	return nil
}

// Get loads a session.
func (s *redisSessionStore) Get(ctx context.Context, flowID string) (*Session, error) {
	data, err := s.client.Get(ctx, s.sessionKey(flowID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load quote flow session: %w", err)
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

// Update replaces a session and resets its TTL.
func (s *redisSessionStore) Update(ctx context.Context, session Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	updated, err := s.client.SetXX(ctx, s.sessionKey(session.FlowID), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to update quote flow session: %w", err)
	}
	if !updated {
		return ErrSessionNotFound
	}
	return nil
}

// Delete removes a session along with its submit lock.
func (s *redisSessionStore) Delete(ctx context.Context, flowID string) error {
	if err := s.client.Del(ctx, s.sessionKey(flowID), s.lockKey(flowID)).Err(); err != nil {
		return fmt.Errorf("failed to delete quote flow session: %w", err)
	}
	return nil
}

// TryBeginSubmit takes the submit lock with SETNX. The key expires after the lock TTL.
func (s *redisSessionStore) TryBeginSubmit(ctx context.Context, flowID string) (bool, error) {
	acquired, err := s.client.SetNX(ctx, s.lockKey(flowID), time.Now().UTC().Format(time.RFC3339), s.lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire submit lock: %w", err)
	}
	return acquired, nil
}

// EndSubmit releases the submit lock.
func (s *redisSessionStore) EndSubmit(ctx context.Context, flowID string) error {
	if err := s.client.Del(ctx, s.lockKey(flowID)).Err(); err != nil {
		return fmt.Errorf("failed to release submit lock: %w", err)
	}
	return nil
}

// Ping checks the redis connection.
func (s *redisSessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
