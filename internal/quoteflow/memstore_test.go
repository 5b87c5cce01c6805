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
	"sync"
)

// memStore is an in memory SessionStore that round trips sessions through JSON like the real stores.
type memStore struct {
	mu       sync.Mutex
	sessions map[string][]byte
	locks    map[string]bool
	purged   int
}

func newMemStore() *memStore {
	return &memStore{sessions: map[string][]byte{}, locks: map[string]bool{}}
}

func (m *memStore) Create(_ context.Context, session Session) error {
	return m.put(session)
}

func (m *memStore) Get(_ context.Context, flowID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.sessions[flowID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (m *memStore) Update(_ context.Context, session Session) error {
	m.mu.Lock()
	_, ok := m.sessions[session.FlowID]
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	return m.put(session)
}

func (m *memStore) put(session Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.FlowID] = data
	return nil
}

func (m *memStore) Delete(_ context.Context, flowID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, flowID)
	delete(m.locks, flowID)
	return nil
}

func (m *memStore) TryBeginSubmit(_ context.Context, flowID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[flowID] {
		return false, nil
	}
	m.locks[flowID] = true
	return true, nil
}

func (m *memStore) EndSubmit(_ context.Context, flowID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, flowID)
	return nil
}

func (m *memStore) Ping(context.Context) error {
	return nil
}

func (m *memStore) locked(flowID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locks[flowID]
}
