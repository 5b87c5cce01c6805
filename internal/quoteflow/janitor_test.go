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
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type purgingStore struct {
	*memStore
	purges atomic.Int32
}

func (p *purgingStore) PurgeExpired(context.Context) (int64, error) {
	p.purges.Add(1)
	return 1, nil
}

func TestRunJanitorPurgesUntilCancelled(t *testing.T) {
	store := &purgingStore{memStore: newMemStore()}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		RunJanitor(ctx, store, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return store.purges.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after cancellation")
	}
}

func TestRunJanitorReturnsForSelfExpiringStores(t *testing.T) {
	done := make(chan struct{})
	go func() {
		RunJanitor(context.Background(), newMemStore(), time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor should return at once")
	}
}
