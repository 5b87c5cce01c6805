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
	"time"

	"github.com/casurance/intake/internal/system/log"
)

// expiredSessionPurger is implemented by stores that do not expire sessions on their own.
type expiredSessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// RunJanitor removes expired sessions every interval until ctx is done.
// It returns at once for stores that expire sessions themselves.
func RunJanitor(ctx context.Context, store SessionStore, interval time.Duration) {
	purger, ok := store.(expiredSessionPurger)
	if !ok {
		return
	}
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "QuoteFlowJanitor"))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := purger.PurgeExpired(ctx)
			if err != nil {
				logger.Warn("Failed to purge expired quote flow sessions", log.Error(err))
				continue
			}
			if removed > 0 {
				logger.Debug("Purged expired quote flow sessions", log.Int64("count", removed))
			}
		}
	}
}
