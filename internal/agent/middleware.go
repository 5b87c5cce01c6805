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

package agent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	serverconst "github.com/casurance/intake/internal/system/constants"
	"github.com/casurance/intake/internal/system/error/apierror"
	"github.com/casurance/intake/internal/system/error/serviceerror"
	"github.com/casurance/intake/internal/system/log"
	sysutils "github.com/casurance/intake/internal/system/utils"
)

const guardLoggerComponentName = "AgentGuard"

type contextKey struct{}

// WithAgent returns a copy of ctx carrying the agent.
func WithAgent(ctx context.Context, a Agent) context.Context {
	return context.WithValue(ctx, contextKey{}, a)
}

// FromContext returns the agent authenticated for the request, if any.
func FromContext(ctx context.Context) (Agent, bool) {
	a, ok := ctx.Value(contextKey{}).(Agent)
	return a, ok
}

// Guard protects agent only endpoints.
type Guard struct {
	tokens *TokenManager
}

// NewGuard creates a guard verifying tokens with the given manager.
func NewGuard(tokens *TokenManager) *Guard {
	return &Guard{tokens: tokens}
}

// Authenticate returns the agent identified by the request's bearer token.
func (g *Guard) Authenticate(r *http.Request) (Agent, error) {
	token, err := sysutils.ExtractBearerToken(r)
	if err != nil {
		return Agent{}, err
	}
	return g.tokens.Verify(token)
}

// Require wraps a handler so that it only runs for authenticated agents.
// Other requests receive 401.
func (g *Guard) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := g.Authenticate(r)
		if err != nil {
			logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, guardLoggerComponentName))
			logger.Debug("Rejected agent request", log.String("path", r.URL.Path), log.Error(err))
			if errors.Is(err, ErrNoSecret) {
				writeError(w, logger, http.StatusInternalServerError, &ErrorAuthNotConfigured)
				return
			}
			writeError(w, logger, http.StatusUnauthorized, &ErrorUnauthorized)
			return
		}
		next(w, r.WithContext(WithAgent(r.Context(), a)))
	}
}

func writeError(w http.ResponseWriter, logger *log.Logger, statusCode int, svcErr *serviceerror.ServiceError) {
	w.Header().Set(serverconst.ContentTypeHeaderName, serverconst.ContentTypeJSON)
	if statusCode == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", serverconst.TokenTypeBearer)
	}
	w.WriteHeader(statusCode)
	errResp := apierror.ErrorResponse{
		Code:        svcErr.Code,
		Message:     svcErr.Error,
		Description: svcErr.ErrorDescription,
	}
	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		logger.Error("Error encoding error response", log.Error(err))
	}
}
