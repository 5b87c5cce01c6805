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

// Package agent authenticates insurance agents with HS256 signed bearer tokens.
package agent

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/casurance/intake/internal/system/config"
)

// TokenManager issues and verifies agent tokens.
type TokenManager struct {
	secret   []byte
	issuer   string
	audience string
	validity time.Duration
	now      func() time.Time
}

// NewTokenManager creates a token manager from the agent auth configuration.
func NewTokenManager(cfg config.AgentAuthConfig) *TokenManager {
	return &TokenManager{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		validity: time.Duration(cfg.ValidityPeriod) * time.Second,
		now:      time.Now,
	}
}

// NewTokenManagerFromConfig creates a token manager from the runtime configuration.
func NewTokenManagerFromConfig() *TokenManager {
	return NewTokenManager(config.GetRuntime().Config.AgentAuth)
}

// Issue signs a token identifying the given agent.
func (m *TokenManager) Issue(a Agent) (string, error) {
	if len(m.secret) == 0 {
		return "", ErrNoSecret
	}
	if a.ID == "" {
		return "", ErrMissingSubject
	}
	now := m.now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.ID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.validity)),
		},
		Name:  a.Name,
		Email: a.Email,
	}
	if m.audience != "" {
		claims.Audience = jwt.ClaimStrings{m.audience}
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign agent token: %w", err)
	}
	return signed, nil
}

// Verify parses the token and returns the agent it identifies.
func (m *TokenManager) Verify(token string) (Agent, error) {
	if len(m.secret) == 0 {
		return Agent{}, ErrNoSecret
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}
	if m.audience != "" {
		opts = append(opts, jwt.WithAudience(m.audience))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		return Agent{}, fmt.Errorf("token validation failed: %w", err)
	}
	if !parsed.Valid {
		return Agent{}, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return Agent{}, ErrMissingSubject
	}
	return Agent{ID: claims.Subject, Name: claims.Name, Email: claims.Email}, nil
}
