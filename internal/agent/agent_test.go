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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/casurance/intake/internal/system/config"
	"github.com/casurance/intake/internal/system/error/apierror"
)

type AgentTestSuite struct {
	suite.Suite
	tokens *TokenManager
	mux    *http.ServeMux
}

func TestAgentSuite(t *testing.T) {
	suite.Run(t, new(AgentTestSuite))
}

func testConfig() config.AgentAuthConfig {
	return config.AgentAuthConfig{
		JWTSecret:      "test-secret-with-enough-length",
		Issuer:         "casurance-intake",
		Audience:       "agent-portal",
		ValidityPeriod: 3600,
	}
}

func (suite *AgentTestSuite) SetupTest() {
	suite.tokens = NewTokenManager(testConfig())
	suite.mux = http.NewServeMux()
	registerRoutes(suite.mux, NewGuard(suite.tokens))
}

func (suite *AgentTestSuite) me(authorization string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/agent/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	suite.mux.ServeHTTP(rec, req)
	return rec
}

func (suite *AgentTestSuite) TestIssueAndVerify() {
	token, err := suite.tokens.Issue(Agent{ID: "agent-7", Name: "Pat Agent", Email: "pat@casurance.com"})
	require.NoError(suite.T(), err)

	a, err := suite.tokens.Verify(token)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), Agent{ID: "agent-7", Name: "Pat Agent", Email: "pat@casurance.com"}, a)
}

func (suite *AgentTestSuite) TestMeReturnsSession() {
	token, err := suite.tokens.Issue(Agent{ID: "agent-7", Name: "Pat Agent"})
	require.NoError(suite.T(), err)

	rec := suite.me("Bearer " + token)

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	var body SessionResponse
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(suite.T(), body.IsAuthenticated)
	assert.Equal(suite.T(), "agent-7", body.Agent.ID)
}

func (suite *AgentTestSuite) TestMissingToken() {
	rec := suite.me("")

	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
	assert.Equal(suite.T(), "Bearer", rec.Header().Get("WWW-Authenticate"))
	var body apierror.ErrorResponse
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(suite.T(), ErrorUnauthorized.Code, body.Code)
}

func (suite *AgentTestSuite) TestExpiredToken() {
	issuer := NewTokenManager(testConfig())
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := issuer.Issue(Agent{ID: "agent-7"})
	require.NoError(suite.T(), err)

	_, err = suite.tokens.Verify(token)

	assert.ErrorIs(suite.T(), err, jwt.ErrTokenExpired)
	assert.Equal(suite.T(), http.StatusUnauthorized, suite.me("Bearer "+token).Code)
}

func (suite *AgentTestSuite) TestWrongSecret() {
	cfg := testConfig()
	cfg.JWTSecret = "another-secret-entirely"
	token, err := NewTokenManager(cfg).Issue(Agent{ID: "agent-7"})
	require.NoError(suite.T(), err)

	_, err = suite.tokens.Verify(token)

	assert.ErrorIs(suite.T(), err, jwt.ErrTokenSignatureInvalid)
}

func (suite *AgentTestSuite) TestWrongAudience() {
	cfg := testConfig()
	cfg.Audience = "someone-else"
	token, err := NewTokenManager(cfg).Issue(Agent{ID: "agent-7"})
	require.NoError(suite.T(), err)

	_, err = suite.tokens.Verify(token)

	assert.ErrorIs(suite.T(), err, jwt.ErrTokenInvalidAudience)
}

func (suite *AgentTestSuite) TestNoneAlgorithmRejected() {
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "agent-7",
		Issuer:    "casurance-intake",
		Audience:  jwt.ClaimStrings{"agent-portal"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(suite.T(), err)

	_, err = suite.tokens.Verify(token)

	assert.Error(suite.T(), err)
}

func (suite *AgentTestSuite) TestMissingSubject() {
	_, err := suite.tokens.Issue(Agent{})
	assert.ErrorIs(suite.T(), err, ErrMissingSubject)
}

func (suite *AgentTestSuite) TestNoSecretConfigured() {
	tokens := NewTokenManager(config.AgentAuthConfig{ValidityPeriod: 60})
	_, err := tokens.Issue(Agent{ID: "agent-7"})
	assert.ErrorIs(suite.T(), err, ErrNoSecret)

	mux := http.NewServeMux()
	registerRoutes(mux, NewGuard(tokens))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/agent/me", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	mux.ServeHTTP(rec, req)

	assert.Equal(suite.T(), http.StatusInternalServerError, rec.Code)
}

func TestFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := FromContext(req.Context())
	assert.False(t, ok)

	a, ok := FromContext(WithAgent(req.Context(), Agent{ID: "agent-1"}))
	assert.True(t, ok)
	assert.Equal(t, "agent-1", a.ID)
}
