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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/casurance/intake/internal/wizard"
	"github.com/casurance/intake/tests/mocks/database/clientmock"
	"github.com/casurance/intake/tests/mocks/database/providermock"
)

type SessionStoreTestSuite struct {
	suite.Suite
	mockProvider *providermock.DBProviderInterfaceMock
	mockClient   *clientmock.DBClientInterfaceMock
	store        *dbSessionStore
	now          time.Time
}

func TestSessionStoreSuite(t *testing.T) {
	suite.Run(t, new(SessionStoreTestSuite))
}

func (suite *SessionStoreTestSuite) SetupTest() {
	suite.mockProvider = providermock.NewDBProviderInterfaceMock(suite.T())
	suite.mockClient = clientmock.NewDBClientInterfaceMock(suite.T())
	suite.now = time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)
	suite.store = &dbSessionStore{
		dbProvider: suite.mockProvider,
		lockTTL:    2 * time.Minute,
		now:        func() time.Time { return suite.now },
	}
	suite.mockProvider.On("GetDBClient", "runtime").Return(suite.mockClient, nil).Maybe()
}

func (suite *SessionStoreTestSuite) sessionRow(expiresAt string) map[string]interface{} {
	state, err := json.Marshal(wizard.WizardState{
		CurrentStep: 2, TotalSteps: 3, Record: wizard.FormRecord{"name": "Jane"}, SubmissionStatus: wizard.StatusFailed,
	})
	require.NoError(suite.T(), err)
	return map[string]interface{}{
		"flow_id":    "flow-1",
		"product":    "hotel",
		"state":      []byte(state),
		"expires_at": expiresAt,
		"created_at": time.Date(2024, 3, 9, 14, 0, 0, 0, time.UTC),
	}
}

func (suite *SessionStoreTestSuite) TestCreate() {
	suite.mockClient.On("Execute", queryCreateSession, "flow-1", "hotel", mock.AnythingOfType("string"),
		"2024-03-09T15:05:00Z", "2024-03-09T14:05:00Z").Return(int64(1), nil)

	err := suite.store.Create(context.Background(), Session{
		FlowID: "flow-1", Product: "hotel", CreatedAt: suite.now, ExpiresAt: suite.now.Add(time.Hour),
	})

	assert.NoError(suite.T(), err)
}

func (suite *SessionStoreTestSuite) TestGet() {
	suite.mockClient.On("Query", queryGetSession, "flow-1").
		Return([]map[string]interface{}{suite.sessionRow("2024-03-09T15:05:00Z")}, nil)

	session, err := suite.store.Get(context.Background(), "flow-1")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "hotel", session.Product)
	assert.Equal(suite.T(), 2, session.State.CurrentStep)
	assert.Equal(suite.T(), wizard.StatusFailed, session.State.SubmissionStatus)
	assert.Equal(suite.T(), "Jane", session.State.Record["name"])
}

func (suite *SessionStoreTestSuite) TestGetExpiredDeletesSession() {
	suite.mockClient.On("Query", queryGetSession, "flow-1").
		Return([]map[string]interface{}{suite.sessionRow("2024-03-09T14:00:00Z")}, nil)
	suite.mockClient.On("Execute", queryDeleteSession, "flow-1").Return(int64(1), nil)

	_, err := suite.store.Get(context.Background(), "flow-1")

	assert.ErrorIs(suite.T(), err, ErrSessionNotFound)
}

func (suite *SessionStoreTestSuite) TestGetMissing() {
	suite.mockClient.On("Query", queryGetSession, "flow-1").Return([]map[string]interface{}{}, nil)

	_, err := suite.store.Get(context.Background(), "flow-1")

	assert.ErrorIs(suite.T(), err, ErrSessionNotFound)
}

func (suite *SessionStoreTestSuite) TestUpdateMissing() {
	suite.mockClient.On("Execute", queryUpdateSession, "flow-1", mock.AnythingOfType("string"),
		"2024-03-09T15:05:00Z", "2024-03-09T14:05:00Z").Return(int64(0), nil)

	err := suite.store.Update(context.Background(), Session{FlowID: "flow-1", ExpiresAt: suite.now.Add(time.Hour)})

	assert.ErrorIs(suite.T(), err, ErrSessionNotFound)
}

func (suite *SessionStoreTestSuite) TestSubmitLock() {
	suite.mockClient.On("Execute", queryAcquireSubmitLock, "flow-1", "2024-03-09T14:05:00Z",
		"2024-03-09T14:03:00Z").Return(int64(1), nil).Once()
	suite.mockClient.On("Execute", queryAcquireSubmitLock, "flow-1", "2024-03-09T14:05:00Z",
		"2024-03-09T14:03:00Z").Return(int64(0), nil).Once()
	suite.mockClient.On("Execute", queryReleaseSubmitLock, "flow-1").Return(int64(1), nil).Once()

	first, err := suite.store.TryBeginSubmit(context.Background(), "flow-1")
	require.NoError(suite.T(), err)
	second, err := suite.store.TryBeginSubmit(context.Background(), "flow-1")
	require.NoError(suite.T(), err)

	assert.True(suite.T(), first)
	assert.False(suite.T(), second)
	assert.NoError(suite.T(), suite.store.EndSubmit(context.Background(), "flow-1"))
}

func (suite *SessionStoreTestSuite) TestSubmitLockTakesOverStaleLock() {
	suite.mockClient.On("Execute", queryAcquireSubmitLock, "flow-1", "2024-03-09T14:05:00Z",
		"2024-03-09T14:03:00Z").Return(int64(0), nil).Once()
	acquired, err := suite.store.TryBeginSubmit(context.Background(), "flow-1")
	require.NoError(suite.T(), err)
	assert.False(suite.T(), acquired)

	suite.now = suite.now.Add(3 * time.Minute)
	suite.mockClient.On("Execute", queryAcquireSubmitLock, "flow-1", "2024-03-09T14:08:00Z",
		"2024-03-09T14:06:00Z").Return(int64(1), nil).Once()
	acquired, err = suite.store.TryBeginSubmit(context.Background(), "flow-1")
	require.NoError(suite.T(), err)
	assert.True(suite.T(), acquired)
	assert.Contains(suite.T(), queryAcquireSubmitLock.Query, "SUBMIT_LOCKED_AT < $3")
}

func (suite *SessionStoreTestSuite) TestDatabaseError() {
	suite.mockClient.On("Execute", queryDeleteSession, "flow-1").Return(int64(0), errors.New("connection reset"))

	err := suite.store.Delete(context.Background(), "flow-1")

	assert.ErrorContains(suite.T(), err, "connection reset")
}

func (suite *SessionStoreTestSuite) TestPurgeExpired() {
	suite.mockClient.On("Execute", queryDeleteExpiredSessions, "2024-03-09T14:05:00Z").Return(int64(3), nil)

	removed, err := suite.store.PurgeExpired(context.Background())

	require.NoError(suite.T(), err)
	assert.EqualValues(suite.T(), 3, removed)
}

func (suite *SessionStoreTestSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := suite.store.Get(ctx, "flow-1")

	assert.ErrorIs(suite.T(), err, context.Canceled)
}
