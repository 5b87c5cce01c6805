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

// Package notificationmock provides testify mocks for the submission event publisher.
package notificationmock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/casurance/intake/internal/notification"
)

// PublisherMock is a mock implementation of notification.Publisher.
type PublisherMock struct {
	mock.Mock
}

// NewPublisherMock creates a new mock and registers expectation assertions on cleanup.
func NewPublisherMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *PublisherMock {
	m := &PublisherMock{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// PublishSubmissionCreated mocks the PublishSubmissionCreated method.
func (m *PublisherMock) PublishSubmissionCreated(ctx context.Context, event notification.SubmissionEvent) error {
	ret := m.Called(ctx, event)
	return ret.Error(0)
}

// Close mocks the Close method.
func (m *PublisherMock) Close() {
	m.Called()
}
