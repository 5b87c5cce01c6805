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

package submission

import (
	"github.com/stretchr/testify/mock"
)

// submissionStoreInterfaceMock is a mock implementation of submissionStoreInterface.
type submissionStoreInterfaceMock struct {
	mock.Mock
}

func newSubmissionStoreInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *submissionStoreInterfaceMock {
	m := &submissionStoreInterfaceMock{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *submissionStoreInterfaceMock) CreateSubmission(table string, row storedSubmission) error {
	ret := m.Called(table, row)
	return ret.Error(0)
}

func (m *submissionStoreInterfaceMock) ListSubmissions(table, search string) ([]Submission, error) {
	ret := m.Called(table, search)
	var subs []Submission
	if ret.Get(0) != nil {
		subs = ret.Get(0).([]Submission)
	}
	return subs, ret.Error(1)
}

func (m *submissionStoreInterfaceMock) GetSubmission(table, id string) (Submission, error) {
	ret := m.Called(table, id)
	var sub Submission
	if ret.Get(0) != nil {
		sub = ret.Get(0).(Submission)
	}
	return sub, ret.Error(1)
}

func (m *submissionStoreInterfaceMock) UpdateSubmissionStatus(table, id, status, notes, updatedAt string) error {
	ret := m.Called(table, id, status, notes, updatedAt)
	return ret.Error(0)
}
