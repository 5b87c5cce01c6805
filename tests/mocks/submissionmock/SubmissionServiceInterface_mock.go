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

// Package submissionmock provides testify mocks for the submission service.
package submissionmock

import (
	"github.com/stretchr/testify/mock"

	"github.com/casurance/intake/internal/submission"
	"github.com/casurance/intake/internal/system/error/serviceerror"
)

// SubmissionServiceInterfaceMock is a mock implementation of submission.SubmissionServiceInterface.
type SubmissionServiceInterfaceMock struct {
	mock.Mock
}

// NewSubmissionServiceInterfaceMock creates a new mock and registers expectation assertions on cleanup.
func NewSubmissionServiceInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *SubmissionServiceInterfaceMock {
	m := &SubmissionServiceInterfaceMock{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func serviceErrorAt(ret mock.Arguments, i int) *serviceerror.ServiceError {
	if ret.Get(i) == nil {
		return nil
	}
	return ret.Get(i).(*serviceerror.ServiceError)
}

func submissionAt(ret mock.Arguments, i int) submission.Submission {
	if ret.Get(i) == nil {
		return nil
	}
	return ret.Get(i).(submission.Submission)
}

// CreateSubmission mocks the CreateSubmission method.
func (m *SubmissionServiceInterfaceMock) CreateSubmission(
	req submission.NewSubmission) (submission.Submission, *serviceerror.ServiceError) {
	ret := m.Called(req)
	return submissionAt(ret, 0), serviceErrorAt(ret, 1)
}

// ListSubmissions mocks the ListSubmissions method.
func (m *SubmissionServiceInterfaceMock) ListSubmissions(
	filter submission.Filter) ([]submission.Submission, *serviceerror.ServiceError) {
	ret := m.Called(filter)
	var subs []submission.Submission
	if ret.Get(0) != nil {
		subs = ret.Get(0).([]submission.Submission)
	}
	return subs, serviceErrorAt(ret, 1)
}

// ListNormalizedSubmissions mocks the ListNormalizedSubmissions method.
func (m *SubmissionServiceInterfaceMock) ListNormalizedSubmissions(
	filter submission.Filter) ([]submission.NormalizedSubmission, *serviceerror.ServiceError) {
	ret := m.Called(filter)
	var records []submission.NormalizedSubmission
	if ret.Get(0) != nil {
		records = ret.Get(0).([]submission.NormalizedSubmission)
	}
	return records, serviceErrorAt(ret, 1)
}

// UpdateStatus mocks the UpdateStatus method.
func (m *SubmissionServiceInterfaceMock) UpdateStatus(submissionType, id string,
	req submission.StatusUpdateRequest) (submission.Submission, *serviceerror.ServiceError) {
	ret := m.Called(submissionType, id, req)
	return submissionAt(ret, 0), serviceErrorAt(ret, 1)
}

// MarkRead mocks the MarkRead method.
func (m *SubmissionServiceInterfaceMock) MarkRead(submissionType,
	id string) (submission.Submission, *serviceerror.ServiceError) {
	ret := m.Called(submissionType, id)
	return submissionAt(ret, 0), serviceErrorAt(ret, 1)
}

// ExportSubmissions mocks the ExportSubmissions method.
func (m *SubmissionServiceInterfaceMock) ExportSubmissions(
	filter submission.Filter) ([]byte, string, *serviceerror.ServiceError) {
	ret := m.Called(filter)
	var data []byte
	if ret.Get(0) != nil {
		data = ret.Get(0).([]byte)
	}
	return data, ret.String(1), serviceErrorAt(ret, 2)
}
