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

// Package clientmock provides testify mocks for the database client.
package clientmock

import (
	"github.com/stretchr/testify/mock"

	"github.com/casurance/intake/internal/system/database/model"
)

// DBClientInterfaceMock is a mock implementation of client.DBClientInterface.
type DBClientInterfaceMock struct {
	mock.Mock
}

// NewDBClientInterfaceMock creates a new mock and registers expectation assertions on cleanup.
func NewDBClientInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *DBClientInterfaceMock {
	m := &DBClientInterfaceMock{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Query mocks the Query method.
func (m *DBClientInterfaceMock) Query(query model.DBQuery, args ...interface{}) ([]map[string]interface{}, error) {
	callArgs := append([]interface{}{query}, args...)
	ret := m.Called(callArgs...)

	var rows []map[string]interface{}
	if fn, ok := ret.Get(0).(func(model.DBQuery, ...interface{}) []map[string]interface{}); ok {
		rows = fn(query, args...)
	} else if ret.Get(0) != nil {
		rows = ret.Get(0).([]map[string]interface{})
	}
	return rows, ret.Error(1)
}

// Execute mocks the Execute method.
func (m *DBClientInterfaceMock) Execute(query model.DBQuery, args ...interface{}) (int64, error) {
	callArgs := append([]interface{}{query}, args...)
	ret := m.Called(callArgs...)
	return ret.Get(0).(int64), ret.Error(1)
}

// Ping mocks the Ping method.
func (m *DBClientInterfaceMock) Ping() error {
	ret := m.Called()
	return ret.Error(0)
}

// Close mocks the Close method.
func (m *DBClientInterfaceMock) Close() error {
	ret := m.Called()
	return ret.Error(0)
}
