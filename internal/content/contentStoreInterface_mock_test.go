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

package content

import (
	"github.com/stretchr/testify/mock"
)

// contentStoreInterfaceMock is a mock implementation of contentStoreInterface.
type contentStoreInterfaceMock struct {
	mock.Mock
}

func newContentStoreInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *contentStoreInterfaceMock {
	m := &contentStoreInterfaceMock{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *contentStoreInterfaceMock) CreatePost(post Post) error {
	ret := m.Called(post)
	return ret.Error(0)
}

func (m *contentStoreInterfaceMock) ListPosts(kind Kind, includeDrafts bool) ([]Post, error) {
	ret := m.Called(kind, includeDrafts)
	var posts []Post
	if ret.Get(0) != nil {
		posts = ret.Get(0).([]Post)
	}
	return posts, ret.Error(1)
}

func (m *contentStoreInterfaceMock) SlugExists(kind Kind, slug string) (bool, error) {
	ret := m.Called(kind, slug)
	return ret.Bool(0), ret.Error(1)
}
