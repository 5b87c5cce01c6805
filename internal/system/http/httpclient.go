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

// Package http provides the shared client used for outbound calls to the intake API.
package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/casurance/intake/internal/system/log"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "casurance-intake"
)

var (
	defaultClient HTTPClientInterface
	once          sync.Once
)

// HTTPClientInterface defines the interface for HTTP client operations.
type HTTPClientInterface interface {
	// Do executes an HTTP request and returns an HTTP response.
	Do(req *http.Request) (*http.Response, error)
}

// HTTPClient sends requests with a user agent and logs each exchange at debug level.
type HTTPClient struct {
	client    *http.Client
	userAgent string
	logger    *log.Logger
}

// NewHTTPClient creates an HTTPClient with the default timeout.
func NewHTTPClient() HTTPClientInterface {
	return NewHTTPClientWithConfig(&http.Client{Timeout: defaultTimeout})
}

// NewHTTPClientWithConfig creates an HTTPClient sending through the given client.
func NewHTTPClientWithConfig(client *http.Client) HTTPClientInterface {
	return &HTTPClient{
		client:    client,
		userAgent: defaultUserAgent,
		logger:    log.GetLogger().With(log.String(log.LoggerKeyComponentName, "HTTPClient")),
	}
}

// GetHTTPClient returns the default singleton HTTPClient instance.
func GetHTTPClient() HTTPClientInterface {
	once.Do(func() {
		defaultClient = NewHTTPClient()
	})
	return defaultClient
}

// Do executes an HTTP request and returns an HTTP response.
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("Outbound request failed", log.String("method", req.Method),
			log.String("url", req.URL.Redacted()), log.Error(err))
		return nil, err
	}
	c.logger.Debug("Outbound request completed", log.String("method", req.Method),
		log.String("url", req.URL.Redacted()), log.Int("status", resp.StatusCode),
		log.Duration("elapsed", time.Since(start)))
	return resp, nil
}
