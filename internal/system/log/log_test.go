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

package log

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestGetLoggerReturnsSingleton(t *testing.T) {
	first := GetLogger()
	second := GetLogger()

	assert.NotNil(t, first)
	assert.Same(t, first, second)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
		wantErr  bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"verbose", zapcore.ErrorLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := parseLogLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestMaskString(t *testing.T) {
	assert.Equal(t, "", MaskString(""))
	assert.Equal(t, "***", MaskString("abc"))
	assert.Equal(t, "j******e", MaskString("jane doe"))
}

func TestWithAddsFields(t *testing.T) {
	child := GetLogger().With(String(LoggerKeyComponentName, "Test"), Int("n", 1),
		Bool("flag", true), Error(errors.New("boom")))

	assert.NotNil(t, child)
	assert.NotSame(t, GetLogger(), child)
}

func TestAccessLogHandlerCapturesStatus(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/liveness", nil)
	AccessLogHandler(GetLogger(), next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
}

func TestClientHost(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/contact", nil)
	req.RemoteAddr = "10.0.0.7:51234"
	assert.Equal(t, "10.0.0.7", clientHost(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", clientHost(req))

	req = httptest.NewRequest(http.MethodGet, "/api/contact", nil)
	req.RemoteAddr = "pipe"
	assert.Equal(t, "pipe", clientHost(req))
}

func TestIsProbe(t *testing.T) {
	assert.True(t, isProbe("/metrics"))
	assert.True(t, isProbe("/health/readiness"))
	assert.False(t, isProbe("/api/hotel-quotes"))
}
