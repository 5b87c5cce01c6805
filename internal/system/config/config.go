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

// Package config provides structures and functions for loading and managing server configurations.
package config

import (
	"os"
	"path/filepath"

	"github.com/casurance/intake/internal/system/constants"
	"github.com/casurance/intake/internal/system/log"
	"github.com/casurance/intake/internal/system/utils"

	yaml "gopkg.in/yaml.v3"
)

// ServerConfig holds the server configuration details.
type ServerConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	HTTPOnly bool   `yaml:"http_only"`
}

// SecurityConfig holds the security configuration details.
type SecurityConfig struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// DataSource holds the individual database connection details.
type DataSource struct {
	Type            string `yaml:"type"`
	Hostname        string `yaml:"hostname"`
	Port            int    `yaml:"port"`
	Name            string `yaml:"name"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	SSLMode         string `yaml:"sslmode"`
	Path            string `yaml:"path"`
	Options         string `yaml:"options"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"`
}

// DatabaseConfig holds the different database configuration details.
type DatabaseConfig struct {
	Intake  DataSource `yaml:"intake"`
	Runtime DataSource `yaml:"runtime"`
}

// CORSConfig holds the CORS configuration details.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// AgentAuthConfig holds the agent token verification details.
type AgentAuthConfig struct {
	JWTSecret      string `yaml:"jwt_secret"`
	Issuer         string `yaml:"issuer"`
	Audience       string `yaml:"audience"`
	ValidityPeriod int64  `yaml:"validity_period"`
}

// RateLimitConfig holds the per client rate limit applied to public endpoints.
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// QuoteFlowConfig holds the server held wizard session configuration.
type QuoteFlowConfig struct {
	SessionStore  string `yaml:"session_store"`
	SessionTTL    int64  `yaml:"session_ttl"`
	SubmitLockTTL int64  `yaml:"submit_lock_ttl"`
}

// RedisConfig holds the redis connection details.
type RedisConfig struct {
	Address   string `yaml:"address"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

// AttachmentConfig holds the file upload configuration details.
type AttachmentConfig struct {
	Enabled             bool     `yaml:"enabled"`
	Bucket              string   `yaml:"bucket"`
	Region              string   `yaml:"region"`
	Endpoint            string   `yaml:"endpoint"`
	KeyPrefix           string   `yaml:"key_prefix"`
	MaxSize             int64    `yaml:"max_size"`
	AllowedContentTypes []string `yaml:"allowed_content_types"`
}

// EventsConfig holds the submission event publishing configuration.
type EventsConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

// AIConfig holds the content assistant configuration.
type AIConfig struct {
	Enabled bool   `yaml:"enabled"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"api_key"`
}

// PortalConfig holds agent portal presentation settings.
type PortalConfig struct {
	Timezone string `yaml:"timezone"`
}

// Config holds the complete configuration details of the server.
type Config struct {
	Server      ServerConfig     `yaml:"server"`
	Security    SecurityConfig   `yaml:"security"`
	Database    DatabaseConfig   `yaml:"database"`
	CORS        CORSConfig       `yaml:"cors"`
	AgentAuth   AgentAuthConfig  `yaml:"agent_auth"`
	RateLimit   RateLimitConfig  `yaml:"rate_limit"`
	QuoteFlow   QuoteFlowConfig  `yaml:"quote_flow"`
	Redis       RedisConfig      `yaml:"redis"`
	Attachments AttachmentConfig `yaml:"attachments"`
	Events      EventsConfig     `yaml:"events"`
	AI          AIConfig         `yaml:"ai"`
	Portal      PortalConfig     `yaml:"portal"`
}

// LoadConfig loads the configurations from the specified YAML file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	path = filepath.Clean(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if ferr := file.Close(); ferr != nil {
			log.GetLogger().Error("Failed to close config file", log.Error(ferr))
		}
	}()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	applyEnvironmentOverrides(&cfg)
	return &cfg, nil
}

// applyDefaults fills in values the deployment file left empty.
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8090
	}
	if cfg.RateLimit.RequestsPerSecond <= 0 {
		cfg.RateLimit.RequestsPerSecond = 1
	}
	if cfg.RateLimit.Burst <= 0 {
		cfg.RateLimit.Burst = 5
	}
	if cfg.QuoteFlow.SessionStore == "" {
		cfg.QuoteFlow.SessionStore = "database"
	}
	if cfg.QuoteFlow.SessionTTL <= 0 {
		cfg.QuoteFlow.SessionTTL = 3600
	}
	if cfg.QuoteFlow.SubmitLockTTL <= 0 {
		cfg.QuoteFlow.SubmitLockTTL = 120
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "intake"
	}
	if cfg.Attachments.MaxSize <= 0 {
		cfg.Attachments.MaxSize = 10 << 20
	}
	if cfg.Events.SubjectPrefix == "" {
		cfg.Events.SubjectPrefix = "intake"
	}
	if cfg.AgentAuth.ValidityPeriod <= 0 {
		cfg.AgentAuth.ValidityPeriod = 28800
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gemini-2.0-flash"
	}
	if cfg.Portal.Timezone == "" {
		cfg.Portal.Timezone = "UTC"
	}
}

// applyEnvironmentOverrides replaces secrets with values from the environment when present.
func applyEnvironmentOverrides(cfg *Config) {
	if secret := os.Getenv(constants.JWTSecretEnvironmentVariable); secret != "" {
		cfg.AgentAuth.JWTSecret = secret
	}
	if apiKey := os.Getenv(constants.GeminiAPIKeyEnvironmentVariable); apiKey != "" {
		cfg.AI.APIKey = apiKey
	}
	if origins := utils.ParseStringArray(os.Getenv(constants.CORSAllowedOriginsEnvironmentVariable)); len(origins) > 0 {
		cfg.CORS.AllowedOrigins = origins
	}
}
