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

// Package cert loads the server's TLS certificate.
package cert

import (
	"crypto/tls"
	"errors"
	"os"
	"path"

	"github.com/casurance/intake/internal/system/config"
)

// GetTLSConfig loads the certificate and key named in the security configuration.
// Relative paths are resolved against the intake home directory.
func GetTLSConfig(cfg *config.Config, intakeHome string) (*tls.Config, error) {
	certFilePath := resolve(intakeHome, cfg.Security.CertFile)
	keyFilePath := resolve(intakeHome, cfg.Security.KeyFile)

	if _, err := os.Stat(certFilePath); os.IsNotExist(err) {
		return nil, errors.New("certificate file not found at " + certFilePath)
	}
	if _, err := os.Stat(keyFilePath); os.IsNotExist(err) {
		return nil, errors.New("key file not found at " + keyFilePath)
	}

	certificate, err := tls.LoadX509KeyPair(certFilePath, keyFilePath)
	if err != nil {
		return nil, err
	}
	return &tls.Config{
		Certificates: []tls.Certificate{certificate},
		MinVersion:   tls.VersionTLS12,
	}, nil
}

func resolve(home, file string) string {
	if path.IsAbs(file) {
		return file
	}
	return path.Join(home, file)
}
