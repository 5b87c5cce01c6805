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

// Package main is the entry point for starting the intake server.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/casurance/intake/internal/system/cert"
	"github.com/casurance/intake/internal/system/config"
	"github.com/casurance/intake/internal/system/log"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logger := log.GetLogger()
	defer logger.Sync()

	intakeHome := getIntakeHome(logger)

	cfg := initIntakeConfigurations(logger, intakeHome)
	if cfg == nil {
		logger.Fatal("Failed to initialize configurations")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mux := http.NewServeMux()
	cleanup := registerServices(ctx, mux)
	defer cleanup()

	server, serverAddr := createHTTPServer(logger, cfg, mux)
	serveErr := make(chan error, 1)
	go func() {
		if cfg.Server.HTTPOnly {
			logger.Info("TLS is not enabled, starting server without TLS")
			serveErr <- startHTTPServer(logger, server, serverAddr)
		} else {
			serveErr <- startTLSServer(logger, cfg, server, serverAddr, intakeHome)
		}
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server stopped", log.Error(err))
		}
	case <-ctx.Done():
		logger.Info("Shutting down intake server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown failed", log.Error(err))
		}
	}
}

// getIntakeHome returns the intake home directory.
func getIntakeHome(logger *log.Logger) string {
	homeFlag := flag.String("home", "", "Path to the intake home directory")
	flag.Parse()

	if *homeFlag != "" {
		logger.Info("Using intake home from command line argument", log.String("home", *homeFlag))
		return *homeFlag
	}
	dir, err := os.Getwd()
	if err != nil {
		logger.Fatal("Failed to get current working directory", log.Error(err))
	}
	return dir
}

// initIntakeConfigurations loads deployment.yaml and initializes the runtime configuration.
func initIntakeConfigurations(logger *log.Logger, intakeHome string) *config.Config {
	configFilePath := path.Join(intakeHome, "repository/conf/deployment.yaml")
	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		logger.Fatal("Failed to load configurations", log.Error(err))
	}

	if err := config.InitializeRuntime(intakeHome, cfg); err != nil {
		logger.Fatal("Failed to initialize intake runtime", log.Error(err))
	}
	return cfg
}

// startTLSServer serves HTTPS with the configured certificate.
func startTLSServer(logger *log.Logger, cfg *config.Config, server *http.Server, serverAddr,
	intakeHome string) error {
	tlsConfig, err := cert.GetTLSConfig(cfg, intakeHome)
	if err != nil {
		logger.Fatal("Failed to load TLS configuration", log.Error(err))
	}

	ln, err := tls.Listen("tcp", serverAddr, tlsConfig)
	if err != nil {
		logger.Fatal("Failed to start TLS listener", log.Error(err))
	}

	logger.Info("Intake server started (HTTPS)...", log.String("address", serverAddr))
	return server.Serve(ln)
}

// startHTTPServer serves plain HTTP.
func startHTTPServer(logger *log.Logger, server *http.Server, serverAddr string) error {
	logger.Info("Intake server started (HTTP)...", log.String("address", serverAddr))
	return server.ListenAndServe()
}

// createHTTPServer creates the server wrapping the multiplexer with the access log.
func createHTTPServer(logger *log.Logger, cfg *config.Config, mux *http.ServeMux) (*http.Server, string) {
	wrappedMux := log.AccessLogHandler(logger, mux)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Hostname, cfg.Server.Port)

	server := &http.Server{
		Addr:              serverAddr,
		Handler:           wrappedMux,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return server, serverAddr
}
