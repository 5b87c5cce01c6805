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

// Package main is the intakectl command line tool for agents and operators of the intake server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/casurance/intake/internal/portalclient"
)

const (
	apiURLEnvironmentVariable = "INTAKE_API_URL"
	tokenEnvironmentVariable  = "INTAKE_AGENT_TOKEN"
	defaultAPIURL             = "http://localhost:8090"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalOptions are the flags shared by every command talking to the API.
type globalOptions struct {
	apiURL string
	token  string
}

func (o *globalOptions) client() *portalclient.Client {
	return portalclient.New(o.apiURL, portalclient.WithToken(o.token))
}

func rootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "intakectl",
		Short:         "Submit quote requests and manage submissions of the Casurance intake server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	apiURL := os.Getenv(apiURLEnvironmentVariable)
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	cmd.PersistentFlags().StringVar(&opts.apiURL, "api", apiURL, "Base URL of the intake API ($"+apiURLEnvironmentVariable+")")
	cmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv(tokenEnvironmentVariable),
		"Agent bearer token ($"+tokenEnvironmentVariable+")")

	cmd.AddCommand(quoteCmd(opts))
	cmd.AddCommand(submissionsCmd(opts))
	cmd.AddCommand(tokenCmd())
	return cmd
}
