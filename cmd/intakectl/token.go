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

package main

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/casurance/intake/internal/agent"
	"github.com/casurance/intake/internal/system/config"
)

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Agent token utilities",
	}
	cmd.AddCommand(tokenIssueCmd())
	return cmd
}

func tokenIssueCmd() *cobra.Command {
	var (
		home string
		a    agent.Agent
	)

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Mint a development agent token with the server's signing secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(path.Join(home, "repository/conf/deployment.yaml"))
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			token, err := agent.NewTokenManager(cfg.AgentAuth).Issue(a)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&home, "home", ".", "Intake home directory holding repository/conf/deployment.yaml")
	cmd.Flags().StringVar(&a.ID, "id", "", "Agent id (token subject)")
	cmd.Flags().StringVar(&a.Name, "name", "", "Agent display name")
	cmd.Flags().StringVar(&a.Email, "email", "", "Agent email")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
