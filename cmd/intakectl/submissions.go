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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/casurance/intake/internal/submission"
)

func submissionsCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "submissions",
		Aliases: []string{"subs"},
		Short:   "List, export and update stored submissions (agent token required)",
	}
	cmd.AddCommand(submissionsListCmd(opts))
	cmd.AddCommand(submissionsExportCmd(opts))
	cmd.AddCommand(submissionsMarkReadCmd(opts))
	cmd.AddCommand(submissionsStatusCmd(opts))
	return cmd
}

func addFilterFlags(cmd *cobra.Command, filter *submission.Filter) {
	cmd.Flags().StringVar(&filter.Type, "type", "", "Only submissions of this type")
	cmd.Flags().StringVar(&filter.Search, "search", "", "Case insensitive search term")
}

func submissionsListCmd(opts *globalOptions) *cobra.Command {
	var (
		filter  submission.Filter
		asJSON  bool
		rawRows bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List submissions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if rawRows {
				subs, err := opts.client().FetchAll(cmd.Context(), filter)
				if err != nil {
					return err
				}
				return writeJSONOutput(out, subs)
			}
			subs, err := opts.client().FetchNormalized(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSONOutput(out, subs)
			}
			return writeTable(out, subs)
		},
	}

	addFilterFlags(cmd, &filter)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print normalized submissions as JSON")
	cmd.Flags().BoolVar(&rawRows, "raw", false, "Print the stored records as JSON")
	return cmd
}

func submissionsExportCmd(opts *globalOptions) *cobra.Command {
	var (
		filter  submission.Filter
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the CSV export",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, fileName, err := opts.client().Export(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = fileName
			}
			if outPath == "" || outPath == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outPath, data, 0o600); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
			return nil
		},
	}

	addFilterFlags(cmd, &filter)
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "File to write, - for stdout (default: server suggested name)")
	return cmd
}

func submissionsMarkReadCmd(opts *globalOptions) *cobra.Command {
	var filter submission.Filter

	cmd := &cobra.Command{
		Use:   "mark-read <type> <id>",
		Short: "Mark a submission read and print the refreshed list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			subs, err := opts.client().MarkRead(cmd.Context(), args[0], args[1], filter)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "marked %s/%s read, %d submissions listed\n", args[0], args[1], len(subs))
			return nil
		},
	}

	addFilterFlags(cmd, &filter)
	return cmd
}

func submissionsStatusCmd(opts *globalOptions) *cobra.Command {
	var req submission.StatusUpdateRequest

	cmd := &cobra.Command{
		Use:   "status <type> <id>",
		Short: "Set the status of a submission",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, err := opts.client().UpdateStatus(cmd.Context(), args[0], args[1], req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s/%s is now %v\n", args[0], args[1], sub[submission.KeyStatus])
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Status, "status", "", "New status")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "Notes to store with the status")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}

func writeJSONOutput(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTable(out io.Writer, subs []submission.NormalizedSubmission) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tFORM\tNAME\tLOCATION\tSTATUS\tDATE")
	for _, s := range subs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", s.ID, s.Type, s.FormName, s.Name, s.Location, s.Status, s.Date)
	}
	return tw.Flush()
}
