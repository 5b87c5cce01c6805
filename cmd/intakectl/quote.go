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
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/casurance/intake/internal/product"
	"github.com/casurance/intake/internal/wizard"
)

// answersFile is the YAML document driving a quote wizard.
type answersFile struct {
	Product     string               `yaml:"product"`
	Answers     map[string]yaml.Node `yaml:"answers"`
	Attachments []attachmentEntry    `yaml:"attachments"`
}

type attachmentEntry struct {
	Key         string `yaml:"key"`
	Name        string `yaml:"name"`
	Size        int64  `yaml:"size"`
	ContentType string `yaml:"content_type"`
}

func quoteCmd(opts *globalOptions) *cobra.Command {
	var (
		answersPath string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "quote [product]",
		Short: "Walk a product form with answers from a YAML file and submit it",
		Long: `Walk a product form step by step with the answers of a YAML file.

Each step is validated before moving on, exactly as the web form does. The
product comes from the argument or from the "product" key of the file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadAnswers(answersPath)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				doc.Product = args[0]
			}
			var submitter wizard.Submitter
			if !dryRun {
				submitter = opts.client()
			}
			return runQuote(cmd, cmd.OutOrStdout(), doc, submitter)
		},
	}

	cmd.Flags().StringVarP(&answersPath, "answers", "f", "", "YAML file with the form answers")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate every step without submitting")
	_ = cmd.MarkFlagRequired("answers")
	return cmd
}

func loadAnswers(path string) (*answersFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers: %w", err)
	}
	var doc answersFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse answers: %w", err)
	}
	return &doc, nil
}

// runQuote drives the wizard through every rendered step and submits when a submitter is given.
func runQuote(cmd *cobra.Command, out io.Writer, doc *answersFile, submitter wizard.Submitter) error {
	p, ok := product.GetBySlug(doc.Product)
	if !ok {
		return fmt.Errorf("unknown product %q", doc.Product)
	}
	w, err := wizard.Initialize(p.Definition(), nil, submitter)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(doc.Answers))
	for k := range doc.Answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		node := doc.Answers[k]
		value, err := answerValue(p.Definition(), k, &node)
		if err != nil {
			return err
		}
		if err := w.SetField(k, value); err != nil {
			return err
		}
	}
	for _, a := range doc.Attachments {
		if err := w.AddAttachment(wizard.FileReference{
			Key: a.Key, Name: a.Name, Size: a.Size, ContentType: a.ContentType,
		}); err != nil {
			return err
		}
	}

	for !w.IsFinalStep() {
		before := w.State().CurrentStep
		state := w.Advance()
		if len(state.Errors) > 0 {
			printErrors(out, state.Errors)
			return fmt.Errorf("step %d of %d is incomplete", before, state.TotalSteps)
		}
		fmt.Fprintf(out, "step %d of %d ok\n", before, state.TotalSteps)
	}

	state := w.State()
	if submitter == nil {
		result := w.ValidateStep(state.CurrentStep)
		if !result.Valid {
			printErrors(out, result.Errors)
			return fmt.Errorf("step %d of %d is incomplete", state.CurrentStep, state.TotalSteps)
		}
		fmt.Fprintf(out, "step %d of %d ok\n%s form is complete\n", state.CurrentStep, state.TotalSteps, p.FormName)
		return nil
	}

	result, err := w.Submit(cmd.Context())
	if err != nil {
		state = w.State()
		var validationErr *wizard.ValidationError
		if errors.As(err, &validationErr) {
			printErrors(out, validationErr.Errors)
			return fmt.Errorf("step %d of %d is incomplete", state.CurrentStep, state.TotalSteps)
		}
		printErrors(out, state.Errors)
		return errors.New(state.FailureMessage)
	}
	fmt.Fprintf(out, "submitted %s, reference number %s\n", p.FormName, result.ReferenceNumber)
	return nil
}

// answerValue converts an answer to the value its field holds. Text like fields take the
// scalar as written so that ZIP codes and dates are not read as numbers or timestamps.
func answerValue(def *wizard.Definition, name string, node *yaml.Node) (any, error) {
	if f, ok := def.Field(name); ok && node.Kind == yaml.ScalarNode {
		switch f.Kind {
		case wizard.KindText, wizard.KindTextArea, wizard.KindEmail, wizard.KindPhone,
			wizard.KindSelect, wizard.KindDate:
			if node.Tag == "!!null" {
				return "", nil
			}
			return node.Value, nil
		}
	}
	var value any
	if err := node.Decode(&value); err != nil {
		return nil, fmt.Errorf("failed to read answer %s: %w", name, err)
	}
	return value, nil
}

func printErrors(out io.Writer, errs map[string]string) {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(out, "  %s: %s\n", f, errs[f])
	}
}
