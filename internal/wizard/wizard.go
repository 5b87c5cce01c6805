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

package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const (
	// DefaultFailureMessage is shown when a failed submission carries no message.
	DefaultFailureMessage = "There was a problem submitting your request. Please try again."
	// StepErrorKey is the error key used when a step number is out of range.
	StepErrorKey = "_step"
)

// Wizard drives a user through the steps of one form.
// It is safe for concurrent use.
type Wizard struct {
	mu        sync.Mutex
	def       *Definition
	submitter Submitter
	state     WizardState
}

// Initialize creates a wizard at step 1 with an idle submission status.
// Every key of defaults must be declared by the definition.
func Initialize(def *Definition, defaults FormRecord, submitter Submitter) (*Wizard, error) {
	if err := def.Check(); err != nil {
		return nil, err
	}
	record, err := def.NewRecord(defaults)
	if err != nil {
		return nil, err
	}
	return &Wizard{
		def:       def,
		submitter: submitter,
		state: WizardState{
			CurrentStep:      1,
			TotalSteps:       def.TotalSteps(),
			Record:           record,
			SubmissionStatus: StatusIdle,
		},
	}, nil
}

// Restore rebuilds a wizard from a previously taken snapshot.
// Keys missing from the snapshot are filled from the definition; undeclared keys are rejected.
func Restore(def *Definition, state WizardState, submitter Submitter) (*Wizard, error) {
	if err := def.Check(); err != nil {
		return nil, err
	}
	if state.CurrentStep < 1 || state.CurrentStep > def.TotalSteps() {
		return nil, fmt.Errorf("%w: step %d outside 1..%d", ErrInvalidState, state.CurrentStep, def.TotalSteps())
	}
	switch state.SubmissionStatus {
	case StatusIdle, StatusSubmitting, StatusSubmitted, StatusFailed:
	case "":
		state.SubmissionStatus = StatusIdle
	default:
		return nil, fmt.Errorf("%w: unknown submission status %q", ErrInvalidState, state.SubmissionStatus)
	}
	record, err := def.NewRecord(state.Record)
	if err != nil {
		return nil, err
	}
	restored := state.Clone()
	restored.Record = record
	restored.TotalSteps = def.TotalSteps()
	return &Wizard{def: def, submitter: submitter, state: restored}, nil
}

// Definition returns the definition the wizard was built from.
func (w *Wizard) Definition() *Definition {
	return w.def
}

// State returns a copy of the current state.
func (w *Wizard) State() WizardState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Clone()
}

// SetField overwrites one value of the record without validating it.
func (w *Wizard) SetField(name string, value any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkEditable(); err != nil {
		return err
	}
	if _, ok := w.state.Record[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	w.state.Record[name] = cloneValue(value)
	return nil
}

// AddAttachment records file metadata that is submitted alongside the record.
func (w *Wizard) AddAttachment(ref FileReference) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkEditable(); err != nil {
		return err
	}
	w.state.Attachments = append(w.state.Attachments, ref)
	return nil
}

// ValidateStep validates the visible fields of the given step against the current record.
func (w *Wizard) ValidateStep(step int) ValidationResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.validateStep(step)
}

// ValidateAll validates every rendered step.
func (w *Wizard) ValidateAll() ValidationResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	return ValidateRecord(w.def, w.state.Record)
}

// IsStepVisible reports whether the step currently renders.
func (w *Wizard) IsStepVisible(step int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	s, ok := w.def.Step(step)
	return ok && evaluate(s.RenderPredicate, w.state.Record)
}

// VisibleFields returns the fields of the step that currently render.
func (w *Wizard) VisibleFields(step int) []FieldRule {
	w.mu.Lock()
	defer w.mu.Unlock()
	s, ok := w.def.Step(step)
	if !ok {
		return nil
	}
	return visibleFields(s, w.state.Record)
}

// IsFinalStep reports whether no rendered step follows the current one.
func (w *Wizard) IsFinalStep() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.nextVisibleStep(w.state.CurrentStep) == 0
}

// Advance validates the current step and moves to the next rendered step.
// On invalid input the step is unchanged and the errors are surfaced in the state.
// Advance on the final step, or while a submission is pending or done, changes nothing.
func (w *Wizard) Advance() WizardState {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.navigationLocked() {
		return w.state.Clone()
	}
	next := w.nextVisibleStep(w.state.CurrentStep)
	if next == 0 {
		return w.state.Clone()
	}

	result := w.validateStep(w.state.CurrentStep)
	if !result.Valid {
		w.state.Errors = result.Errors
		return w.state.Clone()
	}
	w.state.Errors = nil
	w.state.CurrentStep = next
	return w.state.Clone()
}

// Retreat moves to the previous rendered step without validating.
func (w *Wizard) Retreat() WizardState {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.navigationLocked() {
		return w.state.Clone()
	}
	if prev := w.prevVisibleStep(w.state.CurrentStep); prev != 0 {
		w.state.CurrentStep = prev
		w.state.Errors = nil
	}
	return w.state.Clone()
}

// Submit validates the final step and hands the record to the Submitter.
// At most one submission is in flight per wizard: a call made while another is
// pending returns ErrSubmissionInProgress without contacting the Submitter.
// On failure the status becomes failed and the record and step are kept for a retry.
func (w *Wizard) Submit(ctx context.Context) (SubmitResult, error) {
	w.mu.Lock()
	switch w.state.SubmissionStatus {
	case StatusSubmitting:
		w.mu.Unlock()
		return SubmitResult{}, ErrSubmissionInProgress
	case StatusSubmitted:
		ref := w.state.ReferenceNumber
		w.mu.Unlock()
		return SubmitResult{ReferenceNumber: ref}, ErrAlreadySubmitted
	}
	if w.submitter == nil {
		w.mu.Unlock()
		return SubmitResult{}, ErrNoSubmitter
	}
	if w.nextVisibleStep(w.state.CurrentStep) != 0 {
		w.mu.Unlock()
		return SubmitResult{}, ErrNotFinalStep
	}
	result := w.validateStep(w.state.CurrentStep)
	if !result.Valid {
		w.state.Errors = result.Errors
		w.mu.Unlock()
		return SubmitResult{}, &ValidationError{Errors: cloneErrors(result.Errors)}
	}

	w.state.SubmissionStatus = StatusSubmitting
	w.state.Errors = nil
	w.state.FailureMessage = ""
	req := SubmitRequest{
		Product:     w.def.Product,
		Record:      w.state.Record.Clone(),
		Attachments: append([]FileReference(nil), w.state.Attachments...),
	}
	w.mu.Unlock()

	submitResult, err := w.submitter.Submit(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.state.SubmissionStatus = StatusFailed
		w.state.FailureMessage = failureMessage(err)
		var submitErr *SubmitError
		if errors.As(err, &submitErr) && len(submitErr.FieldErrors) > 0 {
			w.state.Errors = cloneErrors(submitErr.FieldErrors)
		}
		return SubmitResult{}, err
	}

	submitResult.ReferenceNumber = strings.TrimSpace(submitResult.ReferenceNumber)
	if submitResult.ReferenceNumber == "" {
		submitResult.ReferenceNumber = PlaceholderReference()
		submitResult.Placeholder = true
	}
	w.state.SubmissionStatus = StatusSubmitted
	w.state.ReferenceNumber = submitResult.ReferenceNumber
	return submitResult, nil
}

// PlaceholderReference returns a locally generated reference number of the form CAS-XXXXXXXX.
func PlaceholderReference() string {
	return "CAS-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// ValidateRecord validates every rendered step of the definition against the record.
func ValidateRecord(def *Definition, record FormRecord) ValidationResult {
	errs := map[string]string{}
	for _, s := range def.Steps {
		if !evaluate(s.RenderPredicate, record) {
			continue
		}
		for k, v := range validateFields(s, record) {
			errs[k] = v
		}
	}
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func (w *Wizard) validateStep(step int) ValidationResult {
	s, ok := w.def.Step(step)
	if !ok {
		return ValidationResult{Errors: map[string]string{StepErrorKey: fmt.Sprintf("unknown step %d", step)}}
	}
	if !evaluate(s.RenderPredicate, w.state.Record) {
		return ValidationResult{Valid: true, Errors: map[string]string{}}
	}
	errs := validateFields(s, w.state.Record)
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func validateFields(s StepDefinition, record FormRecord) map[string]string {
	errs := map[string]string{}
	for _, f := range visibleFields(s, record) {
		value := record[f.Name]
		if isEmpty(value) {
			if f.Required {
				errs[f.Name] = requiredMessage(f)
			}
			continue
		}
		for _, v := range f.Validators {
			if err := v.Validate(value); err != nil {
				errs[f.Name] = err.Error()
				break
			}
		}
	}
	return errs
}

func visibleFields(s StepDefinition, record FormRecord) []FieldRule {
	fields := make([]FieldRule, 0, len(s.Fields))
	for _, f := range s.Fields {
		if evaluate(f.VisibleWhen, record) {
			fields = append(fields, f)
		}
	}
	return fields
}

func requiredMessage(f FieldRule) string {
	label := f.Label
	if label == "" {
		label = f.Name
	}
	return label + " is required"
}

func (w *Wizard) nextVisibleStep(from int) int {
	for n := from + 1; n <= w.def.TotalSteps(); n++ {
		if evaluate(w.def.Steps[n-1].RenderPredicate, w.state.Record) {
			return n
		}
	}
	return 0
}

func (w *Wizard) prevVisibleStep(from int) int {
	for n := from - 1; n >= 1; n-- {
		if evaluate(w.def.Steps[n-1].RenderPredicate, w.state.Record) {
			return n
		}
	}
	return 0
}

func (w *Wizard) navigationLocked() bool {
	return w.state.SubmissionStatus == StatusSubmitting || w.state.SubmissionStatus == StatusSubmitted
}

func (w *Wizard) checkEditable() error {
	switch w.state.SubmissionStatus {
	case StatusSubmitting:
		return ErrSubmissionInProgress
	case StatusSubmitted:
		return ErrAlreadySubmitted
	}
	return nil
}

// failureMessage returns the receiving side's message, or the generic fallback
// for transport errors and rejections without a message.
func failureMessage(err error) string {
	var submitErr *SubmitError
	if errors.As(err, &submitErr) {
		if msg := strings.TrimSpace(submitErr.Message); msg != "" {
			return msg
		}
	}
	return DefaultFailureMessage
}
