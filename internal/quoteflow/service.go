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

// Package quoteflow drives product wizards on the server, one session per quote flow.
//
// Each request restores the wizard from its SessionStore, applies the client's
// inputs and action and saves the resulting state. Submission goes through a
// wizard.Submitter and is guarded by the store so that concurrent requests on
// the same flow submit at most once.
package quoteflow

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/casurance/intake/internal/product"
	"github.com/casurance/intake/internal/system/error/serviceerror"
	"github.com/casurance/intake/internal/system/log"
	"github.com/casurance/intake/internal/system/metrics"
	"github.com/casurance/intake/internal/wizard"
)

const serviceLoggerComponentName = "QuoteFlowService"

// Action results recorded in metrics.
const (
	resultOK      = "ok"
	resultInvalid = "invalid"
	resultFailed  = "failed"
)

// QuoteFlowServiceInterface defines the quote flow operations.
type QuoteFlowServiceInterface interface {
	Start(ctx context.Context, productSlug string) (*FlowResponse, *serviceerror.ServiceError)
	Get(ctx context.Context, flowID string) (*FlowResponse, *serviceerror.ServiceError)
	Execute(ctx context.Context, flowID string, req ActionRequest) (*FlowResponse, *serviceerror.ServiceError)
}

// quoteFlowService is the default implementation of QuoteFlowServiceInterface.
type quoteFlowService struct {
	store     SessionStore
	submitter wizard.Submitter
	ttl       time.Duration
	now       func() time.Time
}

func newQuoteFlowService(store SessionStore, submitter wizard.Submitter, ttl time.Duration) QuoteFlowServiceInterface {
	return &quoteFlowService{
		store:     store,
		submitter: submitter,
		ttl:       ttl,
		now:       time.Now,
	}
}

// Start opens a new flow at step 1 of the product's form.
func (s *quoteFlowService) Start(ctx context.Context, productSlug string) (*FlowResponse, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, serviceLoggerComponentName))

	p, ok := product.GetBySlug(productSlug)
	if !ok {
		return nil, &ErrorUnknownProduct
	}
	w, err := wizard.Initialize(p.Definition(), nil, s.submitter)
	if err != nil {
		logger.Error("Failed to initialize wizard", log.String(log.LoggerKeyProduct, string(p.Type)), log.Error(err))
		return nil, &ErrorInternalServerError
	}

	now := s.now().UTC()
	session := Session{
		FlowID:    uuid.NewString(),
		Product:   string(p.Type),
		State:     w.State(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.store.Create(ctx, session); err != nil {
		logger.Error("Failed to store quote flow session", log.Error(err))
		return nil, &ErrorInternalServerError
	}
	metrics.WizardActions.WithLabelValues(session.Product, "start", resultOK).Inc()
	logger.Debug("Started quote flow", log.String(log.LoggerKeyFlowID, session.FlowID),
		log.String(log.LoggerKeyProduct, session.Product))
	return buildResponse(session.FlowID, session.Product, w), nil
}

// Get returns the current state of a flow.
func (s *quoteFlowService) Get(ctx context.Context, flowID string) (*FlowResponse, *serviceerror.ServiceError) {
	session, w, svcErr := s.load(ctx, flowID)
	if svcErr != nil {
		return nil, svcErr
	}
	return buildResponse(session.FlowID, session.Product, w), nil
}

// Execute applies the inputs of the request and then its action.
// Validation failures are reported in the response errors with the step unchanged.
func (s *quoteFlowService) Execute(ctx context.Context, flowID string,
	req ActionRequest) (*FlowResponse, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, serviceLoggerComponentName),
		log.String(log.LoggerKeyFlowID, flowID))

	switch req.Action {
	case ActionAdvance, ActionRetreat, ActionSubmit, ActionUpdate:
	default:
		return nil, &ErrorInvalidAction
	}

	session, w, svcErr := s.load(ctx, flowID)
	if svcErr != nil {
		return nil, svcErr
	}
	if req.Action == ActionSubmit {
		return s.submit(ctx, session, w, req)
	}
	if w.State().SubmissionStatus == wizard.StatusSubmitting {
		metrics.WizardActions.WithLabelValues(session.Product, req.Action, resultInvalid).Inc()
		return nil, &ErrorSubmissionInProgress
	}
	if svcErr := applyInputs(w, req); svcErr != nil {
		metrics.WizardActions.WithLabelValues(session.Product, req.Action, resultInvalid).Inc()
		return nil, svcErr
	}

	result := resultOK
	switch req.Action {
	case ActionAdvance:
		before := w.State().CurrentStep
		if state := w.Advance(); state.CurrentStep == before && len(state.Errors) > 0 {
			result = resultInvalid
		}
	case ActionRetreat:
		w.Retreat()
	}

	if svcErr := s.save(ctx, session, w); svcErr != nil {
		return nil, svcErr
	}
	metrics.WizardActions.WithLabelValues(session.Product, req.Action, result).Inc()
	logger.Debug("Processed quote flow action", log.String("action", req.Action), log.String("result", result))
	return buildResponse(session.FlowID, session.Product, w), nil
}

// submit hands the record to the submitter while holding the session's submit lock.
// The session is saved as submitting before the submitter runs so that other requests
// on the flow see the pending submission. An accepted submission ends the flow; a
// rejected one keeps it for a retry.
func (s *quoteFlowService) submit(ctx context.Context, session *Session, w *wizard.Wizard,
	req ActionRequest) (*FlowResponse, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, serviceLoggerComponentName),
		log.String(log.LoggerKeyFlowID, session.FlowID))

	acquired, err := s.store.TryBeginSubmit(ctx, session.FlowID)
	if err != nil {
		logger.Error("Failed to acquire submit lock", log.Error(err))
		return nil, &ErrorInternalServerError
	}
	if !acquired {
		metrics.WizardActions.WithLabelValues(session.Product, ActionSubmit, resultInvalid).Inc()
		return nil, &ErrorSubmissionInProgress
	}
	release := func() {
		if err := s.store.EndSubmit(context.WithoutCancel(ctx), session.FlowID); err != nil {
			logger.Error("Failed to release submit lock", log.Error(err))
		}
	}

	if w.State().SubmissionStatus == wizard.StatusSubmitting {
		// The lock went stale while the session still says submitting.
		logger.Warn("Resuming quote flow left in submitting state")
		state := w.State()
		state.SubmissionStatus = wizard.StatusIdle
		if w, err = wizard.Restore(w.Definition(), state, s.submitter); err != nil {
			release()
			logger.Error("Failed to restore wizard", log.Error(err))
			return nil, &ErrorInternalServerError
		}
	}
	if svcErr := applyInputs(w, req); svcErr != nil {
		release()
		metrics.WizardActions.WithLabelValues(session.Product, ActionSubmit, resultInvalid).Inc()
		return nil, svcErr
	}
	if !w.IsFinalStep() {
		release()
		metrics.WizardActions.WithLabelValues(session.Product, ActionSubmit, resultInvalid).Inc()
		return nil, &ErrorNotFinalStep
	}

	pending := *session
	pending.State = w.State()
	pending.State.SubmissionStatus = wizard.StatusSubmitting
	if err := s.store.Update(ctx, pending); err != nil {
		release()
		if errors.Is(err, ErrSessionNotFound) {
			return nil, &ErrorFlowNotFound
		}
		logger.Error("Failed to mark quote flow as submitting", log.Error(err))
		return nil, &ErrorInternalServerError
	}

	_, submitErr := w.Submit(ctx)
	if submitErr == nil {
		if err := s.store.Delete(ctx, session.FlowID); err != nil {
			logger.Error("Failed to delete submitted quote flow", log.Error(err))
		}
		metrics.WizardActions.WithLabelValues(session.Product, ActionSubmit, resultOK).Inc()
		logger.Info("Submitted quote flow", log.String("referenceNumber", w.State().ReferenceNumber))
		return buildResponse(session.FlowID, session.Product, w), nil
	}

	result := resultFailed
	var validationErr *wizard.ValidationError
	if errors.As(submitErr, &validationErr) {
		result = resultInvalid
	} else {
		logger.Warn("Quote flow submission failed", log.Error(submitErr))
	}
	svcErr := s.save(context.WithoutCancel(ctx), session, w)
	release()
	if svcErr != nil {
		return nil, svcErr
	}
	metrics.WizardActions.WithLabelValues(session.Product, ActionSubmit, result).Inc()
	return buildResponse(session.FlowID, session.Product, w), nil
}

func (s *quoteFlowService) load(ctx context.Context, flowID string) (*Session, *wizard.Wizard,
	*serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, serviceLoggerComponentName),
		log.String(log.LoggerKeyFlowID, flowID))

	if flowID == "" {
		return nil, nil, &ErrorFlowNotFound
	}
	session, err := s.store.Get(ctx, flowID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, nil, &ErrorFlowNotFound
		}
		logger.Error("Failed to load quote flow session", log.Error(err))
		return nil, nil, &ErrorInternalServerError
	}
	p, ok := product.Get(product.Type(session.Product))
	if !ok {
		logger.Error("Quote flow session refers to an unknown product", log.String(log.LoggerKeyProduct, session.Product))
		return nil, nil, &ErrorInternalServerError
	}
	w, err := wizard.Restore(p.Definition(), session.State, s.submitter)
	if err != nil {
		logger.Error("Failed to restore wizard", log.Error(err))
		return nil, nil, &ErrorInternalServerError
	}
	return session, w, nil
}

func (s *quoteFlowService) save(ctx context.Context, session *Session, w *wizard.Wizard) *serviceerror.ServiceError {
	session.State = w.State()
	session.ExpiresAt = s.now().UTC().Add(s.ttl)
	if err := s.store.Update(ctx, *session); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return &ErrorFlowNotFound
		}
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, serviceLoggerComponentName)).
			Error("Failed to save quote flow session", log.String(log.LoggerKeyFlowID, session.FlowID), log.Error(err))
		return &ErrorInternalServerError
	}
	return nil
}

func applyInputs(w *wizard.Wizard, req ActionRequest) *serviceerror.ServiceError {
	for name, value := range req.Inputs {
		if err := w.SetField(name, value); err != nil {
			return inputError(err, name)
		}
	}
	for _, ref := range req.Attachments {
		if err := w.AddAttachment(ref); err != nil {
			return inputError(err, "")
		}
	}
	return nil
}

func inputError(err error, name string) *serviceerror.ServiceError {
	switch {
	case errors.Is(err, wizard.ErrUnknownField):
		return serviceerror.CustomServiceError(ErrorUnknownField, "The form has no field named "+name)
	case errors.Is(err, wizard.ErrSubmissionInProgress), errors.Is(err, wizard.ErrAlreadySubmitted):
		return &ErrorSubmissionInProgress
	default:
		return serviceerror.CustomServiceError(ErrorInvalidRequestFormat, err.Error())
	}
}

func buildResponse(flowID, productType string, w *wizard.Wizard) *FlowResponse {
	state := w.State()
	view := StepView{Number: state.CurrentStep, Fields: w.VisibleFields(state.CurrentStep)}
	if st, ok := w.Definition().Step(state.CurrentStep); ok {
		view.Title = st.Title
	}
	return &FlowResponse{
		FlowID:          flowID,
		Product:         productType,
		CurrentStep:     state.CurrentStep,
		TotalSteps:      state.TotalSteps,
		IsFinalStep:     w.IsFinalStep(),
		Step:            view,
		Record:          state.Record,
		Status:          string(state.SubmissionStatus),
		ReferenceNumber: state.ReferenceNumber,
		Errors:          state.Errors,
		FailureMessage:  state.FailureMessage,
	}
}
