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

package quoteflow

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/casurance/intake/internal/wizard"
)

type QuoteFlowServiceTestSuite struct {
	suite.Suite
	store     *memStore
	calls     atomic.Int32
	submitErr error
	service   QuoteFlowServiceInterface
}

func TestQuoteFlowServiceSuite(t *testing.T) {
	suite.Run(t, new(QuoteFlowServiceTestSuite))
}

func (suite *QuoteFlowServiceTestSuite) SetupTest() {
	suite.store = newMemStore()
	suite.calls.Store(0)
	suite.submitErr = nil
	submitter := wizard.SubmitterFunc(func(ctx context.Context, req wizard.SubmitRequest) (wizard.SubmitResult, error) {
		suite.calls.Add(1)
		if suite.submitErr != nil {
			return wizard.SubmitResult{}, suite.submitErr
		}
		return wizard.SubmitResult{ReferenceNumber: "CAS-20240309-ABC123"}, nil
	})
	suite.service = newQuoteFlowService(suite.store, submitter, time.Hour)
}

func validContactInputs() map[string]any {
	return map[string]any{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"message": "Please call me about a policy",
	}
}

func (suite *QuoteFlowServiceTestSuite) start(slug string) *FlowResponse {
	flow, svcErr := suite.service.Start(context.Background(), slug)
	require.Nil(suite.T(), svcErr)
	return flow
}

func (suite *QuoteFlowServiceTestSuite) TestStart() {
	flow := suite.start("quick-quotes")

	assert.NotEmpty(suite.T(), flow.FlowID)
	assert.Equal(suite.T(), "quick-quote", flow.Product)
	assert.Equal(suite.T(), 1, flow.CurrentStep)
	assert.Equal(suite.T(), 2, flow.TotalSteps)
	assert.Equal(suite.T(), "idle", flow.Status)
	assert.Equal(suite.T(), "Coverage", flow.Step.Title)
	assert.Contains(suite.T(), flow.Record, "consent")
	for _, f := range flow.Step.Fields {
		assert.NotEqual(suite.T(), "insuranceTypeOther", f.Name)
	}

	_, svcErr := suite.service.Start(context.Background(), "boat")
	require.NotNil(suite.T(), svcErr)
	assert.Equal(suite.T(), ErrorUnknownProduct.Code, svcErr.Code)
}

func (suite *QuoteFlowServiceTestSuite) TestAdvanceIsGatedOnValidation() {
	flow := suite.start("quick-quote")

	next, svcErr := suite.service.Execute(context.Background(), flow.FlowID, ActionRequest{Action: ActionAdvance})

	require.Nil(suite.T(), svcErr)
	assert.Equal(suite.T(), 1, next.CurrentStep)
	assert.Contains(suite.T(), next.Errors, "insuranceType")
	assert.Contains(suite.T(), next.Errors, "zip")
}

func (suite *QuoteFlowServiceTestSuite) TestUpdateThenAdvanceAndRetreat() {
	flow := suite.start("quick-quote")
	ctx := context.Background()

	_, svcErr := suite.service.Execute(ctx, flow.FlowID, ActionRequest{Action: ActionUpdate, Inputs: map[string]any{
		"insuranceType": "other",
	}})
	require.Nil(suite.T(), svcErr)

	got, svcErr := suite.service.Get(ctx, flow.FlowID)
	require.Nil(suite.T(), svcErr)
	assert.Equal(suite.T(), "other", got.Record["insuranceType"])
	names := make([]string, 0, len(got.Step.Fields))
	for _, f := range got.Step.Fields {
		names = append(names, f.Name)
	}
	assert.Contains(suite.T(), names, "insuranceTypeOther")

	next, svcErr := suite.service.Execute(ctx, flow.FlowID, ActionRequest{Action: ActionAdvance, Inputs: map[string]any{
		"insuranceTypeOther": "Cyber", "businessName": "Acme", "zip": "89501",
	}})
	require.Nil(suite.T(), svcErr)
	assert.Equal(suite.T(), 2, next.CurrentStep)
	assert.True(suite.T(), next.IsFinalStep)
	assert.Empty(suite.T(), next.Errors)

	back, svcErr := suite.service.Execute(ctx, flow.FlowID, ActionRequest{Action: ActionRetreat})
	require.Nil(suite.T(), svcErr)
	assert.Equal(suite.T(), 1, back.CurrentStep)
	assert.Equal(suite.T(), "Acme", back.Record["businessName"])
}

func (suite *QuoteFlowServiceTestSuite) TestUnknownFieldAndAction() {
	flow := suite.start("contact")

	_, svcErr := suite.service.Execute(context.Background(), flow.FlowID, ActionRequest{
		Action: ActionUpdate, Inputs: map[string]any{"favouriteColour": "blue"},
	})
	require.NotNil(suite.T(), svcErr)
	assert.Equal(suite.T(), ErrorUnknownField.Code, svcErr.Code)

	_, svcErr = suite.service.Execute(context.Background(), flow.FlowID, ActionRequest{Action: "jump"})
	require.NotNil(suite.T(), svcErr)
	assert.Equal(suite.T(), ErrorInvalidAction.Code, svcErr.Code)
}

func (suite *QuoteFlowServiceTestSuite) TestSubmitBeforeFinalStep() {
	flow := suite.start("quick-quote")

	_, svcErr := suite.service.Execute(context.Background(), flow.FlowID, ActionRequest{Action: ActionSubmit})

	require.NotNil(suite.T(), svcErr)
	assert.Equal(suite.T(), ErrorNotFinalStep.Code, svcErr.Code)
	assert.Zero(suite.T(), suite.calls.Load())
}

func (suite *QuoteFlowServiceTestSuite) TestSubmitValidationKeepsFlow() {
	flow := suite.start("contact")

	resp, svcErr := suite.service.Execute(context.Background(), flow.FlowID, ActionRequest{Action: ActionSubmit})

	require.Nil(suite.T(), svcErr)
	assert.Equal(suite.T(), "idle", resp.Status)
	assert.Contains(suite.T(), resp.Errors, "email")
	assert.Zero(suite.T(), suite.calls.Load())
	assert.False(suite.T(), suite.store.locked(flow.FlowID))
}

func (suite *QuoteFlowServiceTestSuite) TestSubmitSuccessEndsFlow() {
	flow := suite.start("contact")

	resp, svcErr := suite.service.Execute(context.Background(), flow.FlowID, ActionRequest{
		Action: ActionSubmit, Inputs: validContactInputs(),
	})

	require.Nil(suite.T(), svcErr)
	assert.Equal(suite.T(), "submitted", resp.Status)
	assert.Equal(suite.T(), "CAS-20240309-ABC123", resp.ReferenceNumber)
	assert.EqualValues(suite.T(), 1, suite.calls.Load())

	_, svcErr = suite.service.Get(context.Background(), flow.FlowID)
	require.NotNil(suite.T(), svcErr)
	assert.Equal(suite.T(), ErrorFlowNotFound.Code, svcErr.Code)
}

func (suite *QuoteFlowServiceTestSuite) TestSubmitFailureThenRetry() {
	flow := suite.start("contact")
	suite.submitErr = &wizard.SubmitError{StatusCode: 500, Message: "Failed to submit form. Please try again."}

	resp, svcErr := suite.service.Execute(context.Background(), flow.FlowID, ActionRequest{
		Action: ActionSubmit, Inputs: validContactInputs(),
	})
	require.Nil(suite.T(), svcErr)
	assert.Equal(suite.T(), "failed", resp.Status)
	assert.Equal(suite.T(), "Failed to submit form. Please try again.", resp.FailureMessage)
	assert.Equal(suite.T(), "Jane Doe", resp.Record["name"])
	assert.False(suite.T(), suite.store.locked(flow.FlowID))

	suite.submitErr = nil
	resp, svcErr = suite.service.Execute(context.Background(), flow.FlowID, ActionRequest{Action: ActionSubmit})
	require.Nil(suite.T(), svcErr)
	assert.Equal(suite.T(), "submitted", resp.Status)
	assert.EqualValues(suite.T(), 2, suite.calls.Load())
}

func (suite *QuoteFlowServiceTestSuite) TestSubmitTransportErrorUsesGenericMessage() {
	flow := suite.start("contact")
	suite.submitErr = errors.New("dial tcp: connection refused")

	resp, svcErr := suite.service.Execute(context.Background(), flow.FlowID, ActionRequest{
		Action: ActionSubmit, Inputs: validContactInputs(),
	})

	require.Nil(suite.T(), svcErr)
	assert.Equal(suite.T(), "failed", resp.Status)
	assert.Equal(suite.T(), wizard.DefaultFailureMessage, resp.FailureMessage)
}

func (suite *QuoteFlowServiceTestSuite) TestSubmitWhileLocked() {
	flow := suite.start("contact")
	acquired, err := suite.store.TryBeginSubmit(context.Background(), flow.FlowID)
	require.NoError(suite.T(), err)
	require.True(suite.T(), acquired)

	_, svcErr := suite.service.Execute(context.Background(), flow.FlowID, ActionRequest{
		Action: ActionSubmit, Inputs: validContactInputs(),
	})

	require.NotNil(suite.T(), svcErr)
	assert.Equal(suite.T(), ErrorSubmissionInProgress.Code, svcErr.Code)
	assert.Zero(suite.T(), suite.calls.Load())
}

func (suite *QuoteFlowServiceTestSuite) TestPendingSubmitRefusesEdits() {
	entered := make(chan struct{})
	proceed := make(chan struct{})
	submitter := wizard.SubmitterFunc(func(ctx context.Context, req wizard.SubmitRequest) (wizard.SubmitResult, error) {
		close(entered)
		<-proceed
		return wizard.SubmitResult{}, &wizard.SubmitError{StatusCode: 500, Message: "Failed to submit form. Please try again."}
	})
	service := newQuoteFlowService(suite.store, submitter, time.Hour)
	ctx := context.Background()
	flow, svcErr := service.Start(ctx, "contact")
	require.Nil(suite.T(), svcErr)

	done := make(chan *FlowResponse, 1)
	go func() {
		resp, _ := service.Execute(ctx, flow.FlowID, ActionRequest{Action: ActionSubmit, Inputs: validContactInputs()})
		done <- resp
	}()
	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		suite.FailNow("submitter was not called")
	}

	got, svcErr := service.Get(ctx, flow.FlowID)
	require.Nil(suite.T(), svcErr)
	assert.Equal(suite.T(), "submitting", got.Status)

	for _, action := range []string{ActionUpdate, ActionAdvance, ActionRetreat} {
		_, svcErr = service.Execute(ctx, flow.FlowID, ActionRequest{
			Action: action, Inputs: map[string]any{"message": "Edited while submitting"},
		})
		require.NotNil(suite.T(), svcErr, action)
		assert.Equal(suite.T(), ErrorSubmissionInProgress.Code, svcErr.Code, action)
	}
	_, svcErr = service.Execute(ctx, flow.FlowID, ActionRequest{Action: ActionUpdate})
	require.NotNil(suite.T(), svcErr)
	assert.Equal(suite.T(), ErrorSubmissionInProgress.Code, svcErr.Code)

	close(proceed)
	resp := <-done
	require.NotNil(suite.T(), resp)
	assert.Equal(suite.T(), "failed", resp.Status)
	assert.Equal(suite.T(), "Please call me about a policy", resp.Record["message"])

	got, svcErr = service.Get(ctx, flow.FlowID)
	require.Nil(suite.T(), svcErr)
	assert.Equal(suite.T(), "failed", got.Status)
	assert.Equal(suite.T(), "Please call me about a policy", got.Record["message"])
	assert.False(suite.T(), suite.store.locked(flow.FlowID))

	_, svcErr = service.Execute(ctx, flow.FlowID, ActionRequest{
		Action: ActionUpdate, Inputs: map[string]any{"message": "Edited after the failure"},
	})
	assert.Nil(suite.T(), svcErr)
}

func (suite *QuoteFlowServiceTestSuite) TestSubmitResumesStaleSubmittingState() {
	flow := suite.start("contact")
	ctx := context.Background()
	session, err := suite.store.Get(ctx, flow.FlowID)
	require.NoError(suite.T(), err)
	for name, value := range validContactInputs() {
		session.State.Record[name] = value
	}
	session.State.SubmissionStatus = wizard.StatusSubmitting
	require.NoError(suite.T(), suite.store.Update(ctx, *session))

	_, svcErr := suite.service.Execute(ctx, flow.FlowID, ActionRequest{Action: ActionAdvance})
	require.NotNil(suite.T(), svcErr)
	assert.Equal(suite.T(), ErrorSubmissionInProgress.Code, svcErr.Code)

	resp, svcErr := suite.service.Execute(ctx, flow.FlowID, ActionRequest{Action: ActionSubmit})
	require.Nil(suite.T(), svcErr)
	assert.Equal(suite.T(), "submitted", resp.Status)
	assert.EqualValues(suite.T(), 1, suite.calls.Load())
}

func (suite *QuoteFlowServiceTestSuite) TestUnknownFlow() {
	_, svcErr := suite.service.Get(context.Background(), "missing")
	require.NotNil(suite.T(), svcErr)
	assert.Equal(suite.T(), ErrorFlowNotFound.Code, svcErr.Code)

	_, svcErr = suite.service.Execute(context.Background(), "missing", ActionRequest{Action: ActionAdvance})
	require.NotNil(suite.T(), svcErr)
	assert.Equal(suite.T(), ErrorFlowNotFound.Code, svcErr.Code)
}
