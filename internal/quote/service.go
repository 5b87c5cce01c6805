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

// Package quote receives completed product forms and turns them into stored submissions.
package quote

import (
	"context"

	"github.com/casurance/intake/internal/notification"
	"github.com/casurance/intake/internal/product"
	"github.com/casurance/intake/internal/submission"
	"github.com/casurance/intake/internal/system/error/serviceerror"
	"github.com/casurance/intake/internal/system/log"
	"github.com/casurance/intake/internal/system/metrics"
	sysutils "github.com/casurance/intake/internal/system/utils"
	"github.com/casurance/intake/internal/wizard"
)

const serviceLoggerComponentName = "QuoteService"

// QuoteServiceInterface defines the quote intake operations.
type QuoteServiceInterface interface {
	SubmitQuote(ctx context.Context, productType string, req QuoteRequest) (submission.Submission,
		*serviceerror.ServiceError)
	ListProducts(quotableOnly bool) []ProductSummary
	GetProduct(slug string) (*ProductDetail, *serviceerror.ServiceError)
}

// quoteService is the default implementation of QuoteServiceInterface.
type quoteService struct {
	submissions submission.SubmissionServiceInterface
	publisher   notification.Publisher
}

// newQuoteService creates a new instance of quoteService.
func newQuoteService(submissions submission.SubmissionServiceInterface,
	publisher notification.Publisher) QuoteServiceInterface {
	if publisher == nil {
		publisher = notification.NewNoopPublisher()
	}
	return &quoteService{
		submissions: submissions,
		publisher:   publisher,
	}
}

// SubmitQuote validates the record against the product form and stores it.
// Undeclared keys and wrongly typed values are rejected before the form rules run.
func (s *quoteService) SubmitQuote(ctx context.Context, productType string,
	req QuoteRequest) (submission.Submission, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, serviceLoggerComponentName),
		log.String(log.LoggerKeyProduct, productType))

	p, ok := product.Get(product.Type(productType))
	if !ok {
		return nil, &ErrorUnknownProduct
	}
	if len(req.Record) == 0 {
		metrics.QuoteSubmissions.WithLabelValues(productType, metrics.OutcomeInvalid).Inc()
		return nil, &ErrorEmptySubmission
	}

	record := wizard.FormRecord(sysutils.SanitizeMap(req.Record))
	if fieldErrors := p.ValidatePayload(record); fieldErrors != nil {
		metrics.QuoteSubmissions.WithLabelValues(productType, metrics.OutcomeInvalid).Inc()
		logger.Debug("Rejected submission payload", log.Int("errors", len(fieldErrors)))
		return nil, serviceerror.WithFieldErrors(ErrorValidationFailed, fieldErrors)
	}

	full, err := p.Definition().NewRecord(record)
	if err != nil {
		metrics.QuoteSubmissions.WithLabelValues(productType, metrics.OutcomeInvalid).Inc()
		return nil, serviceerror.CustomServiceError(ErrorValidationFailed, err.Error())
	}
	if result := wizard.ValidateRecord(p.Definition(), full); !result.Valid {
		metrics.QuoteSubmissions.WithLabelValues(productType, metrics.OutcomeInvalid).Inc()
		logger.Debug("Submission failed form validation", log.Int("errors", len(result.Errors)))
		return nil, serviceerror.WithFieldErrors(ErrorValidationFailed, result.Errors)
	}

	sub, svcErr := s.submissions.CreateSubmission(submission.NewSubmission{
		ProductType: string(p.Type),
		Record:      full,
		Attachments: req.Attachments,
	})
	if svcErr != nil {
		metrics.QuoteSubmissions.WithLabelValues(productType, metrics.OutcomeFailed).Inc()
		if svcErr.Type == serviceerror.ClientErrorType {
			return nil, svcErr
		}
		return nil, &ErrorInternalServerError
	}
	metrics.QuoteSubmissions.WithLabelValues(productType, metrics.OutcomeAccepted).Inc()

	event := notification.SubmissionEvent{
		SubmissionType:  stringOf(sub, submission.KeySubmissionType),
		ID:              stringOf(sub, submission.KeyID),
		ReferenceNumber: stringOf(sub, submission.KeyReferenceNumber),
		ContactName:     stringOf(sub, submission.KeyContactName),
		CreatedAt:       stringOf(sub, submission.KeyCreatedAt),
	}
	if err := s.publisher.PublishSubmissionCreated(ctx, event); err != nil {
		logger.Warn("Failed to publish submission event", log.String(log.LoggerKeySubmissionID, event.ID),
			log.Error(err))
	}

	logger.Info("Accepted submission", log.String(log.LoggerKeySubmissionID, event.ID),
		log.String("referenceNumber", event.ReferenceNumber))
	return sub, nil
}

// ListProducts describes every product accepting submissions, or only the quote
// products when quotableOnly is set.
func (s *quoteService) ListProducts(quotableOnly bool) []ProductSummary {
	products := product.List()
	if quotableOnly {
		products = product.Quotable()
	}
	out := make([]ProductSummary, 0, len(products))
	for _, p := range products {
		out = append(out, summarize(p, false))
	}
	return out
}

// GetProduct describes one product with its steps and payload schema.
func (s *quoteService) GetProduct(slug string) (*ProductDetail, *serviceerror.ServiceError) {
	p, ok := product.GetBySlug(slug)
	if !ok {
		return nil, &ErrorUnknownProduct
	}
	return &ProductDetail{
		ProductSummary: summarize(p, true),
		Schema:         p.SchemaJSON(),
	}, nil
}

func summarize(p *product.Product, withSteps bool) ProductSummary {
	def := p.Definition()
	summary := ProductSummary{
		Type:           string(p.Type),
		Path:           p.Path,
		SubmissionType: p.SubmissionType,
		FormName:       p.FormName,
		TotalSteps:     def.TotalSteps(),
	}
	if !withSteps {
		return summary
	}
	for _, st := range def.Steps {
		step := StepSummary{
			Number:      st.Number,
			Title:       st.Title,
			Conditional: st.RenderPredicate != nil,
			Fields:      make([]FieldSummary, 0, len(st.Fields)),
		}
		for _, f := range st.Fields {
			step.Fields = append(step.Fields, FieldSummary{
				Name:        f.Name,
				Label:       f.Label,
				Kind:        f.Kind,
				Required:    f.Required,
				Options:     f.Options,
				Conditional: f.VisibleWhen != nil,
			})
		}
		summary.Steps = append(summary.Steps, step)
	}
	return summary
}

func stringOf(sub submission.Submission, key string) string {
	v, _ := sub[key].(string)
	return v
}
