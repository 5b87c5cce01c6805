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

package submission

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/casurance/intake/internal/product"
	"github.com/casurance/intake/internal/system/config"
	"github.com/casurance/intake/internal/system/error/serviceerror"
	"github.com/casurance/intake/internal/system/log"
	"github.com/casurance/intake/internal/system/metrics"
	"github.com/casurance/intake/internal/wizard"
)

const serviceLoggerComponentName = "SubmissionService"

// SubmissionServiceInterface defines the operations on stored submissions.
type SubmissionServiceInterface interface {
	CreateSubmission(req NewSubmission) (Submission, *serviceerror.ServiceError)
	ListSubmissions(filter Filter) ([]Submission, *serviceerror.ServiceError)
	ListNormalizedSubmissions(filter Filter) ([]NormalizedSubmission, *serviceerror.ServiceError)
	UpdateStatus(submissionType, id string, req StatusUpdateRequest) (Submission, *serviceerror.ServiceError)
	MarkRead(submissionType, id string) (Submission, *serviceerror.ServiceError)
	ExportSubmissions(filter Filter) ([]byte, string, *serviceerror.ServiceError)
}

// submissionService is the default implementation of SubmissionServiceInterface.
type submissionService struct {
	store submissionStoreInterface
	now   func() time.Time
}

// newSubmissionService creates a new instance of submissionService.
func newSubmissionService(store submissionStoreInterface) SubmissionServiceInterface {
	return &submissionService{
		store: store,
		now:   time.Now,
	}
}

// NewReferenceNumber returns a reference number of the form CAS-YYYYMMDD-XXXXXX.
func NewReferenceNumber(t time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return "CAS-" + t.UTC().Format("20060102") + "-" + suffix
}

// CreateSubmission persists a validated record into its product table.
func (s *submissionService) CreateSubmission(req NewSubmission) (Submission, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, serviceLoggerComponentName),
		log.String(log.LoggerKeyProduct, req.ProductType))

	p, ok := product.Get(product.Type(req.ProductType))
	if !ok {
		return nil, &ErrorInvalidSubmissionType
	}

	payload, err := json.Marshal(map[string]any(req.Record))
	if err != nil {
		logger.Error("Failed to encode submission payload", log.Error(err))
		return nil, &ErrorInternalServerError
	}
	attachments := "[]"
	if len(req.Attachments) > 0 {
		raw, err := json.Marshal(req.Attachments)
		if err != nil {
			logger.Error("Failed to encode attachments", log.Error(err))
			return nil, &ErrorInternalServerError
		}
		attachments = string(raw)
	}

	now := s.now().UTC()
	timestamp := now.Format(time.RFC3339)
	insuranceType := req.InsuranceType
	if insuranceType == "" {
		insuranceType = p.InsuranceType(req.Record)
	}
	row := storedSubmission{
		ID:              uuid.NewString(),
		ReferenceNumber: NewReferenceNumber(now),
		SubmissionType:  p.SubmissionType,
		InsuranceType:   insuranceType,
		ContactName:     recordString(req.Record, p.ContactNameField),
		Email:           recordString(req.Record, p.EmailField),
		Phone:           recordString(req.Record, p.PhoneField),
		City:            recordString(req.Record, p.CityField),
		State:           recordString(req.Record, p.StateField),
		Status:          StoredStatusNew,
		Payload:         string(payload),
		Attachments:     attachments,
		CreatedAt:       timestamp,
		UpdatedAt:       timestamp,
	}
	if err := s.store.CreateSubmission(p.Table, row); err != nil {
		logger.Error("Failed to store submission", log.Error(err))
		return nil, &ErrorInternalServerError
	}

	sub, err := buildSubmissionFromResultRow(map[string]interface{}{
		"id": row.ID, "reference_number": row.ReferenceNumber, "submission_type": row.SubmissionType,
		"insurance_type": row.InsuranceType, "contact_name": row.ContactName, "email": row.Email,
		"phone": row.Phone, "city": row.City, "state": row.State, "status": row.Status,
		"payload": row.Payload, "attachments": row.Attachments, "created_at": row.CreatedAt,
		"updated_at": row.UpdatedAt,
	})
	if err != nil {
		logger.Error("Failed to build stored submission", log.Error(err))
		return nil, &ErrorInternalServerError
	}

	logger.Debug("Stored submission", log.String(log.LoggerKeySubmissionID, row.ID),
		log.String("referenceNumber", row.ReferenceNumber))
	return sub, nil
}

// ListSubmissions returns the submissions of every table the filter covers, newest first.
func (s *submissionService) ListSubmissions(filter Filter) ([]Submission, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, serviceLoggerComponentName))

	products, ok := productsFor(filter.Type)
	if !ok {
		return nil, &ErrorInvalidSubmissionType
	}

	all := make([]Submission, 0)
	for _, p := range products {
		subs, err := s.store.ListSubmissions(p.Table, filter.Search)
		if err != nil {
			logger.Error("Failed to list submissions", log.String("table", p.Table), log.Error(err))
			return nil, &ErrorInternalServerError
		}
		all = append(all, subs...)
	}
	sortNewestFirst(all)
	return all, nil
}

// ListNormalizedSubmissions lists, normalizes and applies the search term to the display fields.
func (s *submissionService) ListNormalizedSubmissions(filter Filter) ([]NormalizedSubmission, *serviceerror.ServiceError) {
	subs, svcErr := s.ListSubmissions(filter)
	if svcErr != nil {
		return nil, svcErr
	}
	return FilterBySearch(NormalizeAll(subs, portalLocation()), filter.Search), nil
}

// UpdateStatus changes the stored status of a submission and returns the updated submission.
func (s *submissionService) UpdateStatus(submissionType, id string,
	req StatusUpdateRequest) (Submission, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, serviceLoggerComponentName),
		log.String(log.LoggerKeySubmissionID, id))

	if strings.TrimSpace(submissionType) == "" || strings.TrimSpace(id) == "" {
		return nil, &ErrorMissingSubmissionID
	}
	p, ok := resolveProduct(submissionType)
	if !ok {
		return nil, &ErrorInvalidSubmissionType
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if !storedStatuses[status] {
		return nil, &ErrorInvalidStatus
	}

	err := s.store.UpdateSubmissionStatus(p.Table, id, status, strings.TrimSpace(req.Notes),
		s.now().UTC().Format(time.RFC3339))
	if err != nil {
		if errors.Is(err, ErrSubmissionNotFound) {
			return nil, &ErrorSubmissionNotFound
		}
		logger.Error("Failed to update submission status", log.Error(err))
		return nil, &ErrorInternalServerError
	}
	metrics.AgentStatusUpdates.WithLabelValues(p.SubmissionType, status).Inc()

	sub, err := s.store.GetSubmission(p.Table, id)
	if err != nil {
		if errors.Is(err, ErrSubmissionNotFound) {
			return nil, &ErrorSubmissionNotFound
		}
		logger.Error("Failed to load updated submission", log.Error(err))
		return nil, &ErrorInternalServerError
	}
	logger.Debug("Updated submission status", log.String("status", status))
	return sub, nil
}

// MarkRead transitions a submission to read.
func (s *submissionService) MarkRead(submissionType, id string) (Submission, *serviceerror.ServiceError) {
	return s.UpdateStatus(submissionType, id, StatusUpdateRequest{Status: StoredStatusRead})
}

// ExportSubmissions renders the filtered submissions as CSV along with the download file name.
func (s *submissionService) ExportSubmissions(filter Filter) ([]byte, string, *serviceerror.ServiceError) {
	records, svcErr := s.ListNormalizedSubmissions(filter)
	if svcErr != nil {
		return nil, "", svcErr
	}
	data, err := ExportCSV(records)
	if err != nil {
		if errors.Is(err, ErrNoData) {
			return nil, "", &ErrorNoData
		}
		return nil, "", &ErrorInternalServerError
	}
	return data, ExportFileName(s.now().In(portalLocation())), nil
}

func resolveProduct(submissionType string) (*product.Product, bool) {
	if p, ok := product.GetBySubmissionType(submissionType); ok {
		return p, true
	}
	return product.GetBySlug(submissionType)
}

func recordString(record wizard.FormRecord, key string) string {
	if key == "" {
		return ""
	}
	return strings.TrimSpace(stringValue(record[key]))
}

func sortNewestFirst(subs []Submission) {
	keys := make([]time.Time, len(subs))
	for i, s := range subs {
		keys[i] = parseTimestamp(stringValue(s[KeyCreatedAt]))
	}
	idx := make([]int, len(subs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return keys[idx[a]].After(keys[idx[b]]) })
	sorted := make([]Submission, len(subs))
	for i, j := range idx {
		sorted[i] = subs[j]
	}
	copy(subs, sorted)
}

func parseTimestamp(raw string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(raw)); err == nil {
			return t
		}
	}
	return time.Time{}
}

// portalLocation is the time zone agents read dates in.
func portalLocation() *time.Location {
	if !config.IsRuntimeInitialized() {
		return time.UTC
	}
	loc, err := time.LoadLocation(config.GetRuntime().Config.Portal.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
