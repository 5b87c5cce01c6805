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
	"fmt"
	"strings"
	"time"

	"github.com/casurance/intake/internal/product"
	"github.com/casurance/intake/internal/system/database/provider"
)

// submissionStoreInterface defines the persistence operations on the product tables.
type submissionStoreInterface interface {
	CreateSubmission(table string, row storedSubmission) error
	ListSubmissions(table, search string) ([]Submission, error)
	GetSubmission(table, id string) (Submission, error)
	UpdateSubmissionStatus(table, id, status, notes, updatedAt string) error
}

// submissionStore is the default implementation of submissionStoreInterface.
type submissionStore struct {
	dbProvider provider.DBProviderInterface
}

// newSubmissionStore creates a new instance of submissionStore.
func newSubmissionStore() submissionStoreInterface {
	return &submissionStore{
		dbProvider: provider.GetDBProvider(),
	}
}

// CreateSubmission inserts a submission row.
func (s *submissionStore) CreateSubmission(table string, row storedSubmission) error {
	dbClient, err := s.dbProvider.GetDBClient(provider.IntakeDB)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	_, err = dbClient.Execute(queryInsertSubmission(table),
		row.ID, row.ReferenceNumber, row.SubmissionType, row.InsuranceType, row.ContactName,
		row.Email, row.Phone, row.City, row.State, row.Status, row.Notes, row.Payload,
		row.Attachments, row.CreatedAt, row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	return nil
}

// ListSubmissions returns the rows of a table, newest first.
// A non blank search restricts them to rows whose payload, reference number or contact name contain it.
func (s *submissionStore) ListSubmissions(table, search string) ([]Submission, error) {
	dbClient, err := s.dbProvider.GetDBClient(provider.IntakeDB)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	var results []map[string]interface{}
	search = strings.TrimSpace(search)
	if search == "" {
		results, err = dbClient.Query(queryListSubmissions(table))
	} else {
		results, err = dbClient.Query(querySearchSubmissions(table), likePattern(search))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	subs := make([]Submission, 0, len(results))
	for _, row := range results {
		sub, err := buildSubmissionFromResultRow(row)
		if err != nil {
			return nil, fmt.Errorf("failed to build submission from %s: %w", table, err)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// GetSubmission returns one submission or ErrSubmissionNotFound.
func (s *submissionStore) GetSubmission(table, id string) (Submission, error) {
	dbClient, err := s.dbProvider.GetDBClient(provider.IntakeDB)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(queryGetSubmission(table), id)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrSubmissionNotFound
	}
	if len(results) > 1 {
		return nil, fmt.Errorf("unexpected number of results: %d", len(results))
	}
	return buildSubmissionFromResultRow(results[0])
}

// UpdateSubmissionStatus sets the status of a submission. Blank notes keep the stored notes.
func (s *submissionStore) UpdateSubmissionStatus(table, id, status, notes, updatedAt string) error {
	dbClient, err := s.dbProvider.GetDBClient(provider.IntakeDB)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	rows, err := dbClient.Execute(queryUpdateSubmissionStatus(table), status, notes, updatedAt, id)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	if rows == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}

// buildSubmissionFromResultRow merges the stored payload with the row metadata.
func buildSubmissionFromResultRow(row map[string]interface{}) (Submission, error) {
	sub := Submission{}
	if payload := stringValue(row["payload"]); payload != "" {
		if err := json.Unmarshal([]byte(payload), &sub); err != nil {
			return nil, fmt.Errorf("failed to parse payload: %w", err)
		}
	}

	id := stringValue(row["id"])
	if id == "" {
		return nil, fmt.Errorf("missing id")
	}
	sub[KeyID] = id
	sub[KeySubmissionType] = stringValue(row["submission_type"])
	sub[KeyStatus] = stringValue(row["status"])
	sub[KeyCreatedAt] = timestampValue(row["created_at"])
	sub[KeyUpdatedAt] = timestampValue(row["updated_at"])
	if ref := stringValue(row["reference_number"]); ref != "" {
		sub[KeyReferenceNumber] = ref
	}
	if it := stringValue(row["insurance_type"]); it != "" {
		sub[KeyInsuranceType] = it
	}
	if name := stringValue(row["contact_name"]); name != "" {
		sub[KeyContactName] = name
	}
	if notes := stringValue(row["notes"]); notes != "" {
		sub[KeyNotes] = notes
	}
	for _, col := range []string{"email", "phone", "city", "state"} {
		if v := stringValue(row[col]); v != "" {
			if _, ok := sub[col]; !ok {
				sub[col] = v
			}
		}
	}
	if raw := stringValue(row["attachments"]); raw != "" && raw != "null" {
		var attachments []any
		if err := json.Unmarshal([]byte(raw), &attachments); err != nil {
			return nil, fmt.Errorf("failed to parse attachments: %w", err)
		}
		if len(attachments) > 0 {
			sub[KeyAttachments] = attachments
		}
	}
	return sub, nil
}

func timestampValue(v any) string {
	if t, ok := v.(time.Time); ok {
		return t.UTC().Format(time.RFC3339)
	}
	return stringValue(v)
}

func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(term))
	return "%" + escaped + "%"
}

// productsFor returns the products whose tables a type filter covers.
func productsFor(submissionType string) ([]*product.Product, bool) {
	submissionType = strings.TrimSpace(submissionType)
	if submissionType == "" || submissionType == "all" {
		return product.List(), true
	}
	if p, ok := product.GetBySubmissionType(submissionType); ok {
		return []*product.Product{p}, true
	}
	if p, ok := product.GetBySlug(submissionType); ok {
		return []*product.Product{p}, true
	}
	return nil, false
}
