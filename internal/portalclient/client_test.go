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

package portalclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/casurance/intake/internal/submission"
	"github.com/casurance/intake/internal/system/error/apierror"
	syshttp "github.com/casurance/intake/internal/system/http"
	"github.com/casurance/intake/internal/wizard"
)

type ClientTestSuite struct {
	suite.Suite
	mu       sync.Mutex
	requests []*http.Request
	bodies   []string
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (suite *ClientTestSuite) SetupTest() {
	suite.requests = nil
	suite.bodies = nil
}

func (suite *ClientTestSuite) serve(h http.HandlerFunc) *Client {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		suite.mu.Lock()
		suite.requests = append(suite.requests, r.Clone(context.Background()))
		suite.bodies = append(suite.bodies, string(body))
		suite.mu.Unlock()
		h(w, r)
	}))
	suite.T().Cleanup(srv.Close)
	return New(srv.URL+"/", WithToken("tkn"), WithHTTPClient(syshttp.NewHTTPClientWithConfig(srv.Client())))
}

func writeBody(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (suite *ClientTestSuite) TestFetchAllSendsFilterAndToken() {
	c := suite.serve(func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusOK, submission.ListResponse{Submissions: []submission.Submission{
			{"id": "1", "submissionType": "hotel"},
		}})
	})

	subs, err := c.FetchAll(context.Background(), submission.Filter{Type: "hotel", Search: "main st"})

	suite.Require().NoError(err)
	suite.Len(subs, 1)
	suite.Require().Len(suite.requests, 1)
	req := suite.requests[0]
	suite.Equal("/api/agent/submissions", req.URL.Path)
	suite.Equal("hotel", req.URL.Query().Get("type"))
	suite.Equal("main st", req.URL.Query().Get("search"))
	suite.Equal("Bearer tkn", req.Header.Get("Authorization"))
}

func (suite *ClientTestSuite) TestFetchAllEmptyList() {
	c := suite.serve(func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusOK, map[string]any{})
	})

	subs, err := c.FetchAll(context.Background(), submission.Filter{})

	suite.Require().NoError(err)
	suite.NotNil(subs)
	suite.Empty(subs)
	suite.Empty(suite.requests[0].URL.RawQuery)
}

func (suite *ClientTestSuite) TestFetchAllReturnsAPIError() {
	c := suite.serve(func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusUnauthorized, apierror.ErrorResponse{
			Code: "AGT-1001", Message: "Unauthorized", Description: "missing token",
		})
	})

	_, err := c.FetchAll(context.Background(), submission.Filter{})

	var apiErr *APIError
	suite.Require().True(errors.As(err, &apiErr))
	suite.Equal(http.StatusUnauthorized, apiErr.StatusCode)
	suite.Equal("AGT-1001", apiErr.Code)
	suite.Contains(apiErr.Error(), "Unauthorized")
}

func (suite *ClientTestSuite) TestFetchNormalized() {
	c := suite.serve(func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusOK, submission.NormalizedListResponse{Submissions: []submission.NormalizedSubmission{
			{ID: "7", FormName: "Hotel Insurance"},
		}})
	})

	subs, err := c.FetchNormalized(context.Background(), submission.Filter{Search: "hotel"})

	suite.Require().NoError(err)
	suite.Require().Len(subs, 1)
	suite.Equal("7", subs[0].ID)
	suite.Equal("/api/agent/submissions/normalized", suite.requests[0].URL.Path)
}

func (suite *ClientTestSuite) TestMarkReadRefetches() {
	c := suite.serve(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			writeBody(w, http.StatusOK, submission.Submission{"id": "3", "status": "read"})
			return
		}
		writeBody(w, http.StatusOK, submission.ListResponse{Submissions: []submission.Submission{
			{"id": "3", "status": "read"},
		}})
	})

	subs, err := c.MarkRead(context.Background(), "hotel", "3", submission.Filter{Type: "hotel"})

	suite.Require().NoError(err)
	suite.Equal("read", subs[0]["status"])
	suite.Require().Len(suite.requests, 2)
	suite.Equal(http.MethodPatch, suite.requests[0].Method)
	suite.Equal("/api/agent/submissions/hotel/3/read", suite.requests[0].URL.Path)
	suite.Equal(http.MethodGet, suite.requests[1].Method)
	suite.Equal("hotel", suite.requests[1].URL.Query().Get("type"))
}

func (suite *ClientTestSuite) TestMarkReadFailureSkipsRefetch() {
	c := suite.serve(func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusNotFound, apierror.ErrorResponse{Code: "SUB-1003", Message: "Submission not found"})
	})

	_, err := c.MarkRead(context.Background(), "hotel", "99", submission.Filter{})

	suite.Error(err)
	suite.Len(suite.requests, 1)
}

func (suite *ClientTestSuite) TestUpdateStatus() {
	c := suite.serve(func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusOK, submission.Submission{"id": "3", "status": "quoted"})
	})

	sub, err := c.UpdateStatus(context.Background(), "hotel", "3",
		submission.StatusUpdateRequest{Status: "quoted", Notes: "sent"})

	suite.Require().NoError(err)
	suite.Equal("quoted", sub["status"])
	suite.Equal("/api/agent/submissions/hotel/3/status", suite.requests[0].URL.Path)
	suite.JSONEq(`{"status":"quoted","notes":"sent"}`, suite.bodies[0])
}

func (suite *ClientTestSuite) TestExport() {
	c := suite.serve(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="submissions-2025-01-02.csv"`)
		_, _ = w.Write([]byte("\"id\"\n\"1\""))
	})

	data, name, err := c.Export(context.Background(), submission.Filter{Type: "quote"})

	suite.Require().NoError(err)
	suite.Equal("submissions-2025-01-02.csv", name)
	suite.Equal("\"id\"\n\"1\"", string(data))
	suite.Equal("/api/agent/submissions/export", suite.requests[0].URL.Path)
}

func (suite *ClientTestSuite) TestSubmitPostsRecordAndPayload() {
	c := suite.serve(func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusCreated, submission.Submission{"id": "1", "referenceNumber": "CAS-ABC12345"})
	})

	res, err := c.Submit(context.Background(), wizard.SubmitRequest{
		Product:     "contact",
		Record:      wizard.FormRecord{"name": "Jo"},
		Attachments: []wizard.FileReference{{Key: "k", Name: "a.pdf", Size: 3, ContentType: "application/pdf"}},
	})

	suite.Require().NoError(err)
	suite.Equal("CAS-ABC12345", res.ReferenceNumber)
	suite.Equal(http.MethodPost, suite.requests[0].Method)
	suite.Equal("/api/contact", suite.requests[0].URL.Path)

	var sent map[string]any
	suite.Require().NoError(json.Unmarshal([]byte(suite.bodies[0]), &sent))
	suite.Equal("Jo", sent["name"])
	suite.Equal(map[string]any{"name": "Jo"}, sent["payload"])
	suite.Len(sent["attachments"], 1)
}

func (suite *ClientTestSuite) TestSubmitQuoteResolvesSlug() {
	c := suite.serve(func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusCreated, submission.Submission{"id": "1"})
	})

	res, err := c.SubmitQuote(context.Background(), "hotel-quotes", wizard.FormRecord{"businessName": "Inn"})

	suite.Require().NoError(err)
	suite.Empty(res.ReferenceNumber)
	suite.Equal("/api/hotel-quotes", suite.requests[0].URL.Path)
}

func (suite *ClientTestSuite) TestSubmitRejectionCarriesFieldErrors() {
	c := suite.serve(func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusBadRequest, apierror.ErrorResponse{
			Code:        "QTE-1003",
			Message:     "Please correct the highlighted fields",
			FieldErrors: map[string]string{"email": "Please enter a valid email address"},
		})
	})

	_, err := c.Submit(context.Background(), wizard.SubmitRequest{Product: "contact", Record: wizard.FormRecord{}})

	var submitErr *wizard.SubmitError
	suite.Require().True(errors.As(err, &submitErr))
	suite.Equal(http.StatusBadRequest, submitErr.StatusCode)
	suite.Equal("Please correct the highlighted fields", submitErr.Message)
	suite.Equal("Please enter a valid email address", submitErr.FieldErrors["email"])
}

func (suite *ClientTestSuite) TestSubmitRejectionWithoutBody() {
	c := suite.serve(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Submit(context.Background(), wizard.SubmitRequest{Product: "contact", Record: wizard.FormRecord{}})

	var submitErr *wizard.SubmitError
	suite.Require().True(errors.As(err, &submitErr))
	suite.Equal(http.StatusBadGateway, submitErr.StatusCode)
	suite.Empty(submitErr.Message)
}

func (suite *ClientTestSuite) TestSubmitUnknownProduct() {
	c := New("http://127.0.0.1:1")

	_, err := c.Submit(context.Background(), wizard.SubmitRequest{Product: "boat"})

	suite.ErrorContains(err, "unknown product")
}

func (suite *ClientTestSuite) TestImplementsSubmitter() {
	var s wizard.Submitter = New("http://localhost")
	suite.NotNil(s)
}
