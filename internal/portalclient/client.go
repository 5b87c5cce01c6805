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

// Package portalclient talks to the intake API over HTTP on behalf of agents and form front ends.
package portalclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/casurance/intake/internal/product"
	"github.com/casurance/intake/internal/submission"
	serverconst "github.com/casurance/intake/internal/system/constants"
	"github.com/casurance/intake/internal/system/error/apierror"
	syshttp "github.com/casurance/intake/internal/system/http"
	"github.com/casurance/intake/internal/system/log"
	"github.com/casurance/intake/internal/wizard"
)

const loggerComponentName = "PortalClient"

// maxResponseBytes bounds every response body read by the client.
const maxResponseBytes = 32 << 20

// APIError is returned when the API answers with a non success status.
type APIError struct {
	StatusCode  int
	Code        string
	Message     string
	Description string
	FieldErrors map[string]string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}

// Client is an intake API client. Agent endpoints need a bearer token.
type Client struct {
	baseURL    string
	token      string
	httpClient syshttp.HTTPClientInterface
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the agent bearer token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient replaces the shared HTTP client.
func WithHTTPClient(httpClient syshttp.HTTPClientInterface) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a client for the API served at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: syshttp.GetHTTPClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchAll returns the stored submissions, newest first.
func (c *Client) FetchAll(ctx context.Context, filter submission.Filter) ([]submission.Submission, error) {
	var body submission.ListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/agent/submissions"+filterQuery(filter), nil, &body); err != nil {
		return nil, err
	}
	if body.Submissions == nil {
		body.Submissions = []submission.Submission{}
	}
	return body.Submissions, nil
}

// FetchNormalized returns the normalized submissions with the search applied to the display fields.
func (c *Client) FetchNormalized(ctx context.Context,
	filter submission.Filter) ([]submission.NormalizedSubmission, error) {
	var body submission.NormalizedListResponse
	path := "/api/agent/submissions/normalized" + filterQuery(filter)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &body); err != nil {
		return nil, err
	}
	if body.Submissions == nil {
		body.Submissions = []submission.NormalizedSubmission{}
	}
	return body.Submissions, nil
}

// MarkRead marks one submission read and then refetches the list with the given filter.
// Nothing is updated locally: the returned list is whatever the server holds after the update.
func (c *Client) MarkRead(ctx context.Context, submissionType, id string,
	filter submission.Filter) ([]submission.Submission, error) {
	path := "/api/agent/submissions/" + url.PathEscape(submissionType) + "/" + url.PathEscape(id) + "/read"
	if err := c.doJSON(ctx, http.MethodPatch, path, nil, nil); err != nil {
		return nil, err
	}
	return c.FetchAll(ctx, filter)
}

// UpdateStatus sets the stored status of one submission.
func (c *Client) UpdateStatus(ctx context.Context, submissionType, id string,
	req submission.StatusUpdateRequest) (submission.Submission, error) {
	path := "/api/agent/submissions/" + url.PathEscape(submissionType) + "/" + url.PathEscape(id) + "/status"
	var sub submission.Submission
	if err := c.doJSON(ctx, http.MethodPatch, path, req, &sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Export downloads the CSV export and the file name the server suggested.
func (c *Client) Export(ctx context.Context, filter submission.Filter) ([]byte, string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/agent/submissions/export"+filterQuery(filter), nil)
	if err != nil {
		return nil, "", err
	}
	defer closeBody(resp)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read export: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", apiError(resp.StatusCode, data)
	}
	fileName := ""
	if _, params, err := mime.ParseMediaType(resp.Header.Get(serverconst.ContentDispositionHeaderName)); err == nil {
		fileName = params["filename"]
	}
	return data, fileName, nil
}

// Submit posts a completed record to its product endpoint. It implements wizard.Submitter.
// The record travels both as top level fields and as a "payload" duplicate.
// A rejection is returned as a *wizard.SubmitError carrying the server's message and field errors.
func (c *Client) Submit(ctx context.Context, req wizard.SubmitRequest) (wizard.SubmitResult, error) {
	p, ok := product.Get(product.Type(req.Product))
	if !ok {
		if p, ok = product.GetBySlug(req.Product); !ok {
			return wizard.SubmitResult{}, fmt.Errorf("unknown product %q", req.Product)
		}
	}

	body := make(map[string]any, len(req.Record)+2)
	for k, v := range req.Record {
		body[k] = v
	}
	body["payload"] = req.Record
	if len(req.Attachments) > 0 {
		body["attachments"] = req.Attachments
	}

	resp, err := c.do(ctx, http.MethodPost, p.Path, body)
	if err != nil {
		return wizard.SubmitResult{}, err
	}
	defer closeBody(resp)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return wizard.SubmitResult{}, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		submitErr := &wizard.SubmitError{StatusCode: resp.StatusCode}
		var errResp apierror.ErrorResponse
		if json.Unmarshal(data, &errResp) == nil {
			submitErr.Message = errResp.Message
			submitErr.FieldErrors = errResp.FieldErrors
		}
		return wizard.SubmitResult{}, submitErr
	}

	var created map[string]any
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &created); err != nil {
			log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
				Debug("Submission response is not JSON", log.Error(err))
		}
	}
	ref, _ := created[submission.KeyReferenceNumber].(string)
	return wizard.SubmitResult{ReferenceNumber: ref}, nil
}

// SubmitQuote posts a record for the given product.
func (c *Client) SubmitQuote(ctx context.Context, productType string,
	record wizard.FormRecord) (wizard.SubmitResult, error) {
	return c.Submit(ctx, wizard.SubmitRequest{Product: productType, Record: record})
}

func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any) error {
	resp, err := c.do(ctx, method, path, in)
	if err != nil {
		return err
	}
	defer closeBody(resp)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in any) (*http.Response, error) {
	var reader io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set(serverconst.AcceptHeaderName, serverconst.ContentTypeJSON)
	if in != nil {
		req.Header.Set(serverconst.ContentTypeHeaderName, serverconst.ContentTypeJSON)
	}
	if c.token != "" {
		req.Header.Set(serverconst.AuthorizationHeaderName, serverconst.TokenTypeBearer+" "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

func apiError(statusCode int, data []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	var errResp apierror.ErrorResponse
	if json.Unmarshal(data, &errResp) == nil {
		apiErr.Code = errResp.Code
		apiErr.Message = errResp.Message
		apiErr.Description = errResp.Description
		apiErr.FieldErrors = errResp.FieldErrors
	}
	return apiErr
}

func filterQuery(filter submission.Filter) string {
	values := url.Values{}
	if t := strings.TrimSpace(filter.Type); t != "" {
		values.Set("type", t)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		values.Set("search", s)
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

func closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Debug("Failed to close response body", log.Error(err))
	}
}
