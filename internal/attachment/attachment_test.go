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

package attachment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/suite"

	"github.com/casurance/intake/internal/system/config"
	"github.com/casurance/intake/internal/system/error/apierror"
	"github.com/casurance/intake/internal/wizard"
)

type fakeUploader struct {
	keys         []string
	bodies       []string
	contentTypes []string
	err          error
}

func (f *fakeUploader) Upload(_ context.Context, key string, body io.Reader, _ int64, contentType string) error {
	if f.err != nil {
		return f.err
	}
	data, _ := io.ReadAll(body)
	f.keys = append(f.keys, key)
	f.bodies = append(f.bodies, string(data))
	f.contentTypes = append(f.contentTypes, contentType)
	return nil
}

func (f *fakeUploader) Ping(context.Context) error {
	return f.err
}

type AttachmentTestSuite struct {
	suite.Suite
	uploader *fakeUploader
	service  *attachmentService
	mux      *http.ServeMux
}

func TestAttachmentSuite(t *testing.T) {
	suite.Run(t, new(AttachmentTestSuite))
}

func (suite *AttachmentTestSuite) SetupTest() {
	suite.uploader = &fakeUploader{}
	suite.service = newAttachmentService(suite.uploader, config.AttachmentConfig{
		KeyPrefix:           "uploads",
		MaxSize:             64,
		AllowedContentTypes: []string{"application/pdf", "image/png", "text/plain"},
	})
	suite.service.now = func() time.Time { return time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC) }
	suite.mux = http.NewServeMux()
	registerRoutes(suite.mux, newAttachmentHandler(suite.service, 64), nil)
}

func (suite *AttachmentTestSuite) upload(fileName, contentType, body string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if fileName != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
		if contentType != "" {
			h.Set("Content-Type", contentType)
		}
		part, err := mw.CreatePart(h)
		suite.Require().NoError(err)
		_, _ = part.Write([]byte(body))
	} else {
		suite.Require().NoError(mw.WriteField("other", "value"))
	}
	suite.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/attachments", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	suite.mux.ServeHTTP(rec, req)
	return rec
}

func (suite *AttachmentTestSuite) TestUploadStoresFile() {
	rec := suite.upload("loss runs.pdf", "application/pdf", "%PDF-1.4 data")

	suite.Equal(http.StatusCreated, rec.Code)
	var ref wizard.FileReference
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &ref))
	suite.Equal("loss_runs.pdf", ref.Name)
	suite.Equal(int64(len("%PDF-1.4 data")), ref.Size)
	suite.Equal("application/pdf", ref.ContentType)
	suite.True(strings.HasPrefix(ref.Key, "uploads/2025/03/09/"))
	suite.True(strings.HasSuffix(ref.Key, "-loss_runs.pdf"))
	suite.Equal([]string{"%PDF-1.4 data"}, suite.uploader.bodies)
}

func (suite *AttachmentTestSuite) TestUploadSniffsGenericType() {
	rec := suite.upload("notes.bin", "application/octet-stream", "plain words only")

	suite.Equal(http.StatusCreated, rec.Code)
	suite.Equal([]string{"text/plain"}, suite.uploader.contentTypes)
	suite.Equal([]string{"plain words only"}, suite.uploader.bodies)
}

func (suite *AttachmentTestSuite) TestUploadRejectsType() {
	rec := suite.upload("run.exe", "application/x-msdownload", "MZ")

	suite.Equal(http.StatusUnsupportedMediaType, rec.Code)
	suite.Empty(suite.uploader.keys)
}

func (suite *AttachmentTestSuite) TestUploadRejectsLargeFile() {
	rec := suite.upload("big.txt", "text/plain", strings.Repeat("x", 65))

	suite.Equal(http.StatusRequestEntityTooLarge, rec.Code)
	var errResp apierror.ErrorResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &errResp))
	suite.Equal(ErrorFileTooLarge.Code, errResp.Code)
}

func (suite *AttachmentTestSuite) TestUploadRejectsEmptyFile() {
	rec := suite.upload("empty.txt", "text/plain", "")

	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *AttachmentTestSuite) TestUploadWithoutFileField() {
	rec := suite.upload("", "", "")

	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *AttachmentTestSuite) TestUploadNotMultipart() {
	req := httptest.NewRequest(http.MethodPost, "/api/attachments", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	suite.mux.ServeHTTP(rec, req)

	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *AttachmentTestSuite) TestUploaderFailure() {
	suite.uploader.err = errors.New("bucket gone")

	rec := suite.upload("a.pdf", "application/pdf", "%PDF")

	suite.Equal(http.StatusInternalServerError, rec.Code)
}

func (suite *AttachmentTestSuite) TestUploadsDisabled() {
	mux := http.NewServeMux()
	registerRoutes(mux, newAttachmentHandler(newAttachmentService(nil, config.AttachmentConfig{}), 0), nil)
	suite.mux = mux

	rec := suite.upload("a.pdf", "application/pdf", "%PDF")

	suite.Equal(http.StatusServiceUnavailable, rec.Code)
}

func TestCleanFileName(t *testing.T) {
	cases := map[string]string{
		"report.pdf":             "report.pdf",
		`C:\Users\jo\scan 1.png`: "scan_1.png",
		"../../etc/passwd":       "passwd",
		"":                       "file",
		"résumé.pdf":             "r_sum_.pdf",
		"." + strings.Repeat("a", 120) + ".pdf": strings.Repeat("a", 96) + ".pdf",
	}
	for in, want := range cases {
		if got := cleanFileName(in); got != want {
			t.Errorf("cleanFileName(%q) = %q, want %q", in, got, want)
		}
	}
}

type fakeS3 struct {
	put  *s3.PutObjectInput
	head *s3.HeadBucketInput
	err  error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput,
	_ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.put = params
	return &s3.PutObjectOutput{}, f.err
}

func (f *fakeS3) HeadBucket(_ context.Context, params *s3.HeadBucketInput,
	_ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	f.head = params
	return &s3.HeadBucketOutput{}, f.err
}

func TestS3UploaderPutsObject(t *testing.T) {
	api := &fakeS3{}
	u := &S3Uploader{client: api, bucket: "intake-files"}

	if err := u.Upload(context.Background(), "k/a.pdf", strings.NewReader("x"), 1, "application/pdf"); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if aws.ToString(api.put.Bucket) != "intake-files" || aws.ToString(api.put.Key) != "k/a.pdf" ||
		aws.ToString(api.put.ContentType) != "application/pdf" || aws.ToInt64(api.put.ContentLength) != 1 {
		t.Fatalf("unexpected put input: %+v", api.put)
	}
	if err := u.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if aws.ToString(api.head.Bucket) != "intake-files" {
		t.Fatalf("unexpected head input: %+v", api.head)
	}
}

func TestS3UploaderWrapsErrors(t *testing.T) {
	u := &S3Uploader{client: &fakeS3{err: errors.New("denied")}, bucket: "b"}

	err := u.Upload(context.Background(), "k", strings.NewReader("x"), 1, "text/plain")
	if err == nil || !strings.Contains(err.Error(), "denied") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestNewUploaderFromConfigDisabled(t *testing.T) {
	config.ResetRuntime()
	t.Cleanup(config.ResetRuntime)
	if err := config.InitializeRuntime("", &config.Config{}); err != nil {
		t.Fatal(err)
	}

	u, err := NewUploaderFromConfig(context.Background())
	if u != nil || !errors.Is(err, ErrUploadsDisabled) {
		t.Fatalf("expected disabled uploader, got %v %v", u, err)
	}
}
