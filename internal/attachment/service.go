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

// Package attachment accepts files for the file fields of quote forms and stores them in object storage.
package attachment

import (
	"context"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/casurance/intake/internal/system/config"
	"github.com/casurance/intake/internal/system/error/serviceerror"
	"github.com/casurance/intake/internal/system/log"
	sysutils "github.com/casurance/intake/internal/system/utils"
	"github.com/casurance/intake/internal/wizard"
)

const serviceLoggerComponentName = "AttachmentService"

const maxFileNameLength = 100

// FileUpload is one file received from a form.
type FileUpload struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.ReadSeeker
}

// AttachmentServiceInterface defines the upload operation.
type AttachmentServiceInterface interface {
	Upload(ctx context.Context, file FileUpload) (*wizard.FileReference, *serviceerror.ServiceError)
}

// attachmentService validates files and hands them to the uploader.
type attachmentService struct {
	uploader     Uploader
	keyPrefix    string
	maxSize      int64
	allowedTypes map[string]bool
	now          func() time.Time
}

// newAttachmentService creates an attachment service. A nil uploader disables uploads.
func newAttachmentService(uploader Uploader, cfg config.AttachmentConfig) *attachmentService {
	allowed := make(map[string]bool, len(cfg.AllowedContentTypes))
	for _, t := range cfg.AllowedContentTypes {
		allowed[strings.ToLower(strings.TrimSpace(t))] = true
	}
	return &attachmentService{
		uploader:     uploader,
		keyPrefix:    cfg.KeyPrefix,
		maxSize:      cfg.MaxSize,
		allowedTypes: allowed,
		now:          time.Now,
	}
}

// Upload stores the file and returns the reference a form field keeps.
func (s *attachmentService) Upload(ctx context.Context, file FileUpload) (*wizard.FileReference,
	*serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, serviceLoggerComponentName))

	if s.uploader == nil {
		return nil, &ErrorUploadsDisabled
	}
	if file.Size <= 0 {
		return nil, &ErrorEmptyFile
	}
	if s.maxSize > 0 && file.Size > s.maxSize {
		return nil, &ErrorFileTooLarge
	}

	contentType, err := detectContentType(file)
	if err != nil {
		logger.Error("Failed to read upload", log.Error(err))
		return nil, &ErrorInternalServerError
	}
	if len(s.allowedTypes) > 0 && !s.allowedTypes[contentType] {
		logger.Debug("Rejected upload type", log.String("contentType", contentType))
		return nil, serviceerror.CustomServiceError(ErrorUnsupportedContentType,
			"Files of type "+contentType+" are not accepted")
	}

	name := cleanFileName(file.Name)
	key := s.objectKey(name)
	if err := s.uploader.Upload(ctx, key, file.Body, file.Size, contentType); err != nil {
		logger.Error("Failed to store upload", log.String("key", key), log.Error(err))
		return nil, &ErrorInternalServerError
	}
	logger.Debug("Stored upload", log.String("key", key), log.Int64("size", file.Size))

	return &wizard.FileReference{
		Key:         key,
		Name:        name,
		Size:        file.Size,
		ContentType: contentType,
	}, nil
}

// objectKey places the file under the prefix, the upload date and a random id.
func (s *attachmentService) objectKey(name string) string {
	day := s.now().UTC().Format("2006/01/02")
	return path.Join(s.keyPrefix, day, sysutils.GenerateUUID()+"-"+name)
}

// detectContentType trusts the declared type unless it is missing or generic, then sniffs the body.
func detectContentType(file FileUpload) (string, error) {
	if declared, _, err := mime.ParseMediaType(file.ContentType); err == nil && declared != "application/octet-stream" {
		return strings.ToLower(declared), nil
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(file.Body, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	if _, err := file.Body.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	sniffed, _, _ := mime.ParseMediaType(http.DetectContentType(head[:n]))
	return sniffed, nil
}

// cleanFileName keeps the base name and replaces characters that are awkward in object keys.
func cleanFileName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	cleaned = strings.Trim(cleaned, "._")
	if len(cleaned) > maxFileNameLength {
		cleaned = cleaned[len(cleaned)-maxFileNameLength:]
	}
	if cleaned == "" {
		return "file"
	}
	return cleaned
}
