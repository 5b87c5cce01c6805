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

// Package content manages blog posts and press releases and offers AI writing assistance for them.
package content

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/casurance/intake/internal/system/error/serviceerror"
	"github.com/casurance/intake/internal/system/log"
	sysutils "github.com/casurance/intake/internal/system/utils"
)

const serviceLoggerComponentName = "ContentService"

const maxSlugLength = 80

// ContentServiceInterface defines the content management operations.
type ContentServiceInterface interface {
	ListPosts(kind Kind, includeDrafts bool) ([]Post, *serviceerror.ServiceError)
	CreatePost(kind Kind, req CreateRequest, author string) (*Post, *serviceerror.ServiceError)
	GeneratePost(ctx context.Context, kind Kind, req GenerateRequest, author string) (*Post,
		*serviceerror.ServiceError)
	DraftPost(ctx context.Context, kind Kind, req AssistRequest) (*Draft, *serviceerror.ServiceError)
	ImproveContent(ctx context.Context, kind Kind, req AssistRequest) (*ImproveResponse, *serviceerror.ServiceError)
	SuggestTags(ctx context.Context, kind Kind, req AssistRequest) (*TagsResponse, *serviceerror.ServiceError)
}

// contentService is the default implementation of ContentServiceInterface.
type contentService struct {
	store     contentStoreInterface
	assistant Assistant
	now       func() time.Time
}

// newContentService creates a content service. A nil assistant disables the AI endpoints.
func newContentService(store contentStoreInterface, assistant Assistant) ContentServiceInterface {
	return &contentService{
		store:     store,
		assistant: assistant,
		now:       time.Now,
	}
}

// ListPosts returns the posts of a kind. Drafts are only included on request.
func (s *contentService) ListPosts(kind Kind, includeDrafts bool) ([]Post, *serviceerror.ServiceError) {
	posts, err := s.store.ListPosts(kind, includeDrafts)
	if err != nil {
		s.logger().Error("Failed to list posts", log.String("kind", string(kind)), log.Error(err))
		return nil, &ErrorInternalServerError
	}
	return posts, nil
}

// CreatePost stores a post written by an agent.
func (s *contentService) CreatePost(kind Kind, req CreateRequest, author string) (*Post,
	*serviceerror.ServiceError) {
	title := sysutils.SanitizeString(req.Title)
	if title == "" {
		return nil, &ErrorMissingTitle
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, &ErrorMissingContent
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status == "" {
		status = StatusDraft
	}
	if status != StatusDraft && status != StatusPublished {
		return nil, &ErrorInvalidStatus
	}

	return s.save(kind, Draft{
		Title:   title,
		Excerpt: sysutils.SanitizeString(req.Excerpt),
		Content: strings.TrimSpace(req.Content),
		Tags:    normalizeTags(req.Tags),
	}, status, author)
}

// GeneratePost has the assistant write a post on a topic and stores it.
func (s *contentService) GeneratePost(ctx context.Context, kind Kind, req GenerateRequest,
	author string) (*Post, *serviceerror.ServiceError) {
	topic := sysutils.SanitizeString(req.Topic)
	if topic == "" {
		return nil, &ErrorMissingTopic
	}
	req.Topic = topic

	text, svcErr := s.complete(ctx, generatePrompt(kind, req))
	if svcErr != nil {
		return nil, svcErr
	}
	draft := parseDraft(text, topic)

	status := StatusDraft
	if req.Publish {
		status = StatusPublished
	}
	return s.save(kind, draft, status, author)
}

// DraftPost proposes a post without storing it.
func (s *contentService) DraftPost(ctx context.Context, kind Kind, req AssistRequest) (*Draft,
	*serviceerror.ServiceError) {
	req.Topic = sysutils.SanitizeString(req.Topic)
	req.Title = sysutils.SanitizeString(req.Title)
	if req.Topic == "" && req.Title == "" {
		return nil, &ErrorMissingTopic
	}

	text, svcErr := s.complete(ctx, draftPrompt(kind, req))
	if svcErr != nil {
		return nil, svcErr
	}
	fallback := req.Title
	if fallback == "" {
		fallback = req.Topic
	}
	draft := parseDraft(text, fallback)
	return &draft, nil
}

// ImproveContent rewrites existing content.
func (s *contentService) ImproveContent(ctx context.Context, kind Kind, req AssistRequest) (*ImproveResponse,
	*serviceerror.ServiceError) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, &ErrorMissingContent
	}
	text, svcErr := s.complete(ctx, improvePrompt(kind, req))
	if svcErr != nil {
		return nil, svcErr
	}
	return &ImproveResponse{Content: stripCodeFence(text)}, nil
}

// SuggestTags proposes tags for a title and content.
func (s *contentService) SuggestTags(ctx context.Context, kind Kind, req AssistRequest) (*TagsResponse,
	*serviceerror.ServiceError) {
	if strings.TrimSpace(req.Title) == "" && strings.TrimSpace(req.Content) == "" {
		return nil, &ErrorMissingContent
	}
	text, svcErr := s.complete(ctx, tagsPrompt(kind, req))
	if svcErr != nil {
		return nil, svcErr
	}
	return &TagsResponse{Tags: parseTags(text)}, nil
}

func (s *contentService) complete(ctx context.Context, prompt Prompt) (string, *serviceerror.ServiceError) {
	if s.assistant == nil {
		return "", &ErrorAssistantUnavailable
	}
	text, err := s.assistant.Complete(ctx, prompt)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", serviceerror.CustomServiceError(ErrorAssistantFailed, "The request was cancelled")
		}
		s.logger().Error("Assistant request failed", log.Error(err))
		return "", &ErrorAssistantFailed
	}
	return text, nil
}

func (s *contentService) save(kind Kind, draft Draft, status, author string) (*Post, *serviceerror.ServiceError) {
	logger := s.logger()

	slug, err := s.uniqueSlug(kind, draft.Title)
	if err != nil {
		logger.Error("Failed to check slug", log.Error(err))
		return nil, &ErrorInternalServerError
	}
	now := s.now().UTC().Truncate(time.Second)
	post := Post{
		ID:        sysutils.GenerateUUID(),
		Kind:      kind,
		Title:     draft.Title,
		Slug:      slug,
		Excerpt:   draft.Excerpt,
		Content:   draft.Content,
		Tags:      draft.Tags,
		Status:    status,
		Author:    author,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if err := s.store.CreatePost(post); err != nil {
		logger.Error("Failed to store post", log.Error(err))
		return nil, &ErrorInternalServerError
	}
	logger.Debug("Stored post", log.String("kind", string(kind)), log.String("slug", slug),
		log.String("status", status))
	return &post, nil
}

// uniqueSlug derives a slug from the title and suffixes it when the kind already uses it.
func (s *contentService) uniqueSlug(kind Kind, title string) (string, error) {
	base := slugify(title)
	slug := base
	for i := 0; i < 3; i++ {
		exists, err := s.store.SlugExists(kind, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = base + "-" + sysutils.GenerateUUID()[:6]
	}
	return base + "-" + sysutils.GenerateUUID()[:8], nil
}

func (s *contentService) logger() *log.Logger {
	return log.GetLogger().With(log.String(log.LoggerKeyComponentName, serviceLoggerComponentName))
}

// slugify lowercases the title, folds accents and joins ASCII letters and digits with dashes.
func slugify(title string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if b.Len() > 0 && !dash {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if len(slug) > maxSlugLength {
		slug = strings.TrimSuffix(slug[:maxSlugLength], "-")
	}
	if slug == "" {
		return "post"
	}
	return slug
}
