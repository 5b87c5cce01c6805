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

package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/casurance/intake/internal/system/config"
)

// Prompt is one request to the assistant.
type Prompt struct {
	System string
	User   string
	// JSON asks the model to answer with a JSON document.
	JSON bool
}

// Assistant completes prompts with a language model.
type Assistant interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// contentGenerator is the part of the genai models service used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content,
		config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiAssistant is an Assistant backed by the Gemini API.
type GeminiAssistant struct {
	models contentGenerator
	model  string
}

// NewGeminiAssistant creates an assistant for the given model.
func NewGeminiAssistant(ctx context.Context, apiKey, model string) (*GeminiAssistant, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiAssistant{models: client.Models, model: model}, nil
}

// NewAssistantFromConfig returns the configured assistant.
// ErrAssistantDisabled is returned when AI assist is off or has no API key.
func NewAssistantFromConfig(ctx context.Context) (Assistant, error) {
	cfg := config.GetRuntime().Config.AI
	if !cfg.Enabled || cfg.APIKey == "" {
		return nil, ErrAssistantDisabled
	}
	a, err := NewGeminiAssistant(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Complete sends the prompt and returns the text of the first candidate.
func (a *GeminiAssistant) Complete(ctx context.Context, prompt Prompt) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if prompt.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(prompt.System, genai.RoleUser)
	}
	if prompt.JSON {
		cfg.ResponseMIMEType = "application/json"
	}

	contents := []*genai.Content{genai.NewContentFromText(prompt.User, genai.RoleUser)}
	resp, err := a.models.GenerateContent(ctx, a.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("gemini returned no text")
	}
	return text, nil
}
