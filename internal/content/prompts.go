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
	"encoding/json"
	"fmt"
	"strings"
)

const maxSuggestedTags = 8

const systemPrompt = "You write marketing content for Casurance, an independent commercial insurance agency " +
	"serving liquor stores, hotels, builders, habitational owners, auto dealers and manufacturers. " +
	"Write in plain, accurate English. Never promise coverage, prices or claim outcomes."

func draftPrompt(kind Kind, req AssistRequest) Prompt {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a %s", kind.label())
	if req.Topic != "" {
		fmt.Fprintf(&b, " about: %s.", req.Topic)
	} else {
		b.WriteString(".")
	}
	if req.Title != "" {
		fmt.Fprintf(&b, "\nUse this title: %s", req.Title)
	}
	if req.Instructions != "" {
		fmt.Fprintf(&b, "\nAdditional instructions: %s", req.Instructions)
	}
	b.WriteString("\nAnswer with a JSON object with the keys title, excerpt, content (markdown) and tags " +
		"(an array of short lowercase tags).")
	return Prompt{System: systemPrompt, User: b.String(), JSON: true}
}

func generatePrompt(kind Kind, req GenerateRequest) Prompt {
	assist := AssistRequest{Topic: req.Topic}
	var extra []string
	if len(req.Keywords) > 0 {
		extra = append(extra, "Work in these keywords: "+strings.Join(req.Keywords, ", ")+".")
	}
	if req.Tone != "" {
		extra = append(extra, "Tone: "+req.Tone+".")
	}
	assist.Instructions = strings.Join(extra, " ")
	return draftPrompt(kind, assist)
}

func improvePrompt(kind Kind, req AssistRequest) Prompt {
	instructions := req.Instructions
	if instructions == "" {
		instructions = "Improve clarity, flow and grammar. Keep the meaning and the markdown structure."
	}
	return Prompt{
		System: systemPrompt,
		User: fmt.Sprintf("Rewrite the following %s. %s\nAnswer with the rewritten text only.\n\n%s",
			kind.label(), instructions, req.Content),
	}
}

func tagsPrompt(kind Kind, req AssistRequest) Prompt {
	return Prompt{
		System: systemPrompt,
		User: fmt.Sprintf("Suggest up to %d short lowercase tags for this %s. "+
			"Answer with a JSON array of strings.\n\nTitle: %s\n\n%s",
			maxSuggestedTags, kind.label(), req.Title, req.Content),
		JSON: true,
	}
}

// parseDraft reads the model's JSON answer. Text that is not JSON becomes the content.
func parseDraft(text, fallbackTitle string) Draft {
	var d Draft
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &d); err != nil || strings.TrimSpace(d.Content) == "" {
		d = Draft{Content: text}
	}
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		d.Title = fallbackTitle
	}
	d.Excerpt = strings.TrimSpace(d.Excerpt)
	d.Tags = normalizeTags(d.Tags)
	return d
}

// parseTags accepts a JSON array or a comma or newline separated list.
func parseTags(text string) []string {
	var tags []string
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &tags); err != nil {
		tags = strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == '\n' })
	}
	return normalizeTags(tags)
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.Trim(strings.TrimSpace(t), `"#-*`))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
		if len(out) == maxSuggestedTags {
			break
		}
	}
	return out
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[i+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "```"))
}
