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

import "time"

// Kind separates blog posts from press releases. Both share one table.
type Kind string

const (
	KindBlog  Kind = "blog"
	KindPress Kind = "press"
)

// basePath returns the collection path of the kind.
func (k Kind) basePath() string {
	if k == KindPress {
		return "/api/press-releases"
	}
	return "/api/blog-posts"
}

// label returns how prompts refer to the kind.
func (k Kind) label() string {
	if k == KindPress {
		return "press release"
	}
	return "blog post"
}

// Post statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Post is a blog post or press release.
type Post struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Excerpt   string    `json:"excerpt,omitempty"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Status    string    `json:"status"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateRequest is the body of POST on a collection.
type CreateRequest struct {
	Title   string   `json:"title"`
	Excerpt string   `json:"excerpt"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
	Status  string   `json:"status"`
}

// GenerateRequest asks the assistant to write and store a complete post.
type GenerateRequest struct {
	Topic    string   `json:"topic"`
	Keywords []string `json:"keywords"`
	Tone     string   `json:"tone"`
	Publish  bool     `json:"publish"`
}

// AssistRequest is the body of the ai-assist endpoints.
type AssistRequest struct {
	Topic        string `json:"topic"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	Instructions string `json:"instructions"`
}

// Draft is text proposed by the assistant. Nothing is stored.
type Draft struct {
	Title   string   `json:"title"`
	Excerpt string   `json:"excerpt"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// ImproveResponse carries rewritten content.
type ImproveResponse struct {
	Content string `json:"content"`
}

// TagsResponse carries suggested tags.
type TagsResponse struct {
	Tags []string `json:"tags"`
}

// ListResponse wraps a post listing.
type ListResponse struct {
	Posts []Post `json:"posts"`
}
