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
	"time"

	"github.com/casurance/intake/internal/system/database/provider"
)

// contentStoreInterface defines the persistence of posts.
type contentStoreInterface interface {
	CreatePost(post Post) error
	ListPosts(kind Kind, includeDrafts bool) ([]Post, error)
	SlugExists(kind Kind, slug string) (bool, error)
}

// contentStore keeps posts in the intake database.
type contentStore struct {
	dbProvider provider.DBProviderInterface
}

func newContentStore() contentStoreInterface {
	return &contentStore{dbProvider: provider.GetDBProvider()}
}

// CreatePost inserts a post.
func (s *contentStore) CreatePost(post Post) error {
	dbClient, err := s.dbProvider.GetDBClient(provider.IntakeDB)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}
	tags, err := json.Marshal(post.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	_, err = dbClient.Execute(queryCreatePost, post.ID, string(post.Kind), post.Title, post.Slug, post.Excerpt,
		post.Content, string(tags), post.Status, post.Author,
		post.CreatedAt.UTC().Format(time.RFC3339), post.UpdatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	return nil
}

// ListPosts returns the posts of a kind, newest first.
func (s *contentStore) ListPosts(kind Kind, includeDrafts bool) ([]Post, error) {
	dbClient, err := s.dbProvider.GetDBClient(provider.IntakeDB)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	query := queryListPublishedPosts
	if includeDrafts {
		query = queryListAllPosts
	}
	results, err := dbClient.Query(query, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	posts := make([]Post, 0, len(results))
	for _, row := range results {
		post, err := buildPostFromResultRow(row)
		if err != nil {
			return nil, fmt.Errorf("failed to build post from result row: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// SlugExists reports whether a post of the kind already uses the slug.
func (s *contentStore) SlugExists(kind Kind, slug string) (bool, error) {
	dbClient, err := s.dbProvider.GetDBClient(provider.IntakeDB)
	if err != nil {
		return false, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(queryCountSlug, string(kind), slug)
	if err != nil {
		return false, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) != 1 {
		return false, fmt.Errorf("unexpected number of results: %d", len(results))
	}
	switch total := results[0]["total"].(type) {
	case int64:
		return total > 0, nil
	case int:
		return total > 0, nil
	case float64:
		return total > 0, nil
	default:
		return false, fmt.Errorf("unexpected count type %T", total)
	}
}

func buildPostFromResultRow(row map[string]interface{}) (Post, error) {
	post := Post{
		ID:      stringValue(row["id"]),
		Kind:    Kind(stringValue(row["kind"])),
		Title:   stringValue(row["title"]),
		Slug:    stringValue(row["slug"]),
		Excerpt: stringValue(row["excerpt"]),
		Content: stringValue(row["content"]),
		Status:  stringValue(row["status"]),
		Author:  stringValue(row["author"]),
		Tags:    []string{},
	}
	if post.ID == "" {
		return Post{}, fmt.Errorf("missing id")
	}
	if raw := stringValue(row["tags"]); raw != "" && raw != "null" {
		if err := json.Unmarshal([]byte(raw), &post.Tags); err != nil {
			return Post{}, fmt.Errorf("failed to parse tags: %w", err)
		}
	}

	var err error
	if post.CreatedAt, err = timeValue(row["created_at"]); err != nil {
		return Post{}, err
	}
	if post.UpdatedAt, err = timeValue(row["updated_at"]); err != nil {
		return Post{}, err
	}
	return post, nil
}

func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	default:
		return ""
	}
}

func timeValue(v any) (time.Time, error) {
	if t, ok := v.(time.Time); ok {
		return t.UTC(), nil
	}
	s := stringValue(v)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}
