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

// Package wizard implements a product agnostic multi-step form engine.
//
// A Wizard holds a flat FormRecord whose keys are fixed by a Definition,
// gates forward navigation on per-step validation and submits the record
// at most once through a Submitter.
package wizard

import (
	"encoding/json"
	"strings"
)

// FormRecord maps field names to their current values.
// Values are strings, booleans, numbers, FileReference values or nested maps.
type FormRecord map[string]any

// FileReference identifies an uploaded file attached to a form field.
type FileReference struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// Clone returns a deep copy of the record.
func (r FormRecord) Clone() FormRecord {
	if r == nil {
		return nil
	}
	out := make(FormRecord, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = cloneValue(item)
		}
		return m
	case FormRecord:
		return val.Clone()
	case []any:
		s := make([]any, len(val))
		for i, item := range val {
			s[i] = cloneValue(item)
		}
		return s
	case []string:
		return append([]string(nil), val...)
	case *FileReference:
		if val == nil {
			return nil
		}
		ref := *val
		return ref
	default:
		return v
	}
}

// isEmpty reports whether a value counts as unanswered for a required field.
// A false boolean is an answer.
func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case json.Number:
		return val.String() == ""
	case FileReference:
		return val.Key == ""
	case *FileReference:
		return val == nil || val.Key == ""
	case map[string]any:
		return len(val) == 0
	case []any:
		return len(val) == 0
	case []string:
		return len(val) == 0
	default:
		return false
	}
}

// asFileReference converts a decoded JSON object or FileReference into a FileReference.
func asFileReference(v any) (FileReference, bool) {
	switch val := v.(type) {
	case FileReference:
		return val, val.Key != ""
	case *FileReference:
		if val == nil {
			return FileReference{}, false
		}
		return *val, val.Key != ""
	case map[string]any:
		ref := FileReference{}
		ref.Key, _ = val["key"].(string)
		ref.Name, _ = val["name"].(string)
		ref.ContentType, _ = val["contentType"].(string)
		if size, ok := val["size"].(float64); ok {
			ref.Size = int64(size)
		}
		return ref, ref.Key != ""
	default:
		return FileReference{}, false
	}
}
