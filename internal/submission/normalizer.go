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

package submission

import (
	"fmt"
	"strings"
	"time"

	"github.com/casurance/intake/internal/product"
)

const (
	displayDateLayout = "Jan 2, 2006"
	notAvailable      = "N/A"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// Normalize projects a submission onto its display shape with dates in UTC.
// The input is never modified and the output holds its own copy of the raw data.
func Normalize(s Submission) NormalizedSubmission {
	return NormalizeIn(s, time.UTC)
}

// NormalizeIn is Normalize with dates rendered in the given location.
func NormalizeIn(s Submission, loc *time.Location) NormalizedSubmission {
	submissionType := stringValue(s[KeySubmissionType])
	n := NormalizedSubmission{
		ID:              stringValue(s[KeyID]),
		Type:            submissionType,
		FormName:        product.FormName(submissionType, stringValue(s[KeyInsuranceType])),
		Name:            displayName(s),
		Location:        displayLocation(s),
		Date:            displayDate(stringValue(s[KeyCreatedAt]), loc),
		Status:          displayStatus(stringValue(s[KeyStatus])),
		ReferenceNumber: stringValue(s[KeyReferenceNumber]),
		RawData:         s.clone(),
	}
	return n
}

// NormalizeAll normalizes every submission in order.
func NormalizeAll(subs []Submission, loc *time.Location) []NormalizedSubmission {
	out := make([]NormalizedSubmission, 0, len(subs))
	for _, s := range subs {
		out = append(out, NormalizeIn(s, loc))
	}
	return out
}

func displayStatus(stored string) string {
	switch stored {
	case StoredStatusRead, StoredStatusCompleted:
		return StatusComplete
	default:
		return StatusIncomplete
	}
}

func displayName(s Submission) string {
	for _, key := range []string{KeyContactName, "name"} {
		if v := strings.TrimSpace(stringValue(s[key])); v != "" {
			return v
		}
	}
	return notAvailable
}

func displayLocation(s Submission) string {
	city := strings.TrimSpace(stringValue(s["city"]))
	state := strings.TrimSpace(stringValue(s["state"]))
	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city
	case state != "":
		return state
	}
	for _, key := range []string{"location", "businessAddress"} {
		if v := strings.TrimSpace(stringValue(s[key])); v != "" {
			return v
		}
	}
	return notAvailable
}

func displayDate(raw string, loc *time.Location) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return notAvailable
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.In(loc).Format(displayDateLayout)
		}
	}
	return raw
}

// stringValue renders scalar values as text; nil becomes "".
func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case float64:
		return formatNumber(val)
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(val)
	}
}

func (s Submission) clone() Submission {
	if s == nil {
		return nil
	}
	out := make(Submission, len(s))
	for k, v := range s {
		out[k] = cloneJSONValue(v)
	}
	return out
}

func cloneJSONValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = cloneJSONValue(item)
		}
		return m
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneJSONValue(item)
		}
		return out
	default:
		return v
	}
}
