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
	"bytes"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrNoData is returned when there is nothing to export.
var ErrNoData = errors.New("no data to export")

// metadataColumns lead every export in this order.
var metadataColumns = []string{KeyID, KeySubmissionType, KeyStatus, KeyCreatedAt, KeyReferenceNumber}

// ExportCSV renders the raw data of the records as CSV.
// The header is the metadata columns followed by the sorted union of every other
// raw data key. Every value is double quoted with embedded quotes doubled,
// objects and arrays are JSON encoded and missing values are empty.
func ExportCSV(records []NormalizedSubmission) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}

	columns := exportColumns(records)
	var buf bytes.Buffer
	writeRow(&buf, columns)
	for _, r := range records {
		buf.WriteByte('\n')
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = csvValue(r.RawData[col])
		}
		writeRow(&buf, row)
	}
	return buf.Bytes(), nil
}

// ExportFileName returns the download name of an export taken at t.
func ExportFileName(t time.Time) string {
	return "casurance_submissions_" + t.Format("2006-01-02_15-04") + ".csv"
}

func exportColumns(records []NormalizedSubmission) []string {
	meta := make(map[string]bool, len(metadataColumns))
	for _, c := range metadataColumns {
		meta[c] = true
	}
	seen := map[string]bool{}
	var fields []string
	for _, r := range records {
		for k := range r.RawData {
			if meta[k] || seen[k] {
				continue
			}
			seen[k] = true
			fields = append(fields, k)
		}
	}
	sort.Strings(fields)
	return append(append([]string(nil), metadataColumns...), fields...)
}

func writeRow(buf *bytes.Buffer, values []string) {
	for i, v := range values {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(v, `"`, `""`))
		buf.WriteByte('"')
	}
}

func csvValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return formatNumber(val)
	case int, int64, json.Number:
		return stringValue(val)
	case map[string]any, []any:
		raw, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(raw)
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return stringValue(val)
		}
		if len(raw) > 0 && raw[0] == '"' {
			return stringValue(val)
		}
		return string(raw)
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
