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
	"strings"

	"golang.org/x/text/cases"
)

// FilterBySearch keeps the records whose form name, name or location contain
// the term, ignoring case. A blank term keeps everything.
func FilterBySearch(records []NormalizedSubmission, term string) []NormalizedSubmission {
	term = strings.TrimSpace(term)
	out := make([]NormalizedSubmission, 0, len(records))
	if term == "" {
		return append(out, records...)
	}
	fold := cases.Fold()
	needle := fold.String(term)
	for _, r := range records {
		if strings.Contains(fold.String(r.FormName), needle) ||
			strings.Contains(fold.String(r.Name), needle) ||
			strings.Contains(fold.String(r.Location), needle) {
			out = append(out, r)
		}
	}
	return out
}
