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

package product

import "strings"

// formNames maps stored submission types to display names.
var formNames = map[string]string{
	"liquor_store":        "Liquor Store Insurance",
	"builders_risk":       "Builders Risk Insurance",
	"hotel":               "Hotel Insurance",
	"habitational":        "Habitational Insurance",
	"commercial_package":  "Commercial Package Policy",
	"product_liability":   "Product Liability Insurance",
	"auto_dealer_garage":  "Auto Dealer & Garage Insurance",
	SubmissionTypeQuote:   "Quick Quote",
	SubmissionTypeContact: "Contact Form",
}

// insuranceTypeNames resolves the line of business of generic "quote" submissions.
var insuranceTypeNames = map[string]string{
	"general-liability":   "General Liability Insurance",
	"commercial-property": "Commercial Property Insurance",
	"commercial-auto":     "Commercial Auto Insurance",
	"workers-comp":        "Workers' Compensation",
	"liquor-store":        "Liquor Store Insurance",
	"builders-risk":       "Builders Risk Insurance",
	"hotel":               "Hotel Insurance",
	"habitational":        "Habitational Insurance",
	"commercial-package":  "Commercial Package Policy",
	"product-liability":   "Product Liability Insurance",
	"auto-dealer-garage":  "Auto Dealer & Garage Insurance",
	"other":               "Other Insurance",
}

// FormName returns the display name of a submission.
// Generic quotes resolve through their insurance type; unknown types are returned unchanged.
func FormName(submissionType, insuranceType string) string {
	if submissionType == SubmissionTypeQuote {
		insuranceType = strings.TrimSpace(insuranceType)
		if insuranceType != "" {
			if name, ok := insuranceTypeNames[insuranceType]; ok {
				return name
			}
			if name, ok := insuranceTypeNames[strings.ReplaceAll(strings.ToLower(insuranceType), "_", "-")]; ok {
				return name
			}
			return insuranceType
		}
	}
	if name, ok := formNames[submissionType]; ok {
		return name
	}
	return submissionType
}
