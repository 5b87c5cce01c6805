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

// Package product declares the insurance products that accept quote requests.
//
// Every product is a closed variant keyed by Type. It owns the wizard
// definition its form is driven by, the table its submissions are stored in
// and a JSON schema that admits exactly the keys the form declares.
package product

import (
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/casurance/intake/internal/wizard"
)

// Type identifies a product.
type Type string

const (
	LiquorStore       Type = "liquor-store"
	BuildersRisk      Type = "builders-risk"
	Hotel             Type = "hotel"
	Habitational      Type = "habitational"
	CommercialPackage Type = "commercial-package"
	ProductLiability  Type = "product-liability"
	AutoDealerGarage  Type = "auto-dealer-garage"
	QuickQuote        Type = "quick-quote"
	Contact           Type = "contact"
)

// Submission types stored alongside each record.
const (
	SubmissionTypeQuote   = "quote"
	SubmissionTypeContact = "contact"
)

// Product is one entry of the catalog.
type Product struct {
	Type           Type
	Path           string
	SubmissionType string
	FormName       string
	Table          string
	// ContactNameField and friends name the record keys copied into indexed columns.
	ContactNameField string
	EmailField       string
	PhoneField       string
	CityField        string
	StateField       string
	// InsuranceTypeField names the record key holding the line of business, for generic quote forms.
	InsuranceTypeField string

	definition *wizard.Definition
	schema     *jsonschema.Schema
	schemaJSON []byte
}

// Slug returns the URL segment of the product.
func (p *Product) Slug() string {
	return string(p.Type)
}

// Definition returns the wizard definition of the product's form.
func (p *Product) Definition() *wizard.Definition {
	return p.definition
}

// SchemaJSON returns the JSON schema of the product's payload.
func (p *Product) SchemaJSON() []byte {
	return append([]byte(nil), p.schemaJSON...)
}

// InsuranceType returns the line of business a record of this product asks about.
func (p *Product) InsuranceType(record wizard.FormRecord) string {
	if p.InsuranceTypeField == "" {
		if p.SubmissionType == SubmissionTypeContact {
			return ""
		}
		return string(p.Type)
	}
	v, _ := record[p.InsuranceTypeField].(string)
	return strings.TrimSpace(v)
}

// Get looks up a product by type.
func Get(t Type) (*Product, bool) {
	p, ok := registry().byType[t]
	return p, ok
}

// GetBySlug looks up a product by its URL segment. Both "hotel" and "hotel-quotes" resolve.
func GetBySlug(slug string) (*Product, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "quick-quotes" {
		return Get(QuickQuote)
	}
	return Get(Type(strings.TrimSuffix(slug, "-quotes")))
}

// GetBySubmissionType looks up the product whose records carry the given submission type.
// Quick quotes share the generic "quote" type.
func GetBySubmissionType(submissionType string) (*Product, bool) {
	p, ok := registry().bySubmissionType[submissionType]
	return p, ok
}

// List returns every product ordered by type.
func List() []*Product {
	out := make([]*Product, 0, len(registry().byType))
	for _, p := range registry().byType {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// Quotable returns the products that accept quote requests, excluding the contact form.
func Quotable() []*Product {
	all := List()
	out := all[:0]
	for _, p := range all {
		if p.Type != Contact {
			out = append(out, p)
		}
	}
	return out
}
