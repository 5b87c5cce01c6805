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

package wizard

import (
	"fmt"
)

// FieldKind describes how a field is rendered and what values it holds.
type FieldKind string

const (
	// KindText is a single line of free text.
	KindText FieldKind = "text"
	// KindTextArea is multi line free text.
	KindTextArea FieldKind = "textarea"
	// KindEmail is an email address.
	KindEmail FieldKind = "email"
	// KindPhone is a phone number.
	KindPhone FieldKind = "phone"
	// KindNumber is a numeric amount, possibly entered with currency formatting.
	KindNumber FieldKind = "number"
	// KindBoolean is a checkbox.
	KindBoolean FieldKind = "boolean"
	// KindSelect is a choice from Options.
	KindSelect FieldKind = "select"
	// KindDate is a calendar date in YYYY-MM-DD form.
	KindDate FieldKind = "date"
	// KindFile is an uploaded file held as a FileReference.
	KindFile FieldKind = "file"
)

// FieldRule declares one field of a form and the rules applied to it.
type FieldRule struct {
	Name        string      `json:"name"`
	Label       string      `json:"label"`
	Kind        FieldKind   `json:"kind"`
	Required    bool        `json:"required"`
	Options     []string    `json:"options,omitempty"`
	Default     any         `json:"default,omitempty"`
	Validators  []Validator `json:"-"`
	VisibleWhen Predicate   `json:"-"`
}

// StepDefinition declares one step of a form.
type StepDefinition struct {
	Number          int         `json:"number"`
	Title           string      `json:"title"`
	Fields          []FieldRule `json:"fields"`
	RenderPredicate Predicate   `json:"-"`
}

// RequiredFields returns the names of the fields declared required on the step.
func (s StepDefinition) RequiredFields() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Definition is the declarative description of a product's form.
type Definition struct {
	Product  string
	Steps    []StepDefinition
	Defaults FormRecord
}

// TotalSteps returns the number of declared steps.
func (d *Definition) TotalSteps() int {
	return len(d.Steps)
}

// Step returns the definition of the given 1-based step.
func (d *Definition) Step(number int) (StepDefinition, bool) {
	if number < 1 || number > len(d.Steps) {
		return StepDefinition{}, false
	}
	return d.Steps[number-1], true
}

// Fields returns every field of the form in step order.
func (d *Definition) Fields() []FieldRule {
	var fields []FieldRule
	for _, s := range d.Steps {
		fields = append(fields, s.Fields...)
	}
	return fields
}

// Field looks up a field by name.
func (d *Definition) Field(name string) (FieldRule, bool) {
	for _, s := range d.Steps {
		for _, f := range s.Fields {
			if f.Name == name {
				return f, true
			}
		}
	}
	return FieldRule{}, false
}

// Check verifies that steps are numbered 1..N, that field names are unique and
// that the first step is always rendered.
func (d *Definition) Check() error {
	if len(d.Steps) == 0 {
		return fmt.Errorf("%w: %s has no steps", ErrInvalidDefinition, d.Product)
	}
	seen := map[string]bool{}
	for i, s := range d.Steps {
		if s.Number != i+1 {
			return fmt.Errorf("%w: %s step %d is numbered %d", ErrInvalidDefinition, d.Product, i+1, s.Number)
		}
		for _, f := range s.Fields {
			if f.Name == "" {
				return fmt.Errorf("%w: %s step %d has an unnamed field", ErrInvalidDefinition, d.Product, s.Number)
			}
			if seen[f.Name] {
				return fmt.Errorf("%w: %s declares field %q twice", ErrInvalidDefinition, d.Product, f.Name)
			}
			seen[f.Name] = true
		}
	}
	if d.Steps[0].RenderPredicate != nil {
		return fmt.Errorf("%w: %s first step must always render", ErrInvalidDefinition, d.Product)
	}
	for key := range d.Defaults {
		if !seen[key] {
			return fmt.Errorf("%w: %s default for undeclared field %q", ErrInvalidDefinition, d.Product, key)
		}
	}
	return nil
}

// NewRecord builds a record holding every declared key.
// Values come from the field defaults, then the definition defaults, then the given overrides.
func (d *Definition) NewRecord(overrides FormRecord) (FormRecord, error) {
	record := FormRecord{}
	for _, f := range d.Fields() {
		record[f.Name] = zeroValue(f)
	}
	for k, v := range d.Defaults {
		record[k] = cloneValue(v)
	}
	for k, v := range overrides {
		if _, ok := record[k]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, k)
		}
		record[k] = cloneValue(v)
	}
	return record, nil
}

func zeroValue(f FieldRule) any {
	if f.Default != nil {
		return cloneValue(f.Default)
	}
	switch f.Kind {
	case KindBoolean:
		return false
	case KindFile:
		return nil
	default:
		return ""
	}
}
