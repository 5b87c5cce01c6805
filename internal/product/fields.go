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

import (
	"github.com/casurance/intake/internal/wizard"
)

var yesNo = []string{"yes", "no"}

type fieldOption func(*wizard.FieldRule)

func required(f *wizard.FieldRule) {
	f.Required = true
}

func validate(v ...wizard.Validator) fieldOption {
	return func(f *wizard.FieldRule) {
		f.Validators = append(f.Validators, v...)
	}
}

func options(values ...string) fieldOption {
	return func(f *wizard.FieldRule) {
		f.Options = values
		f.Validators = append(f.Validators, wizard.OneOf(values...))
	}
}

func when(expr string) fieldOption {
	return func(f *wizard.FieldRule) {
		f.VisibleWhen = wizard.MustCEL(expr)
	}
}

// whenYes shows a field only while the named yes/no toggle is answered yes.
func whenYes(name string) fieldOption {
	return func(f *wizard.FieldRule) {
		f.VisibleWhen = wizard.FieldTruthy(name)
	}
}

func defaultValue(v any) fieldOption {
	return func(f *wizard.FieldRule) {
		f.Default = v
	}
}

// field declares a form field. Email, phone, date and file kinds carry their format validator.
func field(name, label string, kind wizard.FieldKind, opts ...fieldOption) wizard.FieldRule {
	f := wizard.FieldRule{Name: name, Label: label, Kind: kind}
	switch kind {
	case wizard.KindEmail:
		f.Validators = append(f.Validators, wizard.EmailPattern())
	case wizard.KindPhone:
		f.Validators = append(f.Validators, wizard.MinDigits(10))
	case wizard.KindDate:
		f.Validators = append(f.Validators, wizard.DateOnly())
	case wizard.KindFile:
		f.Validators = append(f.Validators, wizard.FileAttached())
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

func yesNoField(name, label string, opts ...fieldOption) wizard.FieldRule {
	return field(name, label, wizard.KindSelect, append([]fieldOption{options(yesNo...)}, opts...)...)
}

func step(number int, title string, fields ...wizard.FieldRule) wizard.StepDefinition {
	return wizard.StepDefinition{Number: number, Title: title, Fields: fields}
}

func conditionalStep(number int, title, expr string, fields ...wizard.FieldRule) wizard.StepDefinition {
	s := step(number, title, fields...)
	s.RenderPredicate = wizard.MustCEL(expr)
	return s
}

// businessFields are the location fields every commercial form opens with.
func businessFields() []wizard.FieldRule {
	return []wizard.FieldRule{
		field("businessName", "Business name", wizard.KindText, required, validate(wizard.MinLength(2))),
		field("businessAddress", "Business address", wizard.KindText, required),
		field("city", "City", wizard.KindText, required),
		field("state", "State", wizard.KindText, required,
			validate(wizard.Pattern(`^[A-Za-z]{2}$`, "Please enter a 2 letter state code"))),
		field("zip", "ZIP code", wizard.KindText, required,
			validate(wizard.Pattern(`^\d{5}(-\d{4})?$`, "Please enter a valid ZIP code"))),
		field("yearsInBusiness", "Years in business", wizard.KindNumber, validate(wizard.NumericRange(0, 200))),
	}
}

// contactFields close every quote form.
func contactFields() []wizard.FieldRule {
	return []wizard.FieldRule{
		field("contactName", "Contact name", wizard.KindText, required, validate(wizard.MinLength(2))),
		field("email", "Email", wizard.KindEmail, required),
		field("phone", "Phone", wizard.KindPhone, required),
		field("preferredContact", "Preferred contact method", wizard.KindSelect,
			options("email", "phone"), defaultValue("email")),
		field("additionalComments", "Additional comments", wizard.KindTextArea),
		field("consent", "Consent", wizard.KindBoolean, required,
			validate(wizard.MustBeTrue("Please agree to be contacted about your quote"))),
	}
}

// priorLossFields ask about the loss history and only require details when losses are reported.
func priorLossFields() []wizard.FieldRule {
	return []wizard.FieldRule{
		yesNoField("hasPriorLosses", "Any losses in the past 5 years", required),
		field("lossDetails", "Loss details", wizard.KindTextArea, required,
			validate(wizard.MinLength(10)), whenYes("hasPriorLosses")),
		field("lossRuns", "Loss runs", wizard.KindFile, whenYes("hasPriorLosses")),
	}
}

func withFields(head []wizard.FieldRule, tail ...wizard.FieldRule) []wizard.FieldRule {
	return append(head, tail...)
}
