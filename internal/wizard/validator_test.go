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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailPattern(t *testing.T) {
	v := EmailPattern()

	assert.NoError(t, v.Validate("ops@acme.test"))
	assert.NoError(t, v.Validate("a@b"))
	assert.EqualError(t, v.Validate("acme.test"), "Please enter a valid email address")
	assert.Error(t, v.Validate("@acme"))
	assert.Error(t, v.Validate(42))
}

func TestNumericRange(t *testing.T) {
	v := NumericRange(1, 100)

	tests := []struct {
		name    string
		value   any
		wantErr string
	}{
		{"float", 50.0, ""},
		{"currency string", "$1,00", ""},
		{"json number", json.Number("99"), ""},
		{"int", 100, ""},
		{"below", "0", "Must be at least 1"},
		{"above", "$1,000", "Must be at most 100"},
		{"text", "lots", "Please enter a number"},
		{"bool", true, "Please enter a number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.value)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestAtLeast(t *testing.T) {
	assert.NoError(t, AtLeast(0).Validate("1000000"))
	assert.EqualError(t, AtLeast(0.5).Validate("0.25"), "Must be at least 0.5")
}

func TestMinDigits(t *testing.T) {
	v := MinDigits(10)

	assert.NoError(t, v.Validate("(555) 123-4567"))
	assert.Error(t, v.Validate("555-1234"))
}

func TestMinLength(t *testing.T) {
	assert.NoError(t, MinLength(2).Validate("Jo"))
	assert.EqualError(t, MinLength(2).Validate(" J "), "Must be at least 2 characters")
}

func TestOneOf(t *testing.T) {
	v := OneOf("yes", "no")

	assert.NoError(t, v.Validate("no"))
	assert.EqualError(t, v.Validate("maybe"), "Please select a valid option")
}

func TestMustBeTrue(t *testing.T) {
	v := MustBeTrue("You must agree")

	assert.NoError(t, v.Validate(true))
	assert.NoError(t, v.Validate("yes"))
	assert.EqualError(t, v.Validate(false), "You must agree")
	assert.Error(t, v.Validate("no"))
}

func TestPatternAndDate(t *testing.T) {
	zip := Pattern(`^\d{5}$`, "Please enter a 5 digit ZIP code")
	assert.NoError(t, zip.Validate("90210"))
	assert.EqualError(t, zip.Validate("9021"), "Please enter a 5 digit ZIP code")

	assert.NoError(t, DateOnly().Validate("2024-02-29"))
	assert.Error(t, DateOnly().Validate("2023-02-29"))
	assert.Error(t, DateOnly().Validate("02/01/2024"))
}

func TestFileAttached(t *testing.T) {
	v := FileAttached()

	assert.NoError(t, v.Validate(FileReference{Key: "uploads/a.pdf"}))
	assert.NoError(t, v.Validate(map[string]any{"key": "uploads/a.pdf", "size": 12.0}))
	assert.Error(t, v.Validate(FileReference{}))
	assert.Error(t, v.Validate("a.pdf"))
}

func TestNonEmpty(t *testing.T) {
	v := NonEmpty("Describe the loss")

	assert.NoError(t, v.Validate("fire"))
	assert.EqualError(t, v.Validate("   "), "Describe the loss")
}

func TestToNumber(t *testing.T) {
	n, ok := ToNumber(" $2,500.50 ")
	assert.True(t, ok)
	assert.Equal(t, 2500.5, n)

	_, ok = ToNumber("")
	assert.False(t, ok)
	_, ok = ToNumber("NaN")
	assert.False(t, ok)
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, isEmpty(nil))
	assert.True(t, isEmpty("  "))
	assert.True(t, isEmpty(FileReference{}))
	assert.True(t, isEmpty([]any{}))
	assert.False(t, isEmpty(false))
	assert.False(t, isEmpty(0.0))
	assert.False(t, isEmpty("x"))
}

func TestFormRecordCloneIsDeep(t *testing.T) {
	original := FormRecord{"vehicles": []any{map[string]any{"vin": "1"}}, "tags": []string{"a"}}

	clone := original.Clone()
	clone["vehicles"].([]any)[0].(map[string]any)["vin"] = "2"
	clone["tags"].([]string)[0] = "b"

	assert.Equal(t, "1", original["vehicles"].([]any)[0].(map[string]any)["vin"])
	assert.Equal(t, "a", original["tags"].([]string)[0])
}
