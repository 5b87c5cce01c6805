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
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Validator checks a non empty field value and returns an error carrying the user facing message.
type Validator interface {
	Validate(value any) error
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(value any) error

// Validate calls f(value).
func (f ValidatorFunc) Validate(value any) error {
	return f(value)
}

var emailPattern = regexp.MustCompile(`.+@.+`)

// NonEmpty rejects blank strings.
func NonEmpty(message string) Validator {
	return ValidatorFunc(func(value any) error {
		if isEmpty(value) {
			return errors.New(message)
		}
		return nil
	})
}

// EmailPattern accepts values matching .+@.+ .
func EmailPattern() Validator {
	return ValidatorFunc(func(value any) error {
		s, ok := value.(string)
		if !ok || !emailPattern.MatchString(strings.TrimSpace(s)) {
			return errors.New("Please enter a valid email address")
		}
		return nil
	})
}

// MinLength requires at least n characters.
func MinLength(n int) Validator {
	return ValidatorFunc(func(value any) error {
		s, _ := value.(string)
		if utf8.RuneCountInString(strings.TrimSpace(s)) < n {
			return fmt.Errorf("Must be at least %d characters", n)
		}
		return nil
	})
}

// MinDigits requires at least n digits, ignoring formatting characters.
// It is used for phone numbers.
func MinDigits(n int) Validator {
	return ValidatorFunc(func(value any) error {
		s, _ := value.(string)
		digits := 0
		for _, r := range s {
			if unicode.IsDigit(r) {
				digits++
			}
		}
		if digits < n {
			return fmt.Errorf("Please enter a valid phone number (at least %d digits)", n)
		}
		return nil
	})
}

// NumericRange requires a number within [lo, hi].
// Strings are accepted with currency symbols, thousands separators and spaces.
func NumericRange(lo, hi float64) Validator {
	return ValidatorFunc(func(value any) error {
		n, ok := ToNumber(value)
		if !ok {
			return errors.New("Please enter a number")
		}
		if n < lo {
			return fmt.Errorf("Must be at least %s", formatBound(lo))
		}
		if n > hi {
			return fmt.Errorf("Must be at most %s", formatBound(hi))
		}
		return nil
	})
}

// AtLeast requires a number no smaller than lo.
func AtLeast(lo float64) Validator {
	return NumericRange(lo, math.Inf(1))
}

// OneOf requires the value to be one of the given options.
func OneOf(options ...string) Validator {
	allowed := make(map[string]struct{}, len(options))
	for _, o := range options {
		allowed[o] = struct{}{}
	}
	return ValidatorFunc(func(value any) error {
		s := fmt.Sprint(value)
		if _, ok := allowed[s]; !ok {
			return errors.New("Please select a valid option")
		}
		return nil
	})
}

// MustBeTrue requires a checked checkbox.
func MustBeTrue(message string) Validator {
	return ValidatorFunc(func(value any) error {
		if !isTruthy(value) {
			return errors.New(message)
		}
		return nil
	})
}

// Pattern requires the value to match the regular expression.
func Pattern(expr, message string) Validator {
	re := regexp.MustCompile(expr)
	return ValidatorFunc(func(value any) error {
		s, ok := value.(string)
		if !ok || !re.MatchString(strings.TrimSpace(s)) {
			return errors.New(message)
		}
		return nil
	})
}

// DateOnly requires a YYYY-MM-DD calendar date.
func DateOnly() Validator {
	return ValidatorFunc(func(value any) error {
		s, _ := value.(string)
		if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
			return errors.New("Please enter a valid date")
		}
		return nil
	})
}

// FileAttached requires an uploaded file reference.
func FileAttached() Validator {
	return ValidatorFunc(func(value any) error {
		if _, ok := asFileReference(value); !ok {
			return errors.New("Please attach a file")
		}
		return nil
	})
}

// ToNumber converts a numeric field value to float64.
func ToNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(v))
		if cleaned == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func isTruthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "on", "1":
			return true
		}
	}
	return false
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
