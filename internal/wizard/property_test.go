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
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func propertyParameters() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	return parameters
}

// navigate applies a sequence of moves: true advances, false retreats.
func navigate(w *Wizard, moves []bool) {
	for _, forward := range moves {
		if forward {
			w.Advance()
		} else {
			w.Retreat()
		}
	}
}

func TestNavigationProperties(t *testing.T) {
	properties := gopter.NewProperties(propertyParameters())

	properties.Property("advance never leaves a step with an empty required field", prop.ForAll(
		func(name string, moves []bool) bool {
			w, err := Initialize(threeStepDefinition(), FormRecord{"name": name}, nil)
			if err != nil {
				return false
			}
			navigate(w, moves)
			if isEmpty(name) {
				return w.State().CurrentStep == 1
			}
			return true
		},
		gen.OneGenOf(gen.Const(""), gen.Const("   "), gen.AlphaString()),
		gen.SliceOf(gen.Bool()),
	))

	properties.Property("navigation never changes the record", prop.ForAll(
		func(name, email string, moves []bool) bool {
			w, err := Initialize(threeStepDefinition(), FormRecord{"name": name, "email": email}, nil)
			if err != nil {
				return false
			}
			before := w.State().Record
			navigate(w, moves)
			return reflect.DeepEqual(before, w.State().Record)
		},
		gen.AlphaString(),
		gen.OneGenOf(gen.AlphaString(), gen.Const("ops@acme.test")),
		gen.SliceOf(gen.Bool()),
	))

	properties.Property("current step stays within 1..total", prop.ForAll(
		func(opType string, hadLosses bool, moves []bool) bool {
			w, err := Initialize(dealerDefinition(), FormRecord{
				"operationType":       opType,
				"dealerLicenseNumber": "DL-1",
				"serviceBays":         "3",
				"hadLosses":           hadLosses,
				"lossDetails":         "hail",
			}, nil)
			if err != nil {
				return false
			}
			for _, forward := range moves {
				var state WizardState
				if forward {
					state = w.Advance()
				} else {
					state = w.Retreat()
				}
				if state.CurrentStep < 1 || state.CurrentStep > state.TotalSteps {
					return false
				}
				if !w.IsStepVisible(state.CurrentStep) {
					return false
				}
			}
			return true
		},
		gen.OneConstOf("dealer", "service", "both"),
		gen.Bool(),
		gen.SliceOf(gen.Bool()),
	))

	properties.Property("retreat on the first step is a no-op", prop.ForAll(
		func(name string, times int) bool {
			w, _ := Initialize(threeStepDefinition(), FormRecord{"name": name}, nil)
			before := w.State()
			for i := 0; i < times; i++ {
				w.Retreat()
			}
			return reflect.DeepEqual(before, w.State())
		},
		gen.AlphaString(),
		gen.IntRange(1, 5),
	))

	properties.Property("advance on the final step is a no-op", prop.ForAll(
		func(message string, times int) bool {
			w, _ := Initialize(threeStepDefinition(), FormRecord{"name": "Acme", "email": "a@b", "message": message}, nil)
			w.Advance()
			w.Advance()
			before := w.State()
			for i := 0; i < times; i++ {
				w.Advance()
			}
			return before.CurrentStep == 3 && reflect.DeepEqual(before, w.State())
		},
		gen.AlphaString(),
		gen.IntRange(1, 5),
	))

	properties.TestingRun(t)
}
