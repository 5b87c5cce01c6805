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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCELPredicate(t *testing.T) {
	p, err := CEL(`record.operationType in ["dealer", "both"]`)
	require.NoError(t, err)

	ok, err := p.Evaluate(FormRecord{"operationType": "both"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Evaluate(FormRecord{"operationType": "service"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCELPredicateIsCached(t *testing.T) {
	first := MustCEL(`record.hasFleet == true`).(*celPredicate)
	second := MustCEL(`record.hasFleet == true`).(*celPredicate)

	assert.Equal(t, first.program, second.program)
	assert.Equal(t, `record.hasFleet == true`, second.String())
}

func TestCELPredicateOnFileReference(t *testing.T) {
	p := MustCEL(`record.lossRuns.key != ""`)

	ok, err := p.Evaluate(FormRecord{"lossRuns": FileReference{Key: "uploads/runs.pdf"}})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCELRejectsBadExpressions(t *testing.T) {
	_, err := CEL(`record.operationType ==`)
	assert.Error(t, err)

	_, err = CEL(`"not a bool"`)
	assert.Error(t, err)

	assert.Panics(t, func() { MustCEL(`)(`) })
}

func TestEvaluateTreatsErrorsAsVisible(t *testing.T) {
	p := MustCEL(`record.missing == "x"`)

	_, err := p.Evaluate(FormRecord{})
	assert.Error(t, err)
	assert.True(t, evaluate(p, FormRecord{}))
	assert.True(t, evaluate(nil, FormRecord{}))
}

func TestFieldEquals(t *testing.T) {
	p := FieldEquals("ownsBuilding", "yes")

	ok, err := p.Evaluate(FormRecord{"ownsBuilding": "yes"})
	assert.NoError(t, err)
	assert.True(t, ok)

	_, err = p.Evaluate(FormRecord{})
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestFieldTruthy(t *testing.T) {
	p := FieldTruthy("hasFleet")

	for _, v := range []any{true, "yes", "on", "1"} {
		ok, err := p.Evaluate(FormRecord{"hasFleet": v})
		assert.NoError(t, err)
		assert.True(t, ok, "%v", v)
	}
	ok, _ := p.Evaluate(FormRecord{"hasFleet": false})
	assert.False(t, ok)
}
