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
	"sync"

	"github.com/google/cel-go/cel"
)

// Predicate decides whether a step or field is currently relevant.
type Predicate interface {
	Evaluate(record FormRecord) (bool, error)
}

// PredicateFunc adapts a function to the Predicate interface.
type PredicateFunc func(record FormRecord) (bool, error)

// Evaluate calls f(record).
func (f PredicateFunc) Evaluate(record FormRecord) (bool, error) {
	return f(record)
}

// Always is a predicate that is always true.
func Always() Predicate {
	return PredicateFunc(func(FormRecord) (bool, error) { return true, nil })
}

// FieldEquals is true when the named field equals one of the given values.
func FieldEquals(name string, values ...string) Predicate {
	return PredicateFunc(func(record FormRecord) (bool, error) {
		current, ok := record[name]
		if !ok {
			return false, fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
		s := fmt.Sprint(current)
		for _, v := range values {
			if s == v {
				return true, nil
			}
		}
		return false, nil
	})
}

// FieldTruthy is true when the named field holds true or "yes".
func FieldTruthy(name string) Predicate {
	return PredicateFunc(func(record FormRecord) (bool, error) {
		current, ok := record[name]
		if !ok {
			return false, fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
		return isTruthy(current), nil
	})
}

// celPredicate evaluates a compiled CEL expression against the record bound as "record".
type celPredicate struct {
	expr    string
	program cel.Program
}

var (
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once

	celCacheMu sync.RWMutex
	celCache   = map[string]cel.Program{}
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("record", cel.MapType(cel.StringType, cel.DynType)),
		)
	})
	return celEnv, celEnvErr
}

// CEL compiles a boolean CEL expression over the record, e.g. `record.operationType in ["dealer", "both"]`.
func CEL(expr string) (Predicate, error) {
	celCacheMu.RLock()
	prg, hit := celCache[expr]
	celCacheMu.RUnlock()
	if hit {
		return &celPredicate{expr: expr, program: prg}, nil
	}

	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("CEL compile error in %q: %w", expr, issues.Err())
	}
	if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("CEL expression %q must evaluate to bool, got %s", expr, ast.OutputType())
	}
	prg, err = env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("CEL program error in %q: %w", expr, err)
	}

	celCacheMu.Lock()
	celCache[expr] = prg
	celCacheMu.Unlock()
	return &celPredicate{expr: expr, program: prg}, nil
}

// MustCEL is like CEL but panics when the expression does not compile.
func MustCEL(expr string) Predicate {
	p, err := CEL(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Evaluate runs the expression against the record.
func (p *celPredicate) Evaluate(record FormRecord) (bool, error) {
	out, _, err := p.program.Eval(map[string]any{"record": celRecord(record)})
	if err != nil {
		return false, fmt.Errorf("CEL eval error in %q: %w", p.expr, err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("CEL expression %q did not return bool", p.expr)
	}
	return result, nil
}

// String returns the source expression.
func (p *celPredicate) String() string {
	return p.expr
}

// celRecord converts record values into types the CEL runtime understands.
func celRecord(record FormRecord) map[string]any {
	out := make(map[string]any, len(record))
	for k, v := range record {
		switch val := v.(type) {
		case FileReference:
			out[k] = map[string]any{"key": val.Key, "name": val.Name, "size": val.Size, "contentType": val.ContentType}
		case FormRecord:
			out[k] = celRecord(val)
		default:
			out[k] = v
		}
	}
	return out
}

// evaluate reports a nil predicate and a failing evaluation as true.
func evaluate(p Predicate, record FormRecord) bool {
	if p == nil {
		return true
	}
	ok, err := p.Evaluate(record)
	if err != nil {
		return true
	}
	return ok
}
