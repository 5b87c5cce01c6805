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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/casurance/intake/internal/wizard"
)

const schemaBaseURL = "https://casurance.local/schemas/products/"

// PayloadErrorKey is the field error key used for violations not tied to one field.
const PayloadErrorKey = "_payload"

func kindSchema(f wizard.FieldRule) map[string]any {
	switch f.Kind {
	case wizard.KindNumber:
		return map[string]any{"type": []string{"number", "string"}}
	case wizard.KindBoolean:
		return map[string]any{"type": []string{"boolean", "string"}}
	case wizard.KindFile:
		return map[string]any{
			"type": []string{"object", "null"},
			"properties": map[string]any{
				"key":         map[string]any{"type": "string"},
				"name":        map[string]any{"type": "string"},
				"size":        map[string]any{"type": "number"},
				"contentType": map[string]any{"type": "string"},
			},
		}
	case wizard.KindSelect:
		enum := append([]string{""}, f.Options...)
		return map[string]any{"type": "string", "enum": enum}
	default:
		return map[string]any{"type": "string", "maxLength": 5000}
	}
}

// buildSchema renders a closed object schema admitting exactly the declared fields.
func buildSchema(def *wizard.Definition) ([]byte, error) {
	properties := map[string]any{}
	for _, f := range def.Fields() {
		properties[f.Name] = kindSchema(f)
	}
	schema := map[string]any{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"title":                def.Product,
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	return json.MarshalIndent(schema, "", "  ")
}

func (p *Product) compileSchema() error {
	raw, err := buildSchema(p.definition)
	if err != nil {
		return fmt.Errorf("failed to render schema for %s: %w", p.Type, err)
	}
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	url := schemaBaseURL + string(p.Type) + ".schema.json"
	if err := c.AddResource(url, bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("failed to load schema for %s: %w", p.Type, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return fmt.Errorf("failed to compile schema for %s: %w", p.Type, err)
	}
	p.schema = compiled
	p.schemaJSON = raw
	return nil
}

// ValidatePayload checks the record against the product schema.
// It returns nil when the record conforms, otherwise messages keyed by field name.
func (p *Product) ValidatePayload(record wizard.FormRecord) map[string]string {
	doc, err := toJSONValue(record)
	if err != nil {
		return map[string]string{PayloadErrorKey: "payload is not valid JSON"}
	}
	err = p.schema.Validate(doc)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return map[string]string{PayloadErrorKey: err.Error()}
	}
	out := map[string]string{}
	collectSchemaErrors(verr, out)
	if len(out) == 0 {
		out[PayloadErrorKey] = verr.Message
	}
	return out
}

func collectSchemaErrors(verr *jsonschema.ValidationError, out map[string]string) {
	if len(verr.Causes) == 0 {
		key := strings.TrimPrefix(verr.InstanceLocation, "/")
		if i := strings.Index(key, "/"); i >= 0 {
			key = key[:i]
		}
		if key == "" {
			key = PayloadErrorKey
		}
		if _, seen := out[key]; !seen {
			out[key] = verr.Message
		}
		return
	}
	causes := append([]*jsonschema.ValidationError(nil), verr.Causes...)
	sort.Slice(causes, func(i, j int) bool { return causes[i].InstanceLocation < causes[j].InstanceLocation })
	for _, c := range causes {
		collectSchemaErrors(c, out)
	}
}

// toJSONValue converts a record to the plain values produced by encoding/json.
func toJSONValue(record wizard.FormRecord) (any, error) {
	raw, err := json.Marshal(map[string]any(record))
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
