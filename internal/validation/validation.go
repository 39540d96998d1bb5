// Package validation checks request payloads against JSON Schemas generated from table declarations.
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rashikbuksh/Synaptech-Backend/internal/querybuilder"
	"github.com/xeipuuv/gojsonschema"
)

// TimestampPattern matches the "YYYY-MM-DD HH:MM:SS" wire format
const TimestampPattern = `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`

const decimalPattern = `^-?\d+(\.\d+)?$`

// Issue is one violated constraint of a payload
type Issue struct {
	Code    string   `json:"code"`
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

// Error carries every issue found in a payload
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		parts[i] = fmt.Sprintf("%s: %s", strings.Join(is.Path, "."), is.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ErrNoUpdates is returned by Patch when nothing updatable remains in the payload
var ErrNoUpdates = &Error{Issues: []Issue{{Code: "invalid_updates", Path: []string{}, Message: "No updates provided"}}}

// ErrNoRecords is returned when a bulk insert carries an empty array
var ErrNoRecords = &Error{Issues: []Issue{{Code: "too_small", Path: []string{}, Message: "At least one record is required"}}}

// AsError extracts a validation error from err
func AsError(err error) (*Error, bool) {
	var v *Error
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// Validator holds the compiled insert and patch schemas of one table
type Validator struct {
	table  *querybuilder.Table
	insert *gojsonschema.Schema
	patch  *gojsonschema.Schema
}

// ForTable compiles the schemas of t. Overrides replace the declaration of
// the column with the same name, e.g. an id column that also accepts a name.
// It panics when the generated schema does not compile since tables are declared statically.
func ForTable(t *querybuilder.Table, overrides ...querybuilder.Column) *Validator {
	insert, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(Schema(t, true, overrides...)))
	if err != nil {
		panic(fmt.Sprintf("validation: insert schema for %s: %v", t.From(), err))
	}
	patch, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(Schema(t, false, overrides...)))
	if err != nil {
		panic(fmt.Sprintf("validation: patch schema for %s: %v", t.From(), err))
	}
	return &Validator{table: t, insert: insert, patch: patch}
}

// Schema returns the JSON Schema document for t. Insert schemas list the
// required columns; patch schemas require nothing. Generated columns are omitted.
func Schema(t *querybuilder.Table, insert bool, overrides ...querybuilder.Column) map[string]interface{} {
	props := map[string]interface{}{}
	required := []string{}

	replaced := make(map[string]querybuilder.Column, len(overrides))
	for _, o := range overrides {
		replaced[o.Name] = o
	}

	for _, c := range t.Columns() {
		if o, ok := replaced[c.Name]; ok {
			c = o
		}
		if c.Generated() {
			continue
		}
		props[c.Name] = property(c)
		if insert && c.Required {
			required = append(required, c.Name)
		}
	}

	doc := map[string]interface{}{
		"$schema":    "http://json-schema.org/draft-07/schema#",
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		doc["required"] = required
	}
	return doc
}

func property(c querybuilder.Column) map[string]interface{} {
	p := map[string]interface{}{}
	var types []interface{}

	switch c.Type {
	case querybuilder.TypeID:
		types = []interface{}{"string"}
		p["minLength"] = querybuilder.IDLength
		p["maxLength"] = querybuilder.IDLength
	case querybuilder.TypeInteger:
		types = []interface{}{"integer"}
	case querybuilder.TypeDecimal:
		types = []interface{}{"number", "string"}
		p["pattern"] = decimalPattern
	case querybuilder.TypeBoolean:
		types = []interface{}{"boolean"}
	case querybuilder.TypeTimestamp:
		types = []interface{}{"string"}
		p["pattern"] = TimestampPattern
	case querybuilder.TypeEnum:
		types = []interface{}{"string"}
		enum := make([]interface{}, 0, len(c.Enum)+1)
		for _, v := range c.Enum {
			enum = append(enum, v)
		}
		if !c.Required {
			enum = append(enum, nil)
		}
		p["enum"] = enum
	default:
		types = []interface{}{"string"}
	}

	if !c.Required {
		types = append(types, "null")
	}
	if len(types) == 1 {
		p["type"] = types[0]
	} else {
		p["type"] = types
	}
	return p
}

// Strip drops keys the table does not declare and columns the database assigns
func (v *Validator) Strip(payload map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(payload))
	for k, val := range payload {
		c, ok := v.table.Column(k)
		if !ok || c.Generated() {
			continue
		}
		out[k] = val
	}
	return out
}

// Insert validates a full row and returns the stripped payload
func (v *Validator) Insert(payload map[string]interface{}) (map[string]interface{}, error) {
	clean := v.Strip(payload)
	if err := check(v.insert, clean); err != nil {
		return nil, err
	}
	return clean, nil
}

// Patch validates a partial row and returns the stripped payload.
// An empty result is ErrNoUpdates.
func (v *Validator) Patch(payload map[string]interface{}) (map[string]interface{}, error) {
	clean := v.Strip(payload)
	if len(clean) == 0 {
		return nil, ErrNoUpdates
	}
	if err := check(v.patch, clean); err != nil {
		return nil, err
	}
	return clean, nil
}

func check(schema *gojsonschema.Schema, doc map[string]interface{}) error {
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validate payload: %w", err)
	}
	if result.Valid() {
		return nil
	}

	issues := make([]Issue, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		issues = append(issues, toIssue(re))
	}
	sort.SliceStable(issues, func(i, j int) bool {
		return strings.Join(issues[i].Path, ".") < strings.Join(issues[j].Path, ".")
	})
	return &Error{Issues: issues}
}

func toIssue(re gojsonschema.ResultError) Issue {
	field := re.Field()
	if re.Type() == "required" {
		if prop, ok := re.Details()["property"].(string); ok {
			return Issue{Code: "invalid_type", Path: []string{prop}, Message: "Required"}
		}
	}
	path := []string{}
	if field != "" && field != gojsonschema.STRING_CONTEXT_ROOT {
		path = strings.Split(field, ".")
	}
	return Issue{Code: re.Type(), Path: path, Message: re.Description()}
}
