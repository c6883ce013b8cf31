// Package searchindex declares the document schema a separate indexing
// pipeline must satisfy when writing test-result documents. The schema
// is a passive contract: nothing in this module reads or writes the
// index at run time.
package searchindex

import (
	"encoding/json"
	"fmt"
	"strings"
)

type FieldType string

const (
	FieldTypeKeyword FieldType = "keyword"
	FieldTypeText    FieldType = "text"
	FieldTypeNested  FieldType = "nested"
	FieldTypeLong    FieldType = "long"
	FieldTypeDate    FieldType = "date"
	FieldTypeBoolean FieldType = "boolean"
)

const (
	AnalyzerFuzzy  = "result_fuzzy"
	AnalyzerPrefix = "result_prefix"
)

// FieldMapping describes one field. Fields holds multi-field variants
// (alternate analyses of the same value); Properties holds the child
// fields of a nested type.
type FieldMapping struct {
	Type       FieldType               `json:"type"`
	Analyzer   string                  `json:"analyzer,omitempty"`
	Fields     map[string]FieldMapping `json:"fields,omitempty"`
	Properties map[string]FieldMapping `json:"properties,omitempty"`
}

// Analyzer is a named analysis chain referenced by text fields.
type Analyzer struct {
	Tokenizer string   `json:"tokenizer"`
	Filters   []string `json:"filter,omitempty"`
}

type Tokenizer struct {
	Type    string `json:"type"`
	MinGram int    `json:"min_gram,omitempty"`
	MaxGram int    `json:"max_gram,omitempty"`
}

// IndexMapping is the full index contract: analysis settings plus the
// per-field mappings.
type IndexMapping struct {
	Analyzers  map[string]Analyzer     `json:"analyzers"`
	Tokenizers map[string]Tokenizer    `json:"tokenizers"`
	Properties map[string]FieldMapping `json:"properties"`
}

// TestResultMapping returns the schema for test-result documents. Name
// carries fuzzy and prefix sub-fields so searches tolerate typos and
// match as the user types; identity and filter fields stay keyword.
func TestResultMapping() IndexMapping {
	return IndexMapping{
		Analyzers: map[string]Analyzer{
			AnalyzerFuzzy: {
				Tokenizer: "result_ngram",
				Filters:   []string{"lowercase"},
			},
			AnalyzerPrefix: {
				Tokenizer: "result_edge_ngram",
				Filters:   []string{"lowercase"},
			},
		},
		Tokenizers: map[string]Tokenizer{
			"result_ngram":      {Type: "ngram", MinGram: 3, MaxGram: 4},
			"result_edge_ngram": {Type: "edge_ngram", MinGram: 1, MaxGram: 20},
		},
		Properties: map[string]FieldMapping{
			"id":     {Type: FieldTypeKeyword},
			"suite":  {Type: FieldTypeKeyword},
			"status": {Type: FieldTypeKeyword},
			"tags":   {Type: FieldTypeKeyword},
			"name": {
				Type: FieldTypeText,
				Fields: map[string]FieldMapping{
					"fuzzy":  {Type: FieldTypeText, Analyzer: AnalyzerFuzzy},
					"prefix": {Type: FieldTypeText, Analyzer: AnalyzerPrefix},
					"raw":    {Type: FieldTypeKeyword},
				},
			},
			"error_message": {
				Type: FieldTypeText,
				Fields: map[string]FieldMapping{
					"fuzzy": {Type: FieldTypeText, Analyzer: AnalyzerFuzzy},
				},
			},
			"duration_ms": {Type: FieldTypeLong},
			"flaky":       {Type: FieldTypeBoolean},
			"executed_at": {Type: FieldTypeDate},
			"steps": {
				Type: FieldTypeNested,
				Properties: map[string]FieldMapping{
					"name":        {Type: FieldTypeText, Analyzer: AnalyzerPrefix},
					"status":      {Type: FieldTypeKeyword},
					"duration_ms": {Type: FieldTypeLong},
				},
			},
		},
	}
}

// Validate checks internal consistency: every analyzer a field
// references must be declared, and every analyzer's tokenizer must
// exist.
func (m IndexMapping) Validate() error {
	for name, analyzer := range m.Analyzers {
		if _, ok := m.Tokenizers[analyzer.Tokenizer]; !ok {
			return fmt.Errorf("searchindex: analyzer %q references unknown tokenizer %q", name, analyzer.Tokenizer)
		}
	}
	return validateFields("", m.Properties, m.Analyzers)
}

// RenderJSON serializes the mapping for the indexing pipeline.
func (m IndexMapping) RenderJSON() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return json.MarshalIndent(m, "", "  ")
}

func validateFields(path string, fields map[string]FieldMapping, analyzers map[string]Analyzer) error {
	for name, field := range fields {
		fieldPath := name
		if path != "" {
			fieldPath = path + "." + name
		}
		if strings.TrimSpace(string(field.Type)) == "" {
			return fmt.Errorf("searchindex: field %q has no type", fieldPath)
		}
		if field.Analyzer != "" {
			if field.Type != FieldTypeText {
				return fmt.Errorf("searchindex: field %q sets an analyzer on non-text type %q", fieldPath, field.Type)
			}
			if _, ok := analyzers[field.Analyzer]; !ok {
				return fmt.Errorf("searchindex: field %q references unknown analyzer %q", fieldPath, field.Analyzer)
			}
		}
		if field.Type == FieldTypeNested && len(field.Properties) == 0 {
			return fmt.Errorf("searchindex: nested field %q has no properties", fieldPath)
		}
		if err := validateFields(fieldPath, field.Fields, analyzers); err != nil {
			return err
		}
		if err := validateFields(fieldPath, field.Properties, analyzers); err != nil {
			return err
		}
	}
	return nil
}
