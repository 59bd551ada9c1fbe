package manifest

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/tidwall/jsonc"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/package.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue represents a single validation error from the schema.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/name", "/engines/node")
	Message string // Human-readable error message
	Keyword string // Schema keyword location that failed
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("package.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("package.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Validate validates raw package.json bytes against the embedded schema.
// The error return is for malformed JSON or schema compilation failures;
// schema violations are returned in the ValidationResult.
func Validate(data []byte) (*ValidationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonc.ToJSON(data)))
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	return &ValidationResult{
		Valid:  false,
		Issues: extractIssues(validationErr),
	}, nil
}

// extractIssues flattens the ValidationError tree into its leaves. The
// schema has no combinators, so every leaf names a failed keyword.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	if len(ve.Causes) == 0 {
		return []ValidationIssue{leafIssue(ve)}
	}
	var issues []ValidationIssue
	for _, cause := range ve.Causes {
		issues = append(issues, extractIssues(cause)...)
	}
	return issues
}

func leafIssue(ve *jsonschema.ValidationError) ValidationIssue {
	issue := ValidationIssue{Message: ve.Error()}
	if len(ve.InstanceLocation) > 0 {
		issue.Path = "/" + strings.Join(ve.InstanceLocation, "/")
	}
	if ve.ErrorKind != nil {
		issue.Message = ve.ErrorKind.LocalizedString(printer)
		if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
			issue.Keyword = kw[len(kw)-1]
		}
	}
	return issue
}
