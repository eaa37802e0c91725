package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"strconv"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/gitlink/internal/errors"
	"github.com/thoreinstein/gitlink/internal/validator"
	"github.com/thoreinstein/gitlink/pkg/fileutil"
)

//go:embed schema/manifest.schema.json
var schemaBytes []byte

const schemaURL = "manifest.schema.json"

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// Schema returns the JSON Schema manifests are checked against.
func Schema() []byte {
	return bytes.Clone(schemaBytes)
}

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = errors.Wrap(err, "unmarshaling schema JSON")
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = errors.Wrap(err, "adding schema resource")
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
		if compileErr != nil {
			compileErr = errors.Wrap(compileErr, "compiling schema")
		}
	})
	return compiledSchema, compileErr
}

// ValidateSchema checks raw manifest data against Schema. Issues are
// reported in the result; the error is for undecodable input.
func ValidateSchema(data []byte, format Format) (*validator.Result, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, err
	}

	var raw any
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	case FormatTOML:
		err = toml.Unmarshal(data, &raw)
	default:
		return nil, errors.Wrapf(errors.ErrInvalidManifest, "unknown format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.Mark(err, errors.ErrInvalidManifest), "decoding manifest")
	}
	if raw == nil {
		raw = map[string]any{}
	}

	// Round-trip through JSON so numbers reach the validator as json.Number.
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.Wrap(errors.Mark(err, errors.ErrInvalidManifest), "converting manifest to JSON")
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, errors.Wrap(err, "preparing manifest for validation")
	}

	result := &validator.Result{}
	err = schema.Validate(inst)
	if err == nil {
		return result, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, errors.Wrap(err, "validating manifest")
	}

	seen := make(map[string]bool)
	collectIssues(ve, result, seen)
	if len(result.Issues) == 0 {
		result.AddError(validator.NoEntry, "", ve.Error(), nil)
	}
	return result, nil
}

// collectIssues adds the leaf errors of the tree to result.
func collectIssues(ve *jsonschema.ValidationError, result *validator.Result, seen map[string]bool) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, result, seen)
		}
		return
	}
	if ve.ErrorKind == nil {
		return
	}

	keyword := ""
	if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
		keyword = kw[len(kw)-1]
	}
	if keyword == "" || keyword == "allOf" || keyword == "$ref" {
		return
	}

	entry, field := locate(ve.InstanceLocation)
	msg := ve.ErrorKind.LocalizedString(printer)
	key := strconv.Itoa(entry) + "|" + field + "|" + msg
	if seen[key] {
		return
	}
	seen[key] = true
	result.AddError(entry, field, msg, nil)
}

// locate maps a JSON pointer into the manifest to an entry index and the
// field path below it.
func locate(loc []string) (int, string) {
	if len(loc) >= 2 && loc[0] == "entries" {
		if i, err := strconv.Atoi(loc[1]); err == nil {
			return i, strings.Join(loc[2:], "/")
		}
	}
	return validator.NoEntry, strings.Join(loc, "/")
}

// CheckFile validates the manifest at path against the schema and, when
// that passes, decodes it and applies Validate.
func CheckFile(path string) (*validator.Result, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := fileutil.ReadFileWithLimit(path, MaxSize)
	if err != nil {
		return nil, errors.Wrapf(err, "reading manifest %s", path)
	}

	result, err := ValidateSchema(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "manifest %s", path)
	}
	if result.HasErrors() {
		return result, nil
	}

	m, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing manifest %s", path)
	}
	result.Issues = append(result.Issues, Validate(m).Issues...)
	return result, nil
}
