// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/teradata-labs/cyberwallet/pkg/color"
)

type deepOptions struct {
	input  string // json or yaml; empty infers from the file extension
	output string // json or yaml; empty matches the input
	schema string // JSON Schema (json or yaml) the input must satisfy
	strict bool
}

func newDeepCmd(a *app) *cobra.Command {
	opts := &deepOptions{}
	cmd := &cobra.Command{
		Use:   "deep <file|->",
		Short: "Convert every OKLCH string in a JSON or YAML style document",
		Long: heredoc.Doc(`
			Read a style document (a JSON or YAML mapping), convert every OKLCH
			string at any depth and write the result to stdout. Other values are
			copied unchanged. Use "-" to read from stdin.
		`),
		Example: heredoc.Doc(`
			cwcolor deep tokens.json
			cwcolor --output-format hsl deep --output yaml tokens.yaml
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeep(cmd, a, opts, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.input, "input", "", "Input format: json, yaml (default: from extension)")
	cmd.Flags().StringVar(&opts.output, "output", "", "Output format: json, yaml (default: same as input)")
	cmd.Flags().StringVar(&opts.schema, "schema", "", "Validate the input against a JSON Schema file before converting")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail on malformed colors, unsupported values or excessive nesting")
	return cmd
}

func runDeep(cmd *cobra.Command, a *app, opts *deepOptions, name string) error {
	var data []byte
	var err error
	if name == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	in := opts.input
	if in == "" {
		in = inferFormat(name)
	}
	doc, err := decodeStyle(data, in)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	if opts.schema != "" {
		if err := validateStyle(doc, opts.schema); err != nil {
			return err
		}
	}

	conv := a.converter()
	var converted color.StyleMap
	if opts.strict {
		converted, err = conv.DeepConvertChecked(doc)
		if err != nil {
			return err
		}
	} else {
		converted = conv.DeepConvert(doc)
	}

	outFormat := opts.output
	if outFormat == "" {
		outFormat = in
	}
	encoded, err := encodeStyle(converted, outFormat)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(encoded)
	return err
}

func inferFormat(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

func decodeStyle(data []byte, format string) (color.StyleMap, error) {
	var doc map[string]any
	switch format {
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, err
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown input format %q (want json or yaml)", format)
	}
	if doc == nil {
		return nil, fmt.Errorf("document is not a mapping")
	}
	return color.StyleMap(doc), nil
}

func encodeStyle(m color.StyleMap, format string) ([]byte, error) {
	switch format {
	case "json":
		out, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode json: %w", err)
		}
		return append(out, '\n'), nil
	case "yaml":
		out, err := yaml.Marshal(map[string]any(m))
		if err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}

// validateStyle checks doc against the JSON Schema stored at path.
func validateStyle(doc color.StyleMap, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read schema %s: %w", path, err)
	}
	schema, err := decodeStyle(data, inferFormat(path))
	if err != nil {
		return fmt.Errorf("failed to decode schema %s: %w", path, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(map[string]any(schema)),
		gojsonschema.NewGoLoader(map[string]any(doc)),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if !result.Valid() {
		problems := make([]string, len(result.Errors()))
		for i, e := range result.Errors() {
			problems[i] = e.String()
		}
		return fmt.Errorf("style document does not match schema: %s", strings.Join(problems, "; "))
	}
	return nil
}
