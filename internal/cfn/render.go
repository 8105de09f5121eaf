package cfn

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"sigs.k8s.io/yaml"
)

// Format is a template output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown template format %q (want json or yaml)", s)
	}
}

// Render encodes the template. JSON is indented by two spaces.
func Render(t *Template, format Format) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		data, err := json.MarshalIndent(t, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to render template as JSON: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("failed to render template as YAML: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown template format %q", format)
	}
}

// WriteFile renders the template to path, or to stdout when path is "-".
func WriteFile(t *Template, format Format, path string) error {
	data, err := Render(t, format)
	if err != nil {
		return err
	}
	if path == "-" || path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}
	return nil
}

// FitsInline reports whether body may be passed as TemplateBody.
func FitsInline(body []byte) bool {
	return len(body) <= MaxInlineBodySize
}
