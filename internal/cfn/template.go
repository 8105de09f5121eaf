package cfn

import (
	"fmt"
	"sort"
)

// FormatVersion is the only template format version CloudFormation accepts.
const FormatVersion = "2010-09-09"

// MaxInlineBodySize is the largest template CloudFormation accepts in the
// TemplateBody parameter. Larger templates go through S3.
const MaxInlineBodySize = 51200

// Template is a CloudFormation template.
type Template struct {
	AWSTemplateFormatVersion string                                  `json:"AWSTemplateFormatVersion"`
	Description              string                                  `json:"Description,omitempty"`
	Parameters               map[string]Parameter                    `json:"Parameters,omitempty"`
	Mappings                 map[string]map[string]map[string]string `json:"Mappings,omitempty"`
	Resources                map[string]Resource                     `json:"Resources"`
	Outputs                  map[string]Output                       `json:"Outputs,omitempty"`
}

// Parameter is a template input.
type Parameter struct {
	Type        string `json:"Type"`
	Default     string `json:"Default,omitempty"`
	Description string `json:"Description,omitempty"`
}

// Resource is one entry of the Resources section.
type Resource struct {
	Type       string         `json:"Type"`
	DependsOn  []string       `json:"DependsOn,omitempty"`
	Properties map[string]any `json:"Properties,omitempty"`
}

// Output is one entry of the Outputs section.
type Output struct {
	Description string  `json:"Description,omitempty"`
	Value       any     `json:"Value"`
	Export      *Export `json:"Export,omitempty"`
}

// Export names a cross-stack output.
type Export struct {
	Name any `json:"Name"`
}

// NewTemplate returns an empty template.
func NewTemplate(description string) *Template {
	return &Template{
		AWSTemplateFormatVersion: FormatVersion,
		Description:              description,
		Parameters:               make(map[string]Parameter),
		Mappings:                 make(map[string]map[string]map[string]string),
		Resources:                make(map[string]Resource),
		Outputs:                  make(map[string]Output),
	}
}

// AddResource adds a resource under a logical ID that must be unused.
func (t *Template) AddResource(id string, r Resource) error {
	if id == "" {
		return fmt.Errorf("resource of type %s has no logical ID", r.Type)
	}
	if _, ok := t.Resources[id]; ok {
		return fmt.Errorf("duplicate logical ID %q", id)
	}
	t.Resources[id] = r
	return nil
}

// AddParameter adds a template parameter.
func (t *Template) AddParameter(id string, p Parameter) error {
	if _, ok := t.Parameters[id]; ok {
		return fmt.Errorf("duplicate parameter %q", id)
	}
	t.Parameters[id] = p
	return nil
}

// AddOutput adds a template output.
func (t *Template) AddOutput(id string, o Output) error {
	if _, ok := t.Outputs[id]; ok {
		return fmt.Errorf("duplicate output %q", id)
	}
	t.Outputs[id] = o
	return nil
}

// ResourcesOfType returns the logical IDs of every resource of the given
// type, sorted.
func (t *Template) ResourcesOfType(resourceType string) []string {
	var ids []string
	for id, r := range t.Resources {
		if r.Type == resourceType {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
