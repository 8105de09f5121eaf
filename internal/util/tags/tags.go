package tags

import "sort"

// Standard tag keys.
const (
	KeyProject   = "Project"
	KeyOwner     = "Owner"
	KeyName      = "Name"
	KeyRole      = "Role"
	KeyAttribute = "Attribute"
	KeyManagedBy = "ManagedBy"
)

// ManagedByK8sway marks resources created by this tool.
const ManagedByK8sway = "k8sway"

// Attribute values for subnets.
const (
	AttributePublic  = "public"
	AttributePrivate = "private"
)

// Tag is a single key/value pair.
type Tag struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

// Builder provides a fluent interface for building resource tags.
type Builder struct {
	tags map[string]string
}

// NewBuilder creates a builder with the project, owner and managed-by tags set.
func NewBuilder(project, owner string) *Builder {
	return &Builder{
		tags: map[string]string{
			KeyProject:   project,
			KeyOwner:     owner,
			KeyManagedBy: ManagedByK8sway,
		},
	}
}

// WithName sets the Name tag.
func (b *Builder) WithName(name string) *Builder {
	b.tags[KeyName] = name
	return b
}

// WithRole sets the Role tag.
func (b *Builder) WithRole(role string) *Builder {
	b.tags[KeyRole] = role
	return b
}

// WithAttribute sets the Attribute tag (public or private).
func (b *Builder) WithAttribute(attr string) *Builder {
	b.tags[KeyAttribute] = attr
	return b
}

// With adds an arbitrary tag.
func (b *Builder) With(key, value string) *Builder {
	b.tags[key] = value
	return b
}

// Map returns a copy of the tags as a map.
func (b *Builder) Map() map[string]string {
	out := make(map[string]string, len(b.tags))
	for k, v := range b.tags {
		out[k] = v
	}
	return out
}

// Build returns the tags sorted by key. Empty values are dropped.
func (b *Builder) Build() []Tag {
	out := make([]Tag, 0, len(b.tags))
	for k, v := range b.tags {
		if v == "" {
			continue
		}
		out = append(out, Tag{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
