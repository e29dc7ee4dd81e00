// Package meta defines the serializable component metadata document produced
// by the extraction pipeline and consumed by the render-time resolvers.
package meta

import "time"

// RenderKind classifies a prop that expects renderable content. The closed
// set is produced once by the type simplifier and matched exhaustively by
// every consumer; no consumer re-derives kind from raw type strings.
type RenderKind string

const (
	// RenderNone marks a plain data prop.
	RenderNone RenderKind = ""
	// RenderIcon marks a prop expecting an icon-like component constructor.
	RenderIcon RenderKind = "icon"
	// RenderElement marks a prop expecting a pre-built element.
	RenderElement RenderKind = "element"
	// RenderNode marks a prop expecting arbitrary node content.
	RenderNode RenderKind = "node"
)

// Field describes one member of an expanded named object type. Fields nest
// recursively for nested named types.
type Field struct {
	Name     string     `json:"name"`
	Type     string     `json:"type"`
	Optional bool       `json:"optional,omitempty"`
	Values   []string   `json:"values,omitempty"`
	Kind     RenderKind `json:"kind,omitempty"`
	Fields   []Field    `json:"fields,omitempty"`
}

// ArrayItem describes the element type of an array-typed prop.
type ArrayItem struct {
	Type       string  `json:"type"`
	Renderable bool    `json:"renderable,omitempty"`
	Fields     []Field `json:"fields,omitempty"`
}

// PropDescriptor is the simplified model of one component prop.
//
// A prop carries at most one of {Values, Kind, Fields} as its primary
// classification, chosen in precedence order: Kind first, then Values, then
// Fields; otherwise the prop is a primitive.
type PropDescriptor struct {
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	RawType     string     `json:"raw_type,omitempty"`
	Values      []string   `json:"values,omitempty"`
	Required    bool       `json:"required,omitempty"`
	Default     string     `json:"default,omitempty"`
	Description string     `json:"description,omitempty"`
	Kind        RenderKind `json:"kind,omitempty"`
	Elem        *ArrayItem `json:"elem,omitempty"`
	Fields      []Field    `json:"fields,omitempty"`
}

// Wrapper is one ancestor in a component's required wrapper chain,
// outermost first.
type Wrapper struct {
	Name         string            `json:"name"`
	DefaultProps map[string]string `json:"default_props,omitempty"`
}

// Preset is a pre-filled prop/children/wrapper value set parsed from one
// documentation example.
type Preset struct {
	Props        map[string]string   `json:"props,omitempty"`
	Children     string              `json:"children,omitempty"`
	WrapperProps []map[string]string `json:"wrapper_props,omitempty"`
}

// UsageCount holds direct and transitively propagated usage counts.
type UsageCount struct {
	Direct   int `json:"direct"`
	Indirect int `json:"indirect"`
	Total    int `json:"total"`
}

// ComponentDescriptor is the extracted metadata record for one component.
// Display names are unique within a Document after deduplication.
type ComponentDescriptor struct {
	Name            string           `json:"name"`
	FilePath        string           `json:"file_path"`
	Description     string           `json:"description,omitempty"`
	Props           []PropDescriptor `json:"props"`
	AcceptsChildren bool             `json:"accepts_children,omitempty"`
	Wrappers        []Wrapper        `json:"wrappers,omitempty"`
	Presets         []Preset         `json:"presets,omitempty"`
	Examples        []string         `json:"examples,omitempty"`
	Usage           *UsageCount      `json:"usage,omitempty"`
}

// Prop returns the named prop descriptor, or false when absent.
func (c *ComponentDescriptor) Prop(name string) (*PropDescriptor, bool) {
	for i := range c.Props {
		if c.Props[i].Name == name {
			return &c.Props[i], true
		}
	}
	return nil, false
}

// Document is the full metadata document. It is plain structured data (no
// functions, no cycles) because it is written to disk and re-loaded by a
// separate process.
type Document struct {
	GeneratedAt time.Time             `json:"generated_at"`
	Globs       []string              `json:"globs"`
	Aliases     map[string]string     `json:"aliases,omitempty"`
	Components  []ComponentDescriptor `json:"components"`
}
