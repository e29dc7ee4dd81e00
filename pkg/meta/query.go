package meta

import "strings"

// QueryService provides read-only query methods over a loaded document.
type QueryService struct {
	Doc   *Document
	Index *Index
}

// NewQueryService creates a QueryService from a validated document and its
// index.
func NewQueryService(doc *Document, idx *Index) *QueryService {
	return &QueryService{Doc: doc, Index: idx}
}

// LoadAndQuery loads a document from file and returns a ready-to-use
// QueryService.
func LoadAndQuery(path string) (*QueryService, error) {
	doc, idx, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	return NewQueryService(doc, idx), nil
}

// Get returns the named component, or false when absent.
func (q *QueryService) Get(name string) (*ComponentDescriptor, bool) {
	c, ok := q.Index.ComponentByName[name]
	return c, ok
}

// List returns all components, optionally filtered by a keyword matched
// case-insensitively against name and description.
func (q *QueryService) List(keyword string) []*ComponentDescriptor {
	keyword = strings.ToLower(keyword)

	out := make([]*ComponentDescriptor, 0, len(q.Doc.Components))
	for i := range q.Doc.Components {
		c := &q.Doc.Components[i]
		if keyword != "" &&
			!strings.Contains(strings.ToLower(c.Name), keyword) &&
			!strings.Contains(strings.ToLower(c.Description), keyword) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Search ranks components by match quality: exact name, name prefix, name
// substring, then description substring. Results keep document order within
// each tier.
func (q *QueryService) Search(term string) []*ComponentDescriptor {
	term = strings.ToLower(term)
	if term == "" {
		return q.List("")
	}

	var exact, prefix, substr, desc []*ComponentDescriptor
	for i := range q.Doc.Components {
		c := &q.Doc.Components[i]
		name := strings.ToLower(c.Name)
		switch {
		case name == term:
			exact = append(exact, c)
		case strings.HasPrefix(name, term):
			prefix = append(prefix, c)
		case strings.Contains(name, term):
			substr = append(substr, c)
		case strings.Contains(strings.ToLower(c.Description), term):
			desc = append(desc, c)
		}
	}

	out := make([]*ComponentDescriptor, 0, len(exact)+len(prefix)+len(substr)+len(desc))
	out = append(out, exact...)
	out = append(out, prefix...)
	out = append(out, substr...)
	out = append(out, desc...)
	return out
}
