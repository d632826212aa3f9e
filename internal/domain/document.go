package domain

// Document is the single persisted unit: all host groups plus the two
// controlled vocabularies.
type Document struct {
	Hosts      []HostGroup `json:"hosts"`
	Categories []string    `json:"categories"`
	Types      []string    `json:"types"`
}

// Seed vocabularies used when no document exists yet or a persisted field
// is missing/malformed.
var (
	DefaultCategories = []string{"platform", "operations"}
	DefaultTypes      = []string{"frontend", "backend", "database", "cache", "other"}
)

// DefaultDocument returns a freshly seeded document.
func DefaultDocument() *Document {
	return &Document{
		Hosts:      []HostGroup{},
		Categories: append([]string(nil), DefaultCategories...),
		Types:      append([]string(nil), DefaultTypes...),
	}
}

// FindGroup returns the index of the first group whose category matches,
// or -1. Lookups are by exact string equality.
func (d *Document) FindGroup(category string) int {
	for i := range d.Hosts {
		if d.Hosts[i].Category == category {
			return i
		}
	}
	return -1
}
