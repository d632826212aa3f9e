package codec

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"hostsadmin/internal/domain"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlDocument mirrors domain.Document with yaml field names matching the
// persisted JSON keys, so an exported file round-trips cleanly.
type yamlDocument struct {
	Hosts      []yamlGroup `yaml:"hosts"`
	Categories []string    `yaml:"categories"`
	Types      []string    `yaml:"types"`
}

type yamlGroup struct {
	ID          string      `yaml:"id"`
	Category    string      `yaml:"category"`
	LastUpdated string      `yaml:"lastUpdated"`
	IsGroup     bool        `yaml:"isGroup"`
	Children    []yamlEntry `yaml:"children"`
}

type yamlEntry struct {
	ID          string `yaml:"id"`
	HostContent string `yaml:"hostContent"`
	Title       string `yaml:"title,omitempty"`
	Category    string `yaml:"category"`
	Type        string `yaml:"type,omitempty"`
	Description string `yaml:"description,omitempty"`
	LastUpdated string `yaml:"lastUpdated"`
	IsComment   bool   `yaml:"isComment,omitempty"`
	CommentText string `yaml:"commentText,omitempty"`
	Image       string `yaml:"image,omitempty"`
	Color       string `yaml:"color,omitempty"`
}

// Parse imports a document from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Document, error) {
	var yd yamlDocument
	if err := yaml.NewDecoder(r).Decode(&yd); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	doc := &domain.Document{
		Hosts:      make([]domain.HostGroup, 0, len(yd.Hosts)),
		Categories: yd.Categories,
		Types:      yd.Types,
	}
	for _, g := range yd.Hosts {
		doc.Hosts = append(doc.Hosts, fromYAMLGroup(g))
	}
	return doc, nil
}

// Export writes the document as YAML
func (c *YAMLCodec) Export(doc *domain.Document, w io.Writer) error {
	yd := yamlDocument{
		Hosts:      make([]yamlGroup, 0, len(doc.Hosts)),
		Categories: doc.Categories,
		Types:      doc.Types,
	}
	for _, g := range doc.Hosts {
		yd.Hosts = append(yd.Hosts, toYAMLGroup(g))
	}

	encoder := yaml.NewEncoder(w)
	defer encoder.Close()

	if err := encoder.Encode(yd); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return nil
}

func toYAMLGroup(g domain.HostGroup) yamlGroup {
	out := yamlGroup{
		ID:          g.ID,
		Category:    g.Category,
		LastUpdated: g.LastUpdated,
		IsGroup:     g.IsGroup,
		Children:    make([]yamlEntry, 0, len(g.Children)),
	}
	for _, e := range g.Children {
		out.Children = append(out.Children, yamlEntry(e))
	}
	return out
}

func fromYAMLGroup(g yamlGroup) domain.HostGroup {
	out := domain.HostGroup{
		ID:          g.ID,
		Category:    g.Category,
		LastUpdated: g.LastUpdated,
		IsGroup:     g.IsGroup,
		Children:    make([]domain.HostEntry, 0, len(g.Children)),
	}
	for _, e := range g.Children {
		out.Children = append(out.Children, domain.HostEntry(e))
	}
	return out
}
