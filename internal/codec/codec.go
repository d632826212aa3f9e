// Package codec serializes the hosts document for the settings-page
// backup and restore feature.
package codec

import (
	"io"

	"hostsadmin/internal/domain"
)

// Importer parses a full document from an external representation
type Importer interface {
	Parse(r io.Reader) (*domain.Document, error)
	Format() string
}

// Exporter writes a full document to an external representation
type Exporter interface {
	Export(doc *domain.Document, w io.Writer) error
	Format() string
}
