package handler

import (
	"log"
	"net/http"

	"hostsadmin/internal/codec"
	"hostsadmin/internal/service"
	"hostsadmin/internal/store"
)

// ExportHandler serves document backup and restore for the settings page
type ExportHandler struct {
	store *store.Store
	svc   *service.HostService
}

// NewExportHandler creates a new export handler
func NewExportHandler(st *store.Store, svc *service.HostService) *ExportHandler {
	return &ExportHandler{store: st, svc: svc}
}

// ExportJSON downloads the full document as JSON
func (h *ExportHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	doc, err := h.store.Read()
	if err != nil {
		log.Printf("Failed to export JSON: %v", err)
		writeError(w, "Failed to export", err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=hosts.json")
	if err := codec.NewJSONCodec().Export(doc, w); err != nil {
		log.Printf("Failed to encode export: %v", err)
	}
}

// ExportYAML downloads the full document as YAML
func (h *ExportHandler) ExportYAML(w http.ResponseWriter, r *http.Request) {
	doc, err := h.store.Read()
	if err != nil {
		log.Printf("Failed to export YAML: %v", err)
		writeError(w, "Failed to export", err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/x-yaml")
	w.Header().Set("Content-Disposition", "attachment; filename=hosts.yaml")
	if err := codec.NewYAMLCodec().Export(doc, w); err != nil {
		log.Printf("Failed to encode export: %v", err)
	}
}

// Import replaces the whole document from an uploaded backup. The format
// query parameter selects the codec; json is the default.
func (h *ExportHandler) Import(w http.ResponseWriter, r *http.Request) {
	var importer codec.Importer
	switch r.URL.Query().Get("format") {
	case "", "json":
		importer = codec.NewJSONCodec()
	case "yaml":
		importer = codec.NewYAMLCodec()
	default:
		writeError(w, "Invalid format", "Supported formats: json, yaml", http.StatusBadRequest)
		return
	}

	doc, err := importer.Parse(r.Body)
	if err != nil {
		writeError(w, "Invalid import payload", err.Error(), http.StatusBadRequest)
		return
	}

	hosts, err := h.svc.ReplaceDocument(doc)
	if err != nil {
		log.Printf("Failed to import document: %v", err)
		writeError(w, "Failed to import", err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, hosts, http.StatusOK)
}
