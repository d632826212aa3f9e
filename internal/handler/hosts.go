package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"hostsadmin/internal/domain"
	"hostsadmin/internal/service"
)

// HostsHandler handles host group and entry API requests
type HostsHandler struct {
	svc *service.HostService
}

// NewHostsHandler creates a new hosts handler
func NewHostsHandler(svc *service.HostService) *HostsHandler {
	return &HostsHandler{svc: svc}
}

// ListHosts returns the full group collection with children
func (h *HostsHandler) ListHosts(w http.ResponseWriter, r *http.Request) {
	hosts, err := h.svc.Hosts()
	if err != nil {
		log.Printf("Failed to list hosts: %v", err)
		writeError(w, "Failed to list hosts", err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, hosts, http.StatusOK)
}

// CreateGroup creates a new host group
func (h *HostsHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var patch domain.GroupPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if patch.Category == nil || *patch.Category == "" {
		writeError(w, "Invalid group", "Category is required", http.StatusBadRequest)
		return
	}

	hosts, err := h.svc.AddGroup(patch)
	if err != nil {
		log.Printf("Failed to create group: %v", err)
		writeError(w, "Failed to create group", err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, hosts, http.StatusCreated)
}

// UpdateGroup merges a partial group over the group for the category in
// the path. Unknown categories are a no-op returning the collection as is.
func (h *HostsHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")

	var patch domain.GroupPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	hosts, err := h.svc.UpdateGroup(category, patch)
	if err != nil {
		log.Printf("Failed to update group: %v", err)
		writeError(w, "Failed to update group", err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, hosts, http.StatusOK)
}

// DeleteGroup removes every group matching the category
func (h *HostsHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	hosts, err := h.svc.DeleteGroup(r.PathValue("category"))
	if err != nil {
		log.Printf("Failed to delete group: %v", err)
		writeError(w, "Failed to delete group", err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, hosts, http.StatusOK)
}

// CreateEntry adds an entry to the category's group, creating the group
// on demand
func (h *HostsHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")

	var patch domain.EntryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	hosts, err := h.svc.AddEntry(category, patch)
	if err != nil {
		log.Printf("Failed to create entry: %v", err)
		writeError(w, "Failed to create entry", err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, hosts, http.StatusCreated)
}

// UpdateEntry merges a partial entry; a changed category moves the entry
// to the destination group. Missing group or entry maps to 404.
func (h *HostsHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	entryID := r.PathValue("id")

	var patch domain.EntryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	hosts, err := h.svc.UpdateEntry(category, entryID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrGroupNotFound) || errors.Is(err, domain.ErrEntryNotFound) {
			writeError(w, "Not found", err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("Failed to update entry: %v", err)
		writeError(w, "Failed to update entry", err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, hosts, http.StatusOK)
}

// DeleteEntry removes an entry; missing group or entry is a no-op
func (h *HostsHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	hosts, err := h.svc.DeleteEntry(r.PathValue("category"), r.PathValue("id"))
	if err != nil {
		log.Printf("Failed to delete entry: %v", err)
		writeError(w, "Failed to delete entry", err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, hosts, http.StatusOK)
}
