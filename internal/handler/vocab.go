package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"hostsadmin/internal/service"
)

// VocabHandler handles category and type API requests
type VocabHandler struct {
	svc *service.VocabularyService
}

// NewVocabHandler creates a new vocabulary handler
func NewVocabHandler(svc *service.VocabularyService) *VocabHandler {
	return &VocabHandler{svc: svc}
}

type vocabValueRequest struct {
	Value string `json:"value"`
}

// ListCategories returns the ordered category list
func (h *VocabHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories()
	if err != nil {
		log.Printf("Failed to list categories: %v", err)
		writeError(w, "Failed to list categories", err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, categories, http.StatusOK)
}

// AddCategory appends a category; adding an existing value is a no-op
func (h *VocabHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var req vocabValueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if req.Value == "" {
		writeError(w, "Invalid category", "Value is required", http.StatusBadRequest)
		return
	}

	categories, err := h.svc.AddCategory(req.Value)
	if err != nil {
		log.Printf("Failed to add category: %v", err)
		writeError(w, "Failed to add category", err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, categories, http.StatusOK)
}

// UpdateCategory renames a category, cascading into all referencing
// groups and entries. Renaming an absent value is a no-op.
func (h *VocabHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	oldValue := r.PathValue("value")

	var req vocabValueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if req.Value == "" {
		writeError(w, "Invalid category", "Value is required", http.StatusBadRequest)
		return
	}

	categories, err := h.svc.UpdateCategory(oldValue, req.Value)
	if err != nil {
		log.Printf("Failed to update category: %v", err)
		writeError(w, "Failed to update category", err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, categories, http.StatusOK)
}

// DeleteCategory removes a category from the vocabulary. Groups and
// entries still referencing it are deliberately left untouched.
func (h *VocabHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.DeleteCategory(r.PathValue("value"))
	if err != nil {
		log.Printf("Failed to delete category: %v", err)
		writeError(w, "Failed to delete category", err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, categories, http.StatusOK)
}

// ListTypes returns the ordered type list
func (h *VocabHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.svc.Types()
	if err != nil {
		log.Printf("Failed to list types: %v", err)
		writeError(w, "Failed to list types", err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, types, http.StatusOK)
}

// AddType appends a type; adding an existing value is a no-op
func (h *VocabHandler) AddType(w http.ResponseWriter, r *http.Request) {
	var req vocabValueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if req.Value == "" {
		writeError(w, "Invalid type", "Value is required", http.StatusBadRequest)
		return
	}

	types, err := h.svc.AddType(req.Value)
	if err != nil {
		log.Printf("Failed to add type: %v", err)
		writeError(w, "Failed to add type", err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, types, http.StatusOK)
}

// UpdateType renames a type, cascading into all referencing entries
func (h *VocabHandler) UpdateType(w http.ResponseWriter, r *http.Request) {
	oldValue := r.PathValue("value")

	var req vocabValueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if req.Value == "" {
		writeError(w, "Invalid type", "Value is required", http.StatusBadRequest)
		return
	}

	types, err := h.svc.UpdateType(oldValue, req.Value)
	if err != nil {
		log.Printf("Failed to update type: %v", err)
		writeError(w, "Failed to update type", err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, types, http.StatusOK)
}

// DeleteType removes a type from the vocabulary. Entries referencing it
// keep their type value.
func (h *VocabHandler) DeleteType(w http.ResponseWriter, r *http.Request) {
	types, err := h.svc.DeleteType(r.PathValue("value"))
	if err != nil {
		log.Printf("Failed to delete type: %v", err)
		writeError(w, "Failed to delete type", err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, types, http.StatusOK)
}
