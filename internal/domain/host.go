package domain

// HostGroup is one category's bucket of host entries.
//
// Category is the lookup key used by nearly all repository operations and
// is expected (not enforced) to match a value in the categories vocabulary.
// ID is assigned at creation and never changes.
type HostGroup struct {
	ID          string      `json:"id"`
	Category    string      `json:"category"`
	LastUpdated string      `json:"lastUpdated"`
	IsGroup     bool        `json:"isGroup"`
	Children    []HostEntry `json:"children"`
}

// HostEntry is a single record inside a group: either a hosts-file mapping
// blob or a comment placeholder.
//
// HostContent is opaque text. It may span multiple lines and contain
// #-prefixed comment lines; it is never parsed. Category mirrors the owning
// group's category at creation time but can diverge transiently while an
// entry moves between groups.
type HostEntry struct {
	ID          string `json:"id"`
	HostContent string `json:"hostContent"`
	Title       string `json:"title,omitempty"`
	Category    string `json:"category"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	LastUpdated string `json:"lastUpdated"`
	IsComment   bool   `json:"isComment,omitempty"`
	CommentText string `json:"commentText,omitempty"`
	Image       string `json:"image,omitempty"`
	Color       string `json:"color,omitempty"`
}

// FindChild returns the index of the entry with the given id, or -1.
func (g *HostGroup) FindChild(entryID string) int {
	for i := range g.Children {
		if g.Children[i].ID == entryID {
			return i
		}
	}
	return -1
}

// GroupPatch is a partial update for a HostGroup. Nil fields are left
// unchanged. ID and LastUpdated are never patchable.
type GroupPatch struct {
	Category *string      `json:"category,omitempty"`
	Children *[]HostEntry `json:"children,omitempty"`
}

// Apply merges the patch over the group in place.
func (p GroupPatch) Apply(g *HostGroup) {
	if p.Category != nil {
		g.Category = *p.Category
	}
	if p.Children != nil {
		g.Children = *p.Children
	}
}

// EntryPatch is a partial update for a HostEntry. Nil fields are left
// unchanged. ID and LastUpdated are never patchable.
type EntryPatch struct {
	HostContent *string `json:"hostContent,omitempty"`
	Title       *string `json:"title,omitempty"`
	Category    *string `json:"category,omitempty"`
	Type        *string `json:"type,omitempty"`
	Description *string `json:"description,omitempty"`
	IsComment   *bool   `json:"isComment,omitempty"`
	CommentText *string `json:"commentText,omitempty"`
	Image       *string `json:"image,omitempty"`
	Color       *string `json:"color,omitempty"`
}

// Apply merges the patch over the entry in place.
func (p EntryPatch) Apply(e *HostEntry) {
	if p.HostContent != nil {
		e.HostContent = *p.HostContent
	}
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.IsComment != nil {
		e.IsComment = *p.IsComment
	}
	if p.CommentText != nil {
		e.CommentText = *p.CommentText
	}
	if p.Image != nil {
		e.Image = *p.Image
	}
	if p.Color != nil {
		e.Color = *p.Color
	}
}

// MovesTo reports whether the patch moves the entry out of the group
// currently keyed by category, returning the destination category.
func (p EntryPatch) MovesTo(category string) (string, bool) {
	if p.Category != nil && *p.Category != category {
		return *p.Category, true
	}
	return "", false
}
