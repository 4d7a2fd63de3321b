package model

import "time"

// Entry is one list entry. Entries are ordered by Rank (lexicographic), then
// CreatedAt, then ID.
type Entry struct {
	ID    string `json:"id"`
	Rank  string `json:"rank"`
	Title string `json:"title"`
	// Body is markdown shown in the entry's expanded region.
	Body string `json:"body,omitempty"`
	Done bool   `json:"done"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ViewState is the persisted, per-store state of the list view: which
// entries are selected and expanded, and the expansion policy.
type ViewState struct {
	Version int `json:"version"`

	SelectedIDs []string `json:"selectedIds,omitempty"`
	ExpandedIDs []string `json:"expandedIds,omitempty"`

	Exclusive              bool `json:"exclusive,omitempty"`
	UnlockExpanded         bool `json:"unlockExpanded,omitempty"`
	CollapseOnOutsidePress bool `json:"collapseOnOutsidePress,omitempty"`

	// ScrollOffset is the first visible line of the list viewport.
	ScrollOffset int `json:"scrollOffset,omitempty"`

	// Saved is set when the state was read from disk rather than defaulted.
	Saved bool `json:"-"`
}
