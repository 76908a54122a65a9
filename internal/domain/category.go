package domain

import "strings"

// CategoryNode is a single entry of the marketplace menu tree.
type CategoryNode struct {
	ID       int64          `json:"id,omitempty"`
	Name     string         `json:"name,omitempty"`
	URL      string         `json:"url"`             // Path like "/catalog/elektronika/smartfony-i-telefony"
	Shard    string         `json:"shard,omitempty"` // Internal category code used by the listing endpoint
	Query    string         `json:"query,omitempty"` // Subject query string like "subject=515;516"
	Children []CategoryNode `json:"childs,omitempty"`
}

// HasChildren reports whether the node can be descended into.
func (n *CategoryNode) HasChildren() bool {
	return len(n.Children) > 0
}

// LastSegment returns the trailing path segment of the node url.
func (n *CategoryNode) LastSegment() string {
	trimmed := strings.TrimRight(n.URL, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}

// SubjectID extracts the subject id from the node query, e.g. "kind=2&subject=515;516" -> "515;516".
func (n *CategoryNode) SubjectID() string {
	for _, part := range strings.Split(n.Query, "&") {
		if value, ok := strings.CutPrefix(part, "subject="); ok {
			return value
		}
	}
	return ""
}

// CatalogTree is the whole menu: a synthetic root whose children are the top-level nodes.
func CatalogTree(topLevel []CategoryNode) *CategoryNode {
	return &CategoryNode{Children: topLevel}
}
