package org

// Headline is one node of a document's outline tree. Children are nested
// in document order; Level lives on the embedded Title.
type Headline struct {
	ID         string            `json:"id"`
	DocumentID string            `json:"document_id"`
	Title      Title             `json:"title"`
	Content    string            `json:"content"`
	Properties map[string]string `json:"properties,omitempty"`
	Children   []*Headline       `json:"children,omitempty"`
	Etag       string            `json:"etag"`
}

// NewHeadline creates a headline with the given title and body content.
func NewHeadline(title Title, content string) *Headline {
	return &Headline{
		Title:      title,
		Content:    content,
		Properties: make(map[string]string),
	}
}

// IsTask reports whether the headline carries a TODO keyword.
func (h *Headline) IsTask() bool { return h.Title.TodoKeyword != "" }

// IsNote reports whether the headline carries no TODO keyword.
// Exactly one of IsTask/IsNote holds for every headline.
func (h *Headline) IsNote() bool { return !h.IsTask() }

// Property returns the value for key from the headline's property drawer,
// falling back to title-level properties.
func (h *Headline) Property(key string) string {
	if v, ok := h.Properties[key]; ok {
		return v
	}
	return h.Title.Property(key)
}

// SetProperty sets a drawer property, allocating the map on first use.
func (h *Headline) SetProperty(key, value string) {
	if h.Properties == nil {
		h.Properties = make(map[string]string)
	}
	h.Properties[key] = value
}

// Category resolves the effective category: the headline's own CATEGORY
// property when set, otherwise the owning document's category.
func (h *Headline) Category(doc *Document) string {
	if c := h.Property("CATEGORY"); c != "" {
		return c
	}
	return doc.Category
}

// Status resolves the headline's TODO keyword against a configuration.
// Returns nil for notes and for keywords absent from the configuration.
func (h *Headline) Status(cfg *TodoConfig) *TodoStatus {
	if !h.IsTask() {
		return nil
	}
	return cfg.FindStatus(h.Title.TodoKeyword)
}

// Deadline returns the planning deadline timestamp, or nil.
func (h *Headline) Deadline() *Timestamp {
	if h.Title.Planning == nil {
		return nil
	}
	return h.Title.Planning.Deadline
}

// Scheduled returns the planning scheduled timestamp, or nil.
func (h *Headline) Scheduled() *Timestamp {
	if h.Title.Planning == nil {
		return nil
	}
	return h.Title.Planning.Scheduled
}

// FindTasks returns this headline and all descendants that are tasks,
// in document order.
func (h *Headline) FindTasks() []*Headline {
	var out []*Headline
	h.Walk(func(n *Headline) {
		if n.IsTask() {
			out = append(out, n)
		}
	})
	return out
}

// FindNotes returns this headline and all descendants that are notes,
// in document order.
func (h *Headline) FindNotes() []*Headline {
	var out []*Headline
	h.Walk(func(n *Headline) {
		if n.IsNote() {
			out = append(out, n)
		}
	})
	return out
}

// Walk visits the headline and every descendant in document order.
func (h *Headline) Walk(fn func(*Headline)) {
	fn(h)
	for _, c := range h.Children {
		c.Walk(fn)
	}
}

// ContentChanged reports whether the headline's own text differs from
// other's (title or body; children are not considered).
func (h *Headline) ContentChanged(other *Headline) bool {
	return h.Content != other.Content || h.Title.Raw != other.Title.Raw
}

// StructureChanged reports whether the subtree shapes differ (child count
// at any depth).
func (h *Headline) StructureChanged(other *Headline) bool {
	if len(h.Children) != len(other.Children) {
		return true
	}
	for i := range h.Children {
		if h.Children[i].StructureChanged(other.Children[i]) {
			return true
		}
	}
	return false
}
