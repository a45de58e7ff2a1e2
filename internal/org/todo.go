package org

// StateType classifies a TODO keyword as active (work remaining) or
// closed (done, cancelled).
type StateType string

const (
	StateActive StateType = "active"
	StateClosed StateType = "closed"
)

// TodoStatus is one keyword in a TODO sequence with its display metadata.
type TodoStatus struct {
	Keyword string    `json:"keyword"`
	State   StateType `json:"state_type"`
	Order   int       `json:"order"`
	Color   string    `json:"color,omitempty"`
}

// IsActive reports whether the status represents remaining work.
func (s TodoStatus) IsActive() bool { return s.State == StateActive }

// IsClosed reports whether the status represents finished work.
func (s TodoStatus) IsClosed() bool { return s.State == StateClosed }

// TodoSequence is a named, ordered list of statuses.
type TodoSequence struct {
	Name     string       `json:"name"`
	Statuses []TodoStatus `json:"statuses"`
}

// TodoConfig is the set of TODO sequences effective for a document.
type TodoConfig struct {
	Sequences []TodoSequence `json:"sequences"`
}

var activeColors = []string{"#ff0000", "#ff9900", "#ffff00", "#0099ff", "#9966cc"}

var closedColors = []string{"#00ff00", "#999999", "#666666"}

func activeColor(i int) string {
	if i < len(activeColors) {
		return activeColors[i]
	}
	return "#0099ff"
}

func closedColor(i int) string {
	if i < len(closedColors) {
		return closedColors[i]
	}
	return "#666666"
}

// DefaultTodoConfig returns the configuration used when a document defines
// no custom keywords and no defaults are supplied: TODO, IN-PROGRESS,
// WAITING as active states, DONE and CANCELLED as closed states.
func DefaultTodoConfig() *TodoConfig {
	return TodoConfigFromKeywords(
		[]string{"TODO", "IN-PROGRESS", "WAITING"},
		[]string{"DONE", "CANCELLED"},
	)
}

// TodoConfigFromKeywords builds a single-sequence configuration from
// active and closed keyword lists, assigning orders and colors by index.
func TodoConfigFromKeywords(active, closed []string) *TodoConfig {
	statuses := make([]TodoStatus, 0, len(active)+len(closed))
	for i, kw := range active {
		statuses = append(statuses, TodoStatus{
			Keyword: kw,
			State:   StateActive,
			Order:   i,
			Color:   activeColor(i),
		})
	}
	for i, kw := range closed {
		statuses = append(statuses, TodoStatus{
			Keyword: kw,
			State:   StateClosed,
			Order:   len(active) + i,
			Color:   closedColor(i),
		})
	}
	return &TodoConfig{Sequences: []TodoSequence{{Name: "default", Statuses: statuses}}}
}

// FindStatus returns the first status across all sequences whose keyword
// matches, or nil.
func (c *TodoConfig) FindStatus(keyword string) *TodoStatus {
	if c == nil {
		return nil
	}
	for si := range c.Sequences {
		for ti := range c.Sequences[si].Statuses {
			if c.Sequences[si].Statuses[ti].Keyword == keyword {
				return &c.Sequences[si].Statuses[ti]
			}
		}
	}
	return nil
}

// Keywords returns the active and closed keyword lists across all
// sequences, in sequence order.
func (c *TodoConfig) Keywords() (active, closed []string) {
	if c == nil {
		return nil, nil
	}
	for _, seq := range c.Sequences {
		for _, st := range seq.Statuses {
			if st.IsActive() {
				active = append(active, st.Keyword)
			} else {
				closed = append(closed, st.Keyword)
			}
		}
	}
	return active, closed
}
