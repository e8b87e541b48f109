package domain

import "fmt"

// ValidateState checks a BoardState for constraint violations before it is
// persisted. It returns the first violation found, or nil when the state is
// well formed.
func ValidateState(s BoardState) error {
	seen := make(map[string]struct{}, len(s.Items))
	for _, it := range s.Items {
		if it.ID == "" {
			return fmt.Errorf("item without id")
		}
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("duplicate item id %q", it.ID)
		}
		seen[it.ID] = struct{}{}
		if it.W <= 0 || it.H <= 0 {
			return fmt.Errorf("item %q: size must be positive, got %gx%g", it.ID, it.W, it.H)
		}
		if it.IsNote && it.Annotation == "" {
			return fmt.Errorf("note %q: annotation text must not be empty", it.ID)
		}
	}

	for _, c := range s.Connections {
		if c.FromID == c.ToID {
			return fmt.Errorf("connection %q: endpoints must differ", c.ID)
		}
	}

	if s.Viewport.Zoom <= 0 {
		return fmt.Errorf("viewport zoom must be positive, got %g", s.Viewport.Zoom)
	}
	return nil
}
