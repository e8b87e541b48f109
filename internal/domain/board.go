package domain

import "time"

// Rect is a rectangle on the board canvas: position plus size.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// BoardItem is a resource or note placed on the board.
//
// ID is session-local and stable only for the editing session. ResourceID is
// the externally meaningful identifier of the underlying content; for notes
// it is self-generated by the caller at creation time.
type BoardItem struct {
	ID           string  `json:"id"`
	ResourceID   string  `json:"resourceId"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	W            float64 `json:"w"`
	H            float64 `json:"h"`
	ResourceType string  `json:"resourceType,omitempty"`
	Label        string  `json:"label,omitempty"`
	Annotation   string  `json:"annotation,omitempty"`
	IsNote       bool    `json:"isNote,omitempty"`
}

// Rect returns the item's placement rectangle.
func (it BoardItem) Rect() Rect {
	return Rect{X: it.X, Y: it.Y, W: it.W, H: it.H}
}

// BoardGroup is a named cluster of board item ids. ItemIDs has set semantics;
// callers must not add the same id twice.
type BoardGroup struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	ItemIDs []string `json:"itemIds"`
	Color   string   `json:"color,omitempty"`
}

// Viewport is the pan/zoom state of the board canvas.
type Viewport struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// DefaultViewport is the origin at 1× zoom.
func DefaultViewport() Viewport {
	return Viewport{X: 0, Y: 0, Zoom: 1}
}

// BoardState is the aggregate root of one editable board: items, connections,
// groups, and viewport. It is owned by the editing session; the codec never
// mutates one in place and always produces a new value.
type BoardState struct {
	Items       []BoardItem  `json:"items"`
	Connections []Connection `json:"connections"`
	Groups      []BoardGroup `json:"groups"`
	Viewport    Viewport     `json:"viewport"`
}

// EmptyBoardState returns a BoardState with no content and the default viewport.
func EmptyBoardState() BoardState {
	return BoardState{Viewport: DefaultViewport()}
}

// ItemByID returns the item with the given session id, or nil.
func (s *BoardState) ItemByID(id string) *BoardItem {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return &s.Items[i]
		}
	}
	return nil
}

// Board is a stored board in the library: metadata plus the encoded manifest.
type Board struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Manifest  string    `json:"manifest"` // manifest document as JSON
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BoardStore persists boards in a library.
type BoardStore interface {
	CreateBoard(b *Board) error
	GetBoard(id string) (*Board, error)
	ListBoards() ([]Board, error)
	UpdateBoard(b *Board) error
	DeleteBoard(id string) error
}
