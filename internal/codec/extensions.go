package codec

import (
	"encoding/json"

	"boards/internal/domain"
)

// Extension records are small tagged structs attached to documents, canvases,
// annotations, and ranges through their service arrays. They carry what the
// standard annotation shape cannot: the board marker, the viewport, anchor
// and style metadata on connections, and group colors.

// Extension record kinds.
const (
	kindBoardMarker        = "BoardMarker"
	kindBoardViewport      = "BoardViewport"
	kindConnectionMetadata = "ConnectionMetadata"
	kindGroupMetadata      = "GroupMetadata"
)

type boardMarker struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type"`
}

type viewportRecord struct {
	ID   string  `json:"id,omitempty"`
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

type connectionMetadata struct {
	ID         string `json:"id,omitempty"`
	Type       string `json:"type"`
	FromAnchor string `json:"fromAnchor,omitempty"`
	ToAnchor   string `json:"toAnchor,omitempty"`
	Style      string `json:"style,omitempty"`
	Color      string `json:"color,omitempty"`
}

type groupMetadata struct {
	ID    string `json:"id,omitempty"`
	Type  string `json:"type"`
	Color string `json:"color,omitempty"`
}

// appendExtension marshals a record onto a service array.
func appendExtension(service []json.RawMessage, record any) []json.RawMessage {
	data, err := json.Marshal(record)
	if err != nil {
		return service
	}
	return append(service, data)
}

// findExtension returns the first record of the given kind, probing only the
// type tag so foreign service entries of any shape are tolerated.
func findExtension(service []json.RawMessage, kind string) (json.RawMessage, bool) {
	for _, raw := range service {
		var header struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(raw, &header); err != nil {
			continue
		}
		if header.Type == kind {
			return raw, true
		}
	}
	return nil, false
}

// markerExtension builds the board marker for a document. Its presence is the
// sole predicate deciding whether a document is offered as a loadable board.
func markerExtension(documentID string) boardMarker {
	return boardMarker{ID: documentID + "/service/board", Type: kindBoardMarker}
}

// hasBoardMarker reports whether a service array carries the board marker.
func hasBoardMarker(service []json.RawMessage) bool {
	_, ok := findExtension(service, kindBoardMarker)
	return ok
}

// viewportExtension builds the viewport record for a document.
func viewportExtension(documentID string, vp domain.Viewport) viewportRecord {
	return viewportRecord{
		ID:   documentID + "/service/viewport",
		Type: kindBoardViewport,
		X:    vp.X,
		Y:    vp.Y,
		Zoom: vp.Zoom,
	}
}

// decodeViewport reads the viewport record from a document's service array.
// A missing record or missing fields default to the origin at 1× zoom.
func decodeViewport(service []json.RawMessage) domain.Viewport {
	raw, ok := findExtension(service, kindBoardViewport)
	if !ok {
		return domain.DefaultViewport()
	}
	rec := viewportRecord{Zoom: 1}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.DefaultViewport()
	}
	if rec.Zoom <= 0 {
		rec.Zoom = 1
	}
	return domain.Viewport{X: rec.X, Y: rec.Y, Zoom: rec.Zoom}
}

// connectionExtension builds the metadata record for a connection, or nil
// when the connection has no metadata worth an extra record.
func connectionExtension(conn domain.Connection) *connectionMetadata {
	if conn.FromAnchor == "" && conn.ToAnchor == "" && conn.Style == "" && conn.Color == "" {
		return nil
	}
	return &connectionMetadata{
		Type:       kindConnectionMetadata,
		FromAnchor: string(conn.FromAnchor),
		ToAnchor:   string(conn.ToAnchor),
		Style:      string(conn.Style),
		Color:      conn.Color,
	}
}

// applyConnectionMetadata copies metadata from an annotation's service array
// onto a decoded connection. A missing record means all fields stay absent.
func applyConnectionMetadata(service []json.RawMessage, conn *domain.Connection) {
	raw, ok := findExtension(service, kindConnectionMetadata)
	if !ok {
		return
	}
	var rec connectionMetadata
	if err := json.Unmarshal(raw, &rec); err != nil {
		return
	}
	conn.FromAnchor = domain.AnchorSide(rec.FromAnchor)
	conn.ToAnchor = domain.AnchorSide(rec.ToAnchor)
	conn.Style = domain.ConnectionStyle(rec.Style)
	conn.Color = rec.Color
}

// groupExtension builds the color record for a group, or nil when the group
// has no color.
func groupExtension(group domain.BoardGroup) *groupMetadata {
	if group.Color == "" {
		return nil
	}
	return &groupMetadata{Type: kindGroupMetadata, Color: group.Color}
}

// decodeGroupColor reads the color record from a range's service array.
func decodeGroupColor(service []json.RawMessage) string {
	raw, ok := findExtension(service, kindGroupMetadata)
	if !ok {
		return ""
	}
	var rec groupMetadata
	if err := json.Unmarshal(raw, &rec); err != nil {
		return ""
	}
	return rec.Color
}
