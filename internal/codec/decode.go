package codec

import (
	"strings"

	"boards/internal/domain"
	"boards/internal/manifest"
)

// IsBoard reports whether a document was produced by the board encoder. The
// board marker on the document root is the sole discovery predicate: a
// document without it is a plain manifest no matter how board-like its shape.
func IsBoard(doc *manifest.Document) bool {
	if doc == nil {
		return false
	}
	return hasBoardMarker(doc.Service)
}

// Decode reconstructs a board state from a manifest document. It is
// defensive throughout: manifests may be hand-edited or produced by unrelated
// tools, so every missing or malformed piece degrades to omission or a
// default instead of an error. The single shortcut is a document with no
// canvases at all, which decodes to an empty board.
func Decode(doc *manifest.Document) domain.BoardState {
	state := domain.EmptyBoardState()
	if doc == nil {
		return state
	}
	state.Viewport = decodeViewport(doc.Service)
	if len(doc.Items) == 0 {
		return state
	}
	canvas := doc.Items[0]
	res := newResolver()

	// Items first: connections and group members resolve against the item
	// set, so it must be complete before anything references it.
	for _, page := range canvas.Items {
		for _, ann := range page.Items {
			if item, ok := decodeItem(ann, false); ok {
				state.Items = append(state.Items, item)
				res.register(item.ID, item.ResourceID)
			}
		}
	}

	// Notes next, still before connections, so a link to a note resolves.
	var linking []manifest.Annotation
	for _, page := range canvas.Annotations {
		for _, ann := range page.Items {
			switch ann.Motivation {
			case manifest.MotivationCommenting:
				if item, ok := decodeItem(ann, true); ok {
					state.Items = append(state.Items, item)
					res.register(item.ID, item.ResourceID)
				}
			case manifest.MotivationLinking:
				linking = append(linking, ann)
			}
		}
	}
	for _, ann := range linking {
		state.Connections = append(state.Connections, decodeConnection(ann, res))
	}

	state.Groups = decodeGroups(doc.ID, doc.Structures, res)
	return state
}

// decodeItem maps one painting or commenting annotation back to a board item.
// The second return is false when the target carries no parseable selector;
// that annotation is skipped without aborting the decode.
func decodeItem(ann manifest.Annotation, isNote bool) (domain.BoardItem, bool) {
	rect, ok := DecodeRect(ann.Target)
	if !ok {
		return domain.BoardItem{}, false
	}
	item := domain.BoardItem{
		ID:     sessionIDFromAnnotation(ann.ID),
		X:      rect.X,
		Y:      rect.Y,
		W:      rect.W,
		H:      rect.H,
		IsNote: isNote,
	}
	item.ResourceID = item.ID
	if ann.Body != nil {
		if ann.Body.ID != "" {
			item.ResourceID = ann.Body.ID
		}
		item.Label = ann.Body.Label.First()
		if isNote {
			item.Annotation = ann.Body.Value
		} else {
			item.ResourceType = ann.Body.ResourceType
		}
	}
	if item.Label == "" {
		item.Label = ann.Label.First()
	}
	return item, true
}

// decodeConnection maps a linking annotation back to a connection. Endpoints
// resolve through the item set decoded earlier in the pass; an endpoint with
// no matching item keeps its raw resource id.
func decodeConnection(ann manifest.Annotation, res *idResolver) domain.Connection {
	conn := domain.Connection{
		ID:     sessionIDFromAnnotation(ann.ID),
		FromID: res.toSessionID(targetBase(ann.Target)),
		Type:   domain.TypeAssociated,
		Label:  ann.Label.First(),
	}
	if ann.Body != nil {
		conn.ToID = res.toSessionID(ann.Body.Source)
		conn.Type = connectionType(ann.Body.Purpose)
	}
	applyConnectionMetadata(ann.Service, &conn)
	return conn
}

// sessionIDFromAnnotation recovers the session id embedded in an annotation
// id by the encoder. Annotations from other producers use their whole id.
func sessionIDFromAnnotation(annotationID string) string {
	if i := strings.LastIndex(annotationID, "/annotation/"); i >= 0 && i+len("/annotation/") < len(annotationID) {
		return annotationID[i+len("/annotation/"):]
	}
	return annotationID
}
