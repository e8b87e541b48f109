package codec

import (
	"boards/internal/domain"
	"boards/internal/manifest"
)

// Options carries document-level passthrough fields the caller may set on an
// exported manifest.
type Options struct {
	Behavior         []string
	ViewingDirection string
}

// Encode turns a board snapshot into a manifest document. Pure: the same
// inputs always produce a structurally identical document, and the board
// state is never mutated. The codec generates no ids of its own; everything
// derives deterministically from documentID and the ids already on the board.
func Encode(state domain.BoardState, documentID, title string, opts *Options) *manifest.Document {
	canvasID := documentID + "/canvas/board"
	res := resolverForEncode(state.Items)

	painting := manifest.AnnotationPage{
		ID:   canvasID + "/painting",
		Type: manifest.TypeAnnotationPage,
	}
	supplementing := manifest.AnnotationPage{
		ID:   canvasID + "/supplementing",
		Type: manifest.TypeAnnotationPage,
	}

	for _, item := range state.Items {
		ann := encodeItem(documentID, canvasID, item)
		if item.IsNote {
			supplementing.Items = append(supplementing.Items, ann)
		} else {
			painting.Items = append(painting.Items, ann)
		}
	}

	for _, conn := range state.Connections {
		// A connection with a missing endpoint cannot be expressed without a
		// broken reference, so it is omitted from the document.
		if state.ItemByID(conn.FromID) == nil || state.ItemByID(conn.ToID) == nil {
			continue
		}
		supplementing.Items = append(supplementing.Items, encodeConnection(documentID, conn, res))
	}

	canvas := manifest.Canvas{
		ID:     canvasID,
		Type:   manifest.TypeCanvas,
		Label:  manifest.NewLangMap(title),
		Width:  manifest.CanvasWidth,
		Height: manifest.CanvasHeight,
		Items:  []manifest.AnnotationPage{painting},
	}
	if len(supplementing.Items) > 0 {
		canvas.Annotations = []manifest.AnnotationPage{supplementing}
	}

	doc := &manifest.Document{
		Context:    manifest.Context,
		ID:         documentID,
		Type:       manifest.TypeManifest,
		Label:      manifest.NewLangMap(title),
		Items:      []manifest.Canvas{canvas},
		Structures: encodeGroups(documentID, state.Groups, res),
	}
	if opts != nil {
		doc.Behavior = opts.Behavior
		doc.ViewingDirection = opts.ViewingDirection
	}

	doc.Service = appendExtension(doc.Service, markerExtension(documentID))
	if state.Viewport != domain.DefaultViewport() {
		doc.Service = appendExtension(doc.Service, viewportExtension(documentID, state.Viewport))
	}
	return doc
}

// encodeItem maps one board item to a painting or commenting annotation. The
// annotation id embeds the session id so a later decode can reconstruct it.
func encodeItem(documentID, canvasID string, item domain.BoardItem) manifest.Annotation {
	ann := manifest.Annotation{
		ID:         documentID + "/annotation/" + item.ID,
		Type:       manifest.TypeAnnotation,
		Motivation: manifest.Motivation(motivationFor(item)),
		Target:     EncodeRect(canvasID, item.Rect()),
	}
	if item.IsNote {
		ann.Body = &manifest.Body{
			ID:           item.ResourceID,
			ResourceType: manifest.TypeTextualBody,
			Value:        item.Annotation,
			Format:       "text/plain",
		}
		if item.Label != "" {
			ann.Label = manifest.NewLangMap(item.Label)
		}
		return ann
	}
	ann.Body = &manifest.Body{
		ID:           item.ResourceID,
		ResourceType: item.ResourceType,
	}
	if item.Label != "" {
		ann.Body.Label = manifest.NewLangMap(item.Label)
	}
	return ann
}

// encodeConnection maps a connection to a linking annotation: the origin
// resource is the target, the destination rides in body.source, and the
// relationship type travels as the body purpose.
func encodeConnection(documentID string, conn domain.Connection, res *idResolver) manifest.Annotation {
	ann := manifest.Annotation{
		ID:         documentID + "/annotation/" + conn.ID,
		Type:       manifest.TypeAnnotation,
		Motivation: manifest.MotivationLinking,
		Target:     res.toResourceID(conn.FromID),
		Body: &manifest.Body{
			Source:  res.toResourceID(conn.ToID),
			Purpose: connectionPurpose(conn.Type),
		},
	}
	if conn.Label != "" {
		ann.Label = manifest.NewLangMap(conn.Label)
	}
	if ext := connectionExtension(conn); ext != nil {
		ann.Service = appendExtension(ann.Service, ext)
	}
	return ann
}
