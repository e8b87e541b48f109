// Package manifest holds the document-side model the codec speaks: a
// IIIF Presentation 3 shaped tree of a manifest, canvases, annotation pages,
// annotations, and ranges, plus the vendor extension records carried in
// service arrays.
//
// Values of this package exist only transiently: the encoder builds a whole
// Document from a board snapshot and the decoder consumes one; nothing here
// is mutated incrementally.
package manifest

import "encoding/json"

// Context is the presentation context every exported document declares.
const Context = "http://iiif.io/api/presentation/3/context.json"

// Resource type strings.
const (
	TypeManifest       = "Manifest"
	TypeCanvas         = "Canvas"
	TypeAnnotationPage = "AnnotationPage"
	TypeAnnotation     = "Annotation"
	TypeRange          = "Range"
	TypeTextualBody    = "TextualBody"
)

// Annotation motivations the codec understands.
const (
	MotivationPainting   = "painting"
	MotivationCommenting = "commenting"
	MotivationLinking    = "linking"
)

// The surface canvas has a fixed virtual size; every item selector targets it.
const (
	CanvasWidth  = 10000
	CanvasHeight = 10000
)

// Document is the manifest root.
type Document struct {
	Context          any               `json:"@context,omitempty"`
	ID               string            `json:"id"`
	Type             string            `json:"type"`
	Label            LangMap           `json:"label,omitempty"`
	Behavior         []string          `json:"behavior,omitempty"`
	ViewingDirection string            `json:"viewingDirection,omitempty"`
	Items            []Canvas          `json:"items,omitempty"`
	Structures       []Range           `json:"structures,omitempty"`
	Service          []json.RawMessage `json:"service,omitempty"`
}

// Canvas is a single canvas. The first canvas of a board document is the
// surface every annotation targets.
type Canvas struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	Label       LangMap           `json:"label,omitempty"`
	Width       int               `json:"width,omitempty"`
	Height      int               `json:"height,omitempty"`
	Items       []AnnotationPage  `json:"items,omitempty"`       // painting pages
	Annotations []AnnotationPage  `json:"annotations,omitempty"` // supplementing pages
	Service     []json.RawMessage `json:"service,omitempty"`
}

// AnnotationPage is an ordered collection of annotations.
type AnnotationPage struct {
	ID    string       `json:"id"`
	Type  string       `json:"type"`
	Items []Annotation `json:"items,omitempty"`
}

// Annotation places content on the surface (painting), attaches a note
// (commenting), or expresses a relationship (linking).
type Annotation struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Motivation Motivation        `json:"motivation,omitempty"`
	Label      LangMap           `json:"label,omitempty"`
	Body       *Body             `json:"body,omitempty"`
	Target     string            `json:"target,omitempty"`
	Service    []json.RawMessage `json:"service,omitempty"`
}

// Body is the annotation body. Which fields are set depends on the
// motivation: ID/ResourceType/Label for painting, Value/Format for
// commenting, Source/Purpose for linking.
type Body struct {
	ID           string  `json:"id,omitempty"`
	ResourceType string  `json:"type,omitempty"`
	Label        LangMap `json:"label,omitempty"`
	Value        string  `json:"value,omitempty"`
	Format       string  `json:"format,omitempty"`
	Source       string  `json:"source,omitempty"`
	Purpose      string  `json:"purpose,omitempty"`
}

// Range is a structural range; board groups are persisted as one range each.
type Range struct {
	ID      string            `json:"id"`
	Type    string            `json:"type"`
	Label   LangMap           `json:"label,omitempty"`
	Items   []RangeItem       `json:"items,omitempty"`
	Service []json.RawMessage `json:"service,omitempty"`
}

// RangeItem is a member reference inside a range.
type RangeItem struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Parse decodes a manifest document from JSON.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Motivation is an annotation motivation. Hand-authored and legacy documents
// sometimes carry an array of motivations; unmarshalling normalizes to the
// first entry so the decoder never re-checks shape.
type Motivation string

func (m *Motivation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = Motivation(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		if len(list) > 0 {
			*m = Motivation(list[0])
		}
		return nil
	}
	// Unknown shape: leave empty rather than fail the whole document.
	*m = ""
	return nil
}
