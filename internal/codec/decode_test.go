package codec_test

import (
	"testing"

	"boards/internal/codec"
	"boards/internal/domain"
	"boards/internal/manifest"
)

// Hand-authored and foreign manifests exercise the defensive decode paths.

func TestDecodeNilDocument(t *testing.T) {
	got := codec.Decode(nil)
	if len(got.Items) != 0 || got.Viewport != domain.DefaultViewport() {
		t.Fatalf("decode(nil) = %+v, want empty state", got)
	}
}

func TestDecodeDocumentWithoutCanvas(t *testing.T) {
	doc, err := manifest.Parse([]byte(`{
		"id": "https://example.org/empty",
		"type": "Manifest",
		"label": {"en": ["Plain manifest"]}
	}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := codec.Decode(doc)
	if len(got.Items) != 0 || len(got.Connections) != 0 || len(got.Groups) != 0 {
		t.Fatalf("decode = %+v, want empty state", got)
	}
}

func TestDecodeSkipsMalformedSelector(t *testing.T) {
	doc, err := manifest.Parse([]byte(`{
		"id": "https://example.org/doc",
		"type": "Manifest",
		"items": [{
			"id": "https://example.org/doc/canvas/board",
			"type": "Canvas",
			"width": 10000,
			"height": 10000,
			"items": [{
				"id": "https://example.org/doc/canvas/board/painting",
				"type": "AnnotationPage",
				"items": [
					{
						"id": "https://example.org/doc/annotation/ok1",
						"type": "Annotation",
						"motivation": "painting",
						"body": {"id": "res-1", "type": "Canvas"},
						"target": "https://example.org/doc/canvas/board#xywh=0,0,100,100"
					},
					{
						"id": "https://example.org/doc/annotation/bad",
						"type": "Annotation",
						"motivation": "painting",
						"body": {"id": "res-2", "type": "Canvas"},
						"target": "https://example.org/doc/canvas/board#t=10,20"
					},
					{
						"id": "https://example.org/doc/annotation/ok2",
						"type": "Annotation",
						"motivation": "painting",
						"body": {"id": "res-3", "type": "Canvas"},
						"target": "https://example.org/doc/canvas/board#xywh=200,0,100,100"
					}
				]
			}]
		}]
	}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := codec.Decode(doc)
	if len(got.Items) != 2 {
		t.Fatalf("decoded %d items, want 2 (malformed selector skipped)", len(got.Items))
	}
	if got.Items[0].ID != "ok1" || got.Items[1].ID != "ok2" {
		t.Errorf("item ids = (%s, %s), want (ok1, ok2)", got.Items[0].ID, got.Items[1].ID)
	}
}

func TestDecodeUnknownPurposeDefaultsToAssociated(t *testing.T) {
	doc, err := manifest.Parse([]byte(`{
		"id": "https://example.org/doc",
		"type": "Manifest",
		"items": [{
			"id": "https://example.org/doc/canvas/board",
			"type": "Canvas",
			"items": [],
			"annotations": [{
				"id": "https://example.org/doc/canvas/board/supplementing",
				"type": "AnnotationPage",
				"items": [{
					"id": "https://example.org/doc/annotation/c1",
					"type": "Annotation",
					"motivation": "linking",
					"body": {"source": "res-2", "purpose": "taxonomy-of-unknowable-things"},
					"target": "res-1"
				}]
			}]
		}]
	}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := codec.Decode(doc)
	if len(got.Connections) != 1 {
		t.Fatalf("decoded %d connections, want 1", len(got.Connections))
	}
	if got.Connections[0].Type != domain.TypeAssociated {
		t.Errorf("type = %s, want %s", got.Connections[0].Type, domain.TypeAssociated)
	}
}

// Endpoints that resolve to no decoded item keep their raw resource ids
// instead of being dropped.
func TestDecodeUnresolvableEndpointKeepsRawID(t *testing.T) {
	doc, err := manifest.Parse([]byte(`{
		"id": "https://example.org/doc",
		"type": "Manifest",
		"items": [{
			"id": "https://example.org/doc/canvas/board",
			"type": "Canvas",
			"items": [],
			"annotations": [{
				"id": "https://example.org/doc/canvas/board/supplementing",
				"type": "AnnotationPage",
				"items": [{
					"id": "https://example.org/doc/annotation/c1",
					"type": "Annotation",
					"motivation": "linking",
					"body": {"source": "res-gone", "purpose": "sequence"},
					"target": "res-also-gone"
				}]
			}]
		}]
	}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := codec.Decode(doc)
	if len(got.Connections) != 1 {
		t.Fatalf("decoded %d connections, want 1", len(got.Connections))
	}
	conn := got.Connections[0]
	if conn.FromID != "res-also-gone" || conn.ToID != "res-gone" {
		t.Errorf("endpoints = (%s, %s), want raw resource ids", conn.FromID, conn.ToID)
	}
}

func TestDecodeIgnoresForeignRangeTypes(t *testing.T) {
	state := twoItemBoard()
	doc := codec.Encode(state, docID, "Untitled", nil)
	doc.Structures = append(doc.Structures, manifest.Range{
		ID:   docID + "/range/toc",
		Type: "Collection",
		Items: []manifest.RangeItem{
			{ID: "https://example.org/res/1", Type: "Canvas"},
		},
	})
	got := codec.Decode(doc)
	if len(got.Groups) != 1 {
		t.Fatalf("decoded %d groups, want 1 (foreign range ignored)", len(got.Groups))
	}
}

func TestDecodeLegacyLabelShapes(t *testing.T) {
	doc, err := manifest.Parse([]byte(`{
		"id": "https://example.org/doc",
		"type": "Manifest",
		"label": "Bare string label",
		"items": [{
			"id": "https://example.org/doc/canvas/board",
			"type": "Canvas",
			"items": [{
				"id": "https://example.org/doc/canvas/board/painting",
				"type": "AnnotationPage",
				"items": [{
					"id": "https://example.org/doc/annotation/a",
					"type": "Annotation",
					"motivation": ["painting"],
					"body": {"id": "res-1", "type": "Canvas", "label": {"en": "single string"}},
					"target": "https://example.org/doc/canvas/board#xywh=0,0,50,50"
				}]
			}]
		}]
	}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := codec.Decode(doc)
	if len(got.Items) != 1 {
		t.Fatalf("decoded %d items, want 1", len(got.Items))
	}
	if got.Items[0].Label != "single string" {
		t.Errorf("label = %q, want normalized single string", got.Items[0].Label)
	}
}

func TestIsBoard(t *testing.T) {
	encoded := codec.Encode(domain.EmptyBoardState(), docID, "Untitled", nil)
	if !codec.IsBoard(encoded) {
		t.Fatal("encoded document not recognized as a board")
	}

	// A board-shaped manifest without the marker is not a board.
	foreign, err := manifest.Parse([]byte(`{
		"id": "https://example.org/doc",
		"type": "Manifest",
		"label": {"none": ["Looks like a board"]},
		"items": [{
			"id": "https://example.org/doc/canvas/board",
			"type": "Canvas",
			"width": 10000,
			"height": 10000,
			"items": []
		}],
		"service": [{"id": "x", "type": "SomethingElse"}]
	}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if codec.IsBoard(foreign) {
		t.Fatal("foreign manifest classified as a board")
	}
	if codec.IsBoard(nil) {
		t.Fatal("nil document classified as a board")
	}
}

func TestDecodeViewportDefaultsMissingFields(t *testing.T) {
	doc, err := manifest.Parse([]byte(`{
		"id": "https://example.org/doc",
		"type": "Manifest",
		"items": [{"id": "c", "type": "Canvas", "items": []}],
		"service": [
			{"id": "m", "type": "BoardMarker"},
			{"id": "v", "type": "BoardViewport", "x": 42}
		]
	}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := codec.Decode(doc)
	want := domain.Viewport{X: 42, Y: 0, Zoom: 1}
	if got.Viewport != want {
		t.Errorf("viewport = %+v, want %+v", got.Viewport, want)
	}
}
