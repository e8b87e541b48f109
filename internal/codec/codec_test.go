package codec_test

import (
	"encoding/json"
	"testing"

	"boards/internal/codec"
	"boards/internal/domain"
	"boards/internal/manifest"
)

const docID = "https://example.org/board/doc1"

func twoItemBoard() domain.BoardState {
	return domain.BoardState{
		Items: []domain.BoardItem{
			{ID: "a", ResourceID: "https://example.org/res/1", X: 0, Y: 0, W: 200, H: 150, ResourceType: "Canvas", Label: "First"},
			{ID: "b", ResourceID: "https://example.org/res/2", X: 300, Y: 0, W: 200, H: 150, ResourceType: "Canvas", Label: "Second"},
		},
		Connections: []domain.Connection{
			{ID: "c1", FromID: "a", ToID: "b", Type: domain.TypeSequence},
		},
		Groups: []domain.BoardGroup{
			{ID: "g1", Label: "Pair", ItemIDs: []string{"a", "b"}},
		},
		Viewport: domain.DefaultViewport(),
	}
}

func TestRoundTripTwoItems(t *testing.T) {
	state := twoItemBoard()
	got := codec.Decode(codec.Encode(state, docID, "Untitled", nil))

	if len(got.Items) != 2 {
		t.Fatalf("decoded %d items, want 2", len(got.Items))
	}
	for i, want := range state.Items {
		item := got.Items[i]
		if item.ID != want.ID || item.ResourceID != want.ResourceID {
			t.Errorf("item %d ids = (%s, %s), want (%s, %s)", i, item.ID, item.ResourceID, want.ID, want.ResourceID)
		}
		if item.Rect() != want.Rect() {
			t.Errorf("item %d rect = %+v, want %+v", i, item.Rect(), want.Rect())
		}
		if item.Label != want.Label || item.ResourceType != want.ResourceType {
			t.Errorf("item %d label/type = (%s, %s), want (%s, %s)", i, item.Label, item.ResourceType, want.Label, want.ResourceType)
		}
	}

	if len(got.Connections) != 1 {
		t.Fatalf("decoded %d connections, want 1", len(got.Connections))
	}
	conn := got.Connections[0]
	if conn.FromID != "a" || conn.ToID != "b" {
		t.Errorf("connection endpoints = (%s, %s), want (a, b)", conn.FromID, conn.ToID)
	}
	if conn.Type != domain.TypeSequence {
		t.Errorf("connection type = %s, want %s", conn.Type, domain.TypeSequence)
	}

	if len(got.Groups) != 1 {
		t.Fatalf("decoded %d groups, want 1", len(got.Groups))
	}
	group := got.Groups[0]
	if group.ID != "g1" || group.Label != "Pair" {
		t.Errorf("group = %+v, want id g1 label Pair", group)
	}
	if len(group.ItemIDs) != 2 || group.ItemIDs[0] != "a" || group.ItemIDs[1] != "b" {
		t.Errorf("group members = %v, want [a b]", group.ItemIDs)
	}
}

// An item panned into negative coordinates still survives the round trip: the
// selector format is unsigned, so its position clamps to the canvas origin
// but the item, its connections, and its group membership are all kept.
func TestRoundTripNegativePositionClampsToOrigin(t *testing.T) {
	state := twoItemBoard()
	state.Items[0].X = -100
	state.Items[0].Y = -50

	got := codec.Decode(codec.Encode(state, docID, "Untitled", nil))

	if len(got.Items) != 2 {
		t.Fatalf("decoded %d items, want 2", len(got.Items))
	}
	item := got.ItemByID("a")
	if item == nil {
		t.Fatal("item at negative coordinates lost in round trip")
	}
	if item.Rect() != (domain.Rect{X: 0, Y: 0, W: 200, H: 150}) {
		t.Errorf("clamped rect = %+v, want origin with original size", item.Rect())
	}
	if len(got.Connections) != 1 {
		t.Fatalf("decoded %d connections, want 1", len(got.Connections))
	}
	if len(got.Groups) != 1 || len(got.Groups[0].ItemIDs) != 2 {
		t.Fatalf("group membership not preserved: %+v", got.Groups)
	}
}

func TestRoundTripThroughJSON(t *testing.T) {
	state := twoItemBoard()
	data, err := json.Marshal(codec.Encode(state, docID, "Untitled", nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	doc, err := manifest.Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := codec.Decode(doc)
	if len(got.Items) != 2 || len(got.Connections) != 1 || len(got.Groups) != 1 {
		t.Fatalf("decoded %d items, %d connections, %d groups; want 2, 1, 1",
			len(got.Items), len(got.Connections), len(got.Groups))
	}
	if got.Items[0].Label != "First" {
		t.Errorf("item label = %q, want First", got.Items[0].Label)
	}
}

func TestRoundTripEmptyBoard(t *testing.T) {
	got := codec.Decode(codec.Encode(domain.EmptyBoardState(), docID, "Untitled", nil))
	if len(got.Items) != 0 || len(got.Connections) != 0 || len(got.Groups) != 0 {
		t.Fatalf("decoded non-empty state: %+v", got)
	}
	if got.Viewport != domain.DefaultViewport() {
		t.Errorf("viewport = %+v, want default", got.Viewport)
	}
}

func TestRoundTripNote(t *testing.T) {
	state := domain.BoardState{
		Items: []domain.BoardItem{
			{ID: "n1", ResourceID: "note-xyz", X: 50, Y: 60, W: 180, H: 120, IsNote: true, Annotation: "remember this", Label: "Note"},
		},
		Viewport: domain.DefaultViewport(),
	}
	got := codec.Decode(codec.Encode(state, docID, "Untitled", nil))
	if len(got.Items) != 1 {
		t.Fatalf("decoded %d items, want 1", len(got.Items))
	}
	note := got.Items[0]
	if !note.IsNote {
		t.Fatal("decoded item is not a note")
	}
	if note.ID != "n1" || note.ResourceID != "note-xyz" {
		t.Errorf("note ids = (%s, %s), want (n1, note-xyz)", note.ID, note.ResourceID)
	}
	if note.Annotation != "remember this" || note.Label != "Note" {
		t.Errorf("note text/label = (%q, %q)", note.Annotation, note.Label)
	}
}

// A connection to a note must resolve even though notes live in the
// supplementing collection alongside the connections.
func TestConnectionToNoteResolves(t *testing.T) {
	state := twoItemBoard()
	state.Items = append(state.Items, domain.BoardItem{
		ID: "n1", ResourceID: "note-1", X: 10, Y: 400, W: 100, H: 80, IsNote: true, Annotation: "context",
	})
	state.Connections = append(state.Connections, domain.Connection{
		ID: "c2", FromID: "n1", ToID: "a", Type: domain.TypeReferences,
	})

	got := codec.Decode(codec.Encode(state, docID, "Untitled", nil))
	if len(got.Connections) != 2 {
		t.Fatalf("decoded %d connections, want 2", len(got.Connections))
	}
	var found bool
	for _, conn := range got.Connections {
		if conn.ID == "c2" {
			found = true
			if conn.FromID != "n1" || conn.ToID != "a" {
				t.Errorf("note connection endpoints = (%s, %s), want (n1, a)", conn.FromID, conn.ToID)
			}
		}
	}
	if !found {
		t.Fatal("connection c2 not decoded")
	}
}

func TestRoundTripViewport(t *testing.T) {
	state := domain.BoardState{Viewport: domain.Viewport{X: 120, Y: -80, Zoom: 1.5}}
	got := codec.Decode(codec.Encode(state, docID, "Untitled", nil))
	if got.Viewport != state.Viewport {
		t.Errorf("viewport = %+v, want %+v", got.Viewport, state.Viewport)
	}
}

func TestRoundTripConnectionMetadata(t *testing.T) {
	state := twoItemBoard()
	state.Connections[0].FromAnchor = domain.AnchorRight
	state.Connections[0].ToAnchor = domain.AnchorLeft
	state.Connections[0].Style = domain.ConnectionStyleDashed
	state.Connections[0].Color = "#ff8800"
	state.Connections[0].Label = "then"

	got := codec.Decode(codec.Encode(state, docID, "Untitled", nil))
	if len(got.Connections) != 1 {
		t.Fatalf("decoded %d connections, want 1", len(got.Connections))
	}
	conn := got.Connections[0]
	if conn.FromAnchor != domain.AnchorRight || conn.ToAnchor != domain.AnchorLeft {
		t.Errorf("anchors = (%s, %s), want (R, L)", conn.FromAnchor, conn.ToAnchor)
	}
	if conn.Style != domain.ConnectionStyleDashed || conn.Color != "#ff8800" {
		t.Errorf("style/color = (%s, %s)", conn.Style, conn.Color)
	}
	if conn.Label != "then" {
		t.Errorf("label = %q, want then", conn.Label)
	}
}

func TestRoundTripGroupColor(t *testing.T) {
	state := twoItemBoard()
	state.Groups[0].Color = "#00cc88"
	got := codec.Decode(codec.Encode(state, docID, "Untitled", nil))
	if len(got.Groups) != 1 || got.Groups[0].Color != "#00cc88" {
		t.Fatalf("group color not preserved: %+v", got.Groups)
	}
}

func TestEncodeDropsDanglingConnection(t *testing.T) {
	state := twoItemBoard()
	state.Connections = append(state.Connections, domain.Connection{
		ID: "broken", FromID: "a", ToID: "missing", Type: domain.TypeRequires,
	})
	doc := codec.Encode(state, docID, "Untitled", nil)

	canvas := doc.Items[0]
	for _, page := range canvas.Annotations {
		for _, ann := range page.Items {
			if ann.ID == docID+"/annotation/broken" {
				t.Fatal("dangling connection was encoded")
			}
		}
	}

	got := codec.Decode(doc)
	if len(got.Connections) != 1 {
		t.Fatalf("decoded %d connections, want 1", len(got.Connections))
	}
}

func TestEncodeDropsMissingGroupMember(t *testing.T) {
	state := twoItemBoard()
	state.Groups[0].ItemIDs = append(state.Groups[0].ItemIDs, "gone")
	got := codec.Decode(codec.Encode(state, docID, "Untitled", nil))
	if len(got.Groups) != 1 {
		t.Fatalf("decoded %d groups, want 1", len(got.Groups))
	}
	if len(got.Groups[0].ItemIDs) != 2 {
		t.Errorf("group members = %v, want the two live members", got.Groups[0].ItemIDs)
	}
}

func TestEncodeOmitsEmptySupplementingPage(t *testing.T) {
	state := domain.BoardState{
		Items: []domain.BoardItem{
			{ID: "a", ResourceID: "res-1", X: 0, Y: 0, W: 10, H: 10},
		},
		Viewport: domain.DefaultViewport(),
	}
	doc := codec.Encode(state, docID, "Untitled", nil)
	if len(doc.Items[0].Annotations) != 0 {
		t.Errorf("empty supplementing page was emitted: %+v", doc.Items[0].Annotations)
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	state := twoItemBoard()
	a, err := json.Marshal(codec.Encode(state, docID, "Untitled", nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, err := json.Marshal(codec.Encode(state, docID, "Untitled", nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(a) != string(b) {
		t.Error("two encodes of the same state differ")
	}
}

func TestEncodePassesThroughOptions(t *testing.T) {
	doc := codec.Encode(domain.EmptyBoardState(), docID, "Untitled", &codec.Options{
		Behavior:         []string{"continuous"},
		ViewingDirection: "left-to-right",
	})
	if len(doc.Behavior) != 1 || doc.Behavior[0] != "continuous" {
		t.Errorf("behavior = %v", doc.Behavior)
	}
	if doc.ViewingDirection != "left-to-right" {
		t.Errorf("viewingDirection = %q", doc.ViewingDirection)
	}
}
