package domain

// ConnectionType classifies the relationship a connection expresses.
type ConnectionType string

const (
	TypeAssociated ConnectionType = "associated"
	TypePartOf     ConnectionType = "partOf"
	TypeSimilarTo  ConnectionType = "similarTo"
	TypeReferences ConnectionType = "references"
	TypeRequires   ConnectionType = "requires"
	TypeSequence   ConnectionType = "sequence"
)

// ConnectionStyle is the visual stroke style of a connection.
type ConnectionStyle string

const (
	ConnectionStyleSolid  ConnectionStyle = "solid"
	ConnectionStyleDashed ConnectionStyle = "dashed"
	ConnectionStyleDotted ConnectionStyle = "dotted"
)

// AnchorSide is the side of an item a connection end attaches to.
type AnchorSide string

const (
	AnchorTop    AnchorSide = "T"
	AnchorRight  AnchorSide = "R"
	AnchorBottom AnchorSide = "B"
	AnchorLeft   AnchorSide = "L"
)

// Connection is a directed, typed relationship between two board items.
// FromID and ToID are session ids; they must differ and both must reference
// items present in the same BoardState when the board is encoded.
type Connection struct {
	ID         string          `json:"id"`
	FromID     string          `json:"fromId"`
	ToID       string          `json:"toId"`
	Type       ConnectionType  `json:"type"`
	Label      string          `json:"label,omitempty"`
	FromAnchor AnchorSide      `json:"fromAnchor,omitempty"`
	ToAnchor   AnchorSide      `json:"toAnchor,omitempty"`
	Style      ConnectionStyle `json:"style,omitempty"`
	Color      string          `json:"color,omitempty"`
}
