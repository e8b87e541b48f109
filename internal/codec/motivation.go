package codec

import (
	"boards/internal/domain"
	"boards/internal/manifest"
)

// Motivation assignment is a fixed policy: non-note items paint the surface,
// notes comment on it, connections link resources. Decode dispatches purely
// on the motivation string of each supplementing annotation.

// motivationFor returns the motivation a board item is encoded with.
func motivationFor(item domain.BoardItem) string {
	if item.IsNote {
		return manifest.MotivationCommenting
	}
	return manifest.MotivationPainting
}

// Closed two-way map between connection types and their external labels.
var purposeByType = map[domain.ConnectionType]string{
	domain.TypeAssociated: "associated",
	domain.TypePartOf:     "part-of",
	domain.TypeSimilarTo:  "similar-to",
	domain.TypeReferences: "references",
	domain.TypeRequires:   "requires",
	domain.TypeSequence:   "sequence",
}

var typeByPurpose = func() map[string]domain.ConnectionType {
	m := make(map[string]domain.ConnectionType, len(purposeByType))
	for t, label := range purposeByType {
		m[label] = t
	}
	return m
}()

// connectionPurpose maps a connection type to its external label. Types
// outside the closed set encode as the default "associated" label.
func connectionPurpose(t domain.ConnectionType) string {
	if label, ok := purposeByType[t]; ok {
		return label
	}
	return purposeByType[domain.TypeAssociated]
}

// connectionType maps an external label back to a connection type. Unknown
// labels decode to the default type rather than failing.
func connectionType(purpose string) domain.ConnectionType {
	if t, ok := typeByPurpose[purpose]; ok {
		return t
	}
	return domain.TypeAssociated
}
