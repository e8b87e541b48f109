package codec

import (
	"strings"

	"boards/internal/domain"
	"boards/internal/manifest"
)

// Board groups persist as structural ranges: one range per group, members
// listed by resource id (not session id).

// encodeGroups maps groups to ranges. Range ids derive deterministically from
// the group id so re-encoding the same board is stable. Members whose item no
// longer exists are silently dropped; the group survives with fewer members.
func encodeGroups(documentID string, groups []domain.BoardGroup, res *idResolver) []manifest.Range {
	var ranges []manifest.Range
	for _, g := range groups {
		rng := manifest.Range{
			ID:    documentID + "/range/" + g.ID,
			Type:  manifest.TypeRange,
			Label: manifest.NewLangMap(g.Label),
		}
		for _, itemID := range g.ItemIDs {
			if !res.knows(itemID) {
				continue
			}
			rng.Items = append(rng.Items, manifest.RangeItem{
				ID:   res.toResourceID(itemID),
				Type: manifest.TypeCanvas,
			})
		}
		if ext := groupExtension(g); ext != nil {
			rng.Service = appendExtension(rng.Service, ext)
		}
		ranges = append(ranges, rng)
	}
	return ranges
}

// decodeGroups maps ranges back to groups. Ranges of any type other than
// "Range" are ignored so unrelated structural uses of the same container keep
// working. Member references that resolve to no decoded item are dropped.
func decodeGroups(documentID string, structures []manifest.Range, res *idResolver) []domain.BoardGroup {
	var groups []domain.BoardGroup
	for _, rng := range structures {
		if rng.Type != manifest.TypeRange {
			continue
		}
		g := domain.BoardGroup{
			ID:    groupIDFromRange(documentID, rng.ID),
			Label: rng.Label.First(),
			Color: decodeGroupColor(rng.Service),
		}
		for _, member := range rng.Items {
			if !res.knowsResource(member.ID) {
				continue
			}
			g.ItemIDs = append(g.ItemIDs, res.toSessionID(member.ID))
		}
		groups = append(groups, g)
	}
	return groups
}

// groupIDFromRange recovers the group id a range id was derived from.
func groupIDFromRange(documentID, rangeID string) string {
	if rest, ok := strings.CutPrefix(rangeID, documentID+"/range/"); ok && rest != "" {
		return rest
	}
	if i := strings.LastIndex(rangeID, "/range/"); i >= 0 && i+len("/range/") < len(rangeID) {
		return rangeID[i+len("/range/"):]
	}
	return rangeID
}
