// Package codec converts between the editable board model and the manifest
// document format, in both directions.
//
// Encoding turns a domain.BoardState into a manifest.Document: items become
// painting annotations with xywh fragment selectors, notes become commenting
// annotations, connections become linking annotations, groups become
// structural ranges, and board-only data (viewport, anchors, colors) rides in
// service extension records. Decoding reverses all of that and never fails on
// malformed or foreign input: whatever cannot be understood is skipped or
// defaulted.
package codec

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"boards/internal/domain"
)

// xywhPattern matches a media-fragment selector with four non-negative
// integer or decimal components. Any other fragment syntax is treated as no
// selector at all.
var xywhPattern = regexp.MustCompile(`#xywh=(\d+(?:\.\d+)?),(\d+(?:\.\d+)?),(\d+(?:\.\d+)?),(\d+(?:\.\d+)?)`)

// EncodeRect formats r as an xywh fragment selector on target. Components are
// rounded half away from zero to whole pixels; that one-pixel granularity is
// the only loss in the selector round trip. The selector format has no sign,
// so negative positions clamp to the canvas origin.
func EncodeRect(target string, r domain.Rect) string {
	return fmt.Sprintf("%s#xywh=%d,%d,%d,%d",
		target,
		clampRound(r.X), clampRound(r.Y),
		clampRound(r.W), clampRound(r.H))
}

func clampRound(v float64) int {
	if v < 0 {
		return 0
	}
	return int(math.Round(v))
}

// DecodeRect extracts the rectangle from an xywh fragment selector. The
// second return is false when target carries no parseable selector, so the
// decoder can skip a malformed annotation without aborting the pass.
func DecodeRect(target string) (domain.Rect, bool) {
	m := xywhPattern.FindStringSubmatch(target)
	if m == nil {
		return domain.Rect{}, false
	}
	nums := make([]float64, 4)
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return domain.Rect{}, false
		}
		nums[i] = v
	}
	return domain.Rect{X: nums[0], Y: nums[1], W: nums[2], H: nums[3]}, true
}

// targetBase strips the fragment from an annotation target.
func targetBase(target string) string {
	if i := strings.IndexByte(target, '#'); i >= 0 {
		return target[:i]
	}
	return target
}
