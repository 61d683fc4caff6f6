// Package charts renders user aggregations either as Chart.js-ready JSON
// descriptors or as rasterized PNG images. Callers choose the output mode;
// both are computed from the same aggregation results.
package charts

import (
	"fmt"
	"hash/fnv"
)

// FallbackColor returns a stable hex color derived from the label. Buckets
// without a defined category color (e.g. "Uncategorized") always render in
// the same color for the same label rather than a random one.
func FallbackColor(label string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(label))
	sum := h.Sum32()
	return fmt.Sprintf("#%02X%02X%02X", byte(sum>>16), byte(sum>>8), byte(sum))
}

// colorFor picks the category's own color when set, the fallback otherwise.
func colorFor(label, color string) string {
	if color != "" {
		return color
	}
	return FallbackColor(label)
}
