package svgdraw

import (
	"crypto/rand"
	"encoding/hex"
)

// newLayerID returns a fresh, collision-free identifier for a layer. No
// library in the conversion stack provides id generation, so this uses
// crypto/rand directly rather than adopting a dependency for sixteen random
// bytes.
func newLayerID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand.Read only fails if the OS entropy source is
		// unavailable; fall back to a fixed-but-distinguishable id
		// rather than panicking mid-conversion.
		return "layer-fallback"
	}
	return "layer-" + hex.EncodeToString(b[:])
}
