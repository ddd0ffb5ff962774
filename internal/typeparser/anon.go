// Package typeparser walks the CST of a translation unit and emits
// TypeRecords and macro definitions into a typesys.Manager (§4.3).
package typeparser

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/kon1790/cparser/internal/cst"
)

// anonName synthesizes a deterministic name for an untagged struct/union/
// enum, per §3 and the design note in §9: `(line, column, hash-of-span)`
// rather than the source's unstable object-identity scheme, so output is
// reproducible across runs of the same input.
func anonName(kind string, n cst.Node) string {
	line, col := n.Start()
	h := sha256.Sum256([]byte(n.Text()))
	return fmt.Sprintf("__anon_%s_%d_%d_%s", kind, line, col, hex.EncodeToString(h[:4]))
}
