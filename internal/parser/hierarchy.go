package parser

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"sort"

	"github.com/dr-yst/org-x/internal/org"
)

// BuildForest nests a document-order sequence of headlines by level. A
// headline becomes a child of the nearest preceding headline with a
// strictly lower level, or a root when no such headline exists. Level
// jumps need not be contiguous: a level-3 headline directly under a
// level-1 parent nests one level deeper. Construction never fails.
func BuildForest(flat []*org.Headline) []*org.Headline {
	var roots []*org.Headline
	var stack []*org.Headline

	for _, h := range flat {
		for len(stack) > 0 && stack[len(stack)-1].Title.Level >= h.Title.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, h)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, h)
		}
		stack = append(stack, h)
	}
	return roots
}

// ComputeEtags fills in headline etags bottom-up. A headline's etag
// covers its title fingerprint, body content, drawer properties, and the
// etags of its direct children, so a change anywhere in a subtree
// propagates to every ancestor's etag.
func ComputeEtags(roots []*org.Headline) {
	for _, h := range roots {
		computeEtag(h)
	}
}

func computeEtag(h *org.Headline) string {
	for _, c := range h.Children {
		computeEtag(c)
	}

	w := sha256.New()
	h.Title.Fingerprint(w)
	io.WriteString(w, "\x00")
	io.WriteString(w, h.Content)
	io.WriteString(w, "\x00")

	keys := make([]string, 0, len(h.Properties))
	for k := range h.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		io.WriteString(w, k)
		io.WriteString(w, "=")
		io.WriteString(w, h.Properties[k])
		io.WriteString(w, "\x00")
	}

	for _, c := range h.Children {
		io.WriteString(w, c.Etag)
		io.WriteString(w, "\x00")
	}

	h.Etag = hex.EncodeToString(w.Sum(nil))
	return h.Etag
}
