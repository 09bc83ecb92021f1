package shields

import (
	"strings"
	"testing"
)

func TestTinyUpvoteShield(t *testing.T) {
	svg := TinyUpvoteShield(42, "bot1")

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("shield must be a standalone svg document")
	}

	for _, want := range []string{"upvotes", ">42<", "#8a6bfd"} {
		if !strings.Contains(svg, want) {
			t.Errorf("shield missing %q", want)
		}
	}
}

func TestTinyOwnerShield(t *testing.T) {
	svg := TinyOwnerShield("nova#0001", "u1")

	if !strings.Contains(svg, "owner") || !strings.Contains(svg, "nova#0001") {
		t.Errorf("unexpected owner shield: %s", svg)
	}
}
