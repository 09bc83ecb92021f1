// Tiny SVG shields summarizing a bots popularity or ownership, for
// embedding in READMEs and profiles
package shields

import (
	"fmt"
	"strconv"
)

const charWidth = 7

// Rough text width for the flat badge font at size 11
func textWidth(s string) int {
	return charWidth * len(s)
}

func tiny(label, value, valueColor string) string {
	labelWidth := textWidth(label) + 10
	valueWidth := textWidth(value) + 10
	width := labelWidth + valueWidth

	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="20" role="img" aria-label="%s: %s">`+
			`<linearGradient id="s" x2="0" y2="100%%"><stop offset="0" stop-color="#bbb" stop-opacity=".1"/><stop offset="1" stop-opacity=".1"/></linearGradient>`+
			`<clipPath id="r"><rect width="%d" height="20" rx="3" fill="#fff"/></clipPath>`+
			`<g clip-path="url(#r)">`+
			`<rect width="%d" height="20" fill="#555"/>`+
			`<rect x="%d" width="%d" height="20" fill="%s"/>`+
			`<rect width="%d" height="20" fill="url(#s)"/>`+
			`</g>`+
			`<g fill="#fff" text-anchor="middle" font-family="Verdana,Geneva,DejaVu Sans,sans-serif" font-size="11">`+
			`<text x="%d" y="14">%s</text>`+
			`<text x="%d" y="14">%s</text>`+
			`</g>`+
			`</svg>`,
		width, label, value,
		width,
		labelWidth,
		labelWidth, valueWidth, valueColor,
		width,
		labelWidth/2, label,
		labelWidth+valueWidth/2, value,
	)
}

// TinyUpvoteShield renders the vote count badge for a bot
func TinyUpvoteShield(votes int, botID string) string {
	return tiny("upvotes", strconv.Itoa(votes), "#8a6bfd")
}

// TinyOwnerShield renders the ownership badge for a bot
func TinyOwnerShield(ownerTag, ownerID string) string {
	return tiny("owner", ownerTag, "#007ec6")
}
