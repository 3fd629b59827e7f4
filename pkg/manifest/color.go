// SPDX-License-Identifier: MPL-2.0

package manifest

import "regexp"

// colorSpan matches one |cRRGGBB<text>|r span. The lazy group keeps adjacent
// spans separate; an opening |c without a closing |r never matches.
var colorSpan = regexp.MustCompile(`\|c[0-9a-fA-F]{6}(.*?)\|r`)

// StripColors returns text with every color span replaced by its inner text.
// Text without markup is returned unchanged.
func StripColors(text string) string {
	if text == "" {
		return text
	}
	return colorSpan.ReplaceAllString(text, "$1")
}
