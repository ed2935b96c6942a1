package feed

import (
	"html"
	"regexp"
	"strings"
)

// Comment markup: five formatting rules over already-escaped text. The
// escape MUST happen before expansion, otherwise crafted text that looks
// like markup could smuggle markup past the escaper.
var (
	boldRe    = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe  = regexp.MustCompile(`\*(.*?)\*`)
	underRe   = regexp.MustCompile(`__(.*?)__`)
	strikeRe  = regexp.MustCompile(`~~(.*?)~~`)
	mentionRe = regexp.MustCompile(`@(\w+)`)
)

// RenderCommentText converts raw comment text into the restricted HTML the
// detail view shows: bold, italic, underline, strikethrough, @mention and
// line breaks, nothing else.
func RenderCommentText(text string) string {
	if text == "" {
		return ""
	}

	out := html.EscapeString(text)

	out = boldRe.ReplaceAllString(out, "<strong>$1</strong>")
	out = italicRe.ReplaceAllString(out, "<em>$1</em>")
	out = underRe.ReplaceAllString(out, "<u>$1</u>")
	out = strikeRe.ReplaceAllString(out, "<s>$1</s>")
	out = mentionRe.ReplaceAllString(out, `<span class="mention">@$1</span>`)
	out = strings.ReplaceAll(out, "\n", "<br>")

	return out
}
