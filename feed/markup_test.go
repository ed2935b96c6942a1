package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderCommentText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "nice coat", "nice coat"},
		{"bold", "**wow**", "<strong>wow</strong>"},
		{"italic", "*subtle*", "<em>subtle</em>"},
		{"underline", "__note__", "<u>note</u>"},
		{"strike", "~~old~~", "<s>old</s>"},
		{"mention", "thanks @alice_1", `thanks <span class="mention">@alice_1</span>`},
		{"newline", "a\nb", "a<br>b"},
		{
			"combined",
			"**bold** and *italic* for @bob",
			`<strong>bold</strong> and <em>italic</em> for <span class="mention">@bob</span>`,
		},
		{
			"script is escaped before markup runs",
			"<script>alert(1)</script> **x**",
			"&lt;script&gt;alert(1)&lt;/script&gt; <strong>x</strong>",
		},
		{
			"markup cannot smuggle raw tags",
			"**<b>**",
			"<strong>&lt;b&gt;</strong>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderCommentText(tt.in))
		})
	}
}
