package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "empty",
			text: "",
			want: "",
		},
		{
			name: "plain text",
			text: "take with warm water",
			want: "take with warm water",
		},
		{
			name: "bold span",
			text: "**Condition Identified:** Gastritis",
			want: "<strong>Condition Identified:</strong> Gastritis",
		},
		{
			name: "multiple bold spans",
			text: "**1.** rest **2.** hydrate",
			want: "<strong>1.</strong> rest <strong>2.</strong> hydrate",
		},
		{
			name: "newlines become breaks",
			text: "line one\nline two",
			want: "line one<br>line two",
		},
		{
			name: "bold and newlines together",
			text: "**Recommended:**\n\nparacetamol",
			want: "<strong>Recommended:</strong><br><br>paracetamol",
		},
		{
			name: "unpaired marker renders literally",
			text: "just **dangling",
			want: "just **dangling",
		},
		{
			name: "html is escaped",
			text: "<script>alert(1)</script> & **bold**",
			want: "&lt;script&gt;alert(1)&lt;/script&gt; &amp; <strong>bold</strong>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToHTML(tt.text))
		})
	}
}
