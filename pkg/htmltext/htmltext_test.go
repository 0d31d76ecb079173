package htmltext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripTags(t *testing.T) {
	assert.Equal(t, "Hello World", StripTags("<p>Hello <b>World</b></p>"))
	assert.Equal(t, "", StripTags("<p><br></p>"))
	assert.Equal(t, "", StripTags("   <div>&nbsp;</div>  "))
	assert.Equal(t, `a < b & "c"`, StripTags(`a &lt; b &amp; &quot;c&quot;`))
	assert.Equal(t, "plain text", StripTags("plain text"))
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "Hello World", Snippet("<h1>Hello</h1>\n<p>World</p>", 100))

	long := "<p>" + strings.Repeat("abcdefghij", 30) + "</p>"
	got := Snippet(long, 100)
	assert.Len(t, []rune(got), 103) // 100 runes plus the ellipsis
	assert.True(t, strings.HasSuffix(got, "..."))
}
