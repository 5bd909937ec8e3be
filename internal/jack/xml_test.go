package jack

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteTokensXML(t *testing.T) {
	src := `if (x < 0) { let s = "a&b"; } // done`

	var out strings.Builder
	err := WriteTokensXML(&out, NewScanner([]rune(src)))

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(`<tokens>
<keyword> if </keyword>
<symbol> ( </symbol>
<identifier> x </identifier>
<symbol> &lt; </symbol>
<integerConstant> 0 </integerConstant>
<symbol> ) </symbol>
<symbol> { </symbol>
<keyword> let </keyword>
<identifier> s </identifier>
<symbol> = </symbol>
<stringConstant> a&amp;b </stringConstant>
<symbol> ; </symbol>
<symbol> } </symbol>
</tokens>
`, out.String())
}

func TestWriteTokensXMLEmpty(t *testing.T) {
	var out strings.Builder
	err := WriteTokensXML(&out, NewScanner([]rune("  // nothing\n")))

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal("<tokens>\n</tokens>\n", out.String())
}

func TestWriteTokensXMLStopsAtError(t *testing.T) {
	var out strings.Builder
	err := WriteTokensXML(&out, NewScanner([]rune("let x = 99999;")))

	assert := assert.New(t)
	var lexErr *LexError
	assert.ErrorAs(err, &lexErr)
	assert.Empty(out.String())
}
