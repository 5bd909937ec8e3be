package jack

import (
	"bufio"
	"io"
	"strings"
)

var xmlEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	"&", "&amp;",
	`"`, "&quot;",
)

// WriteTokensXML consumes the scanner and writes every token as an XML
// element named after the token's type. The listing is what the analyzer
// stage of the toolchain compares against.
func WriteTokensXML(w io.Writer, scanner *Scanner) error {
	toks, err := scanner.Tokens()
	if err != nil {
		return err
	}
	buf := bufio.NewWriter(w)
	buf.WriteString("<tokens>\n")
	for _, tok := range toks {
		tag := tok.Typ.String()
		buf.WriteString("<" + tag + "> " + xmlEscaper.Replace(tok.Lexeme) + " </" + tag + ">\n")
	}
	buf.WriteString("</tokens>\n")
	return buf.Flush()
}
