package display

import (
	"strings"

	"github.com/antigloss/go/logger"
)

var charMap = map[rune]string{'´': "'", '`': "'", '‘': "'", '’': "'", '“': "\"", '”': "\"",
	'á': "a", 'à': "a", 'â': "a", 'ã': "a", 'é': "e", 'ê': "e", 'è': "e", 'í': "i", 'ì': "i",
	'ä': "ae", 'Ä': "Ae", 'ö': "oe", 'Ö': "Oe", 'ü': "ue", 'Ü': "Ue", 'ß': "ss", '…': "...",
	'Ó': "O", 'ó': "o", 'ò': "o", 'õ': "o", 'ñ': "n", 'Ñ': "N", 'ø': "o", 'É': "E", 'ú': "u",
	'₱': "P", '€': "EUR", '\t': " ", '\n': " ", '\r': ""}

// Beautify removes characters that cannot be displayed on the LCD/OLED. These
// displays can only show printable ascii. Via charMap the best possible
// translation is made, everything else is dropped. Surrounding blanks are trimmed.
func Beautify(text string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(text) {
		if s, ok := charMap[r]; ok {
			b.WriteString(s)
			continue
		}
		if r < 32 || r > 126 {
			logger.Trace("Illegal rune: %d %q", r, r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
