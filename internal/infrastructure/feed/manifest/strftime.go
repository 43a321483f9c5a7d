package manifest

import (
	"fmt"
	"strings"
)

var strftimeDirectives = map[byte]string{
	'd': "02",
	'e': "_2",
	'm': "01",
	'y': "06",
	'Y': "2006",
	'b': "Jan",
	'h': "Jan",
	'B': "January",
	'a': "Mon",
	'A': "Monday",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'p': "PM",
	'z': "-0700",
	'Z': "MST",
	'%': "%",
}

// StrftimeLayout converts a strftime pattern such as "%d/%m/%Y" into a Go
// time layout.
func StrftimeLayout(format string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(format) {
			return "", fmt.Errorf("dangling %% in %q", format)
		}
		i++
		layout, ok := strftimeDirectives[format[i]]
		if !ok {
			return "", fmt.Errorf("unsupported directive %%%c in %q", format[i], format)
		}
		b.WriteString(layout)
	}
	return b.String(), nil
}
