package csvfeed

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// DecodeReader wraps r so it yields UTF-8 text from the named encoding.
// An empty name or any UTF-8 label returns r unchanged.
func DecodeReader(r io.Reader, encoding string) (io.Reader, error) {
	name := strings.ToLower(strings.TrimSpace(encoding))
	if name == "" || name == "utf-8" || name == "utf8" {
		return r, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", encoding, err)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
