package export

import (
	"bytes"
	"os"
)

// WriteIDFile writes one identifier per line, every line newline
// terminated, overwriting any previous file at path.
func WriteIDFile(path string, ids []string) error {
	var buf bytes.Buffer
	for _, id := range ids {
		buf.WriteString(id)
		buf.WriteByte('\n')
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
