package transcriber

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ModelSize selects a Whisper model.
type ModelSize string

const (
	Tiny   ModelSize = "tiny"
	Base   ModelSize = "base"
	Small  ModelSize = "small"
	Medium ModelSize = "medium"
	Large  ModelSize = "large"
)

// ModelSizes lists the supported sizes, smallest first.
var ModelSizes = []ModelSize{Tiny, Base, Small, Medium, Large}

// ParseModelSize validates s.
func ParseModelSize(s string) (ModelSize, error) {
	m := ModelSize(strings.ToLower(strings.TrimSpace(s)))
	for _, size := range ModelSizes {
		if m == size {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown whisper model %q", s)
}

// FileName is the ggml weights file for the size, as shipped by whisper.cpp.
// whisper.cpp publishes large only as versioned weights; v3 is current.
func (m ModelSize) FileName() string {
	if m == Large {
		return "ggml-large-v3.bin"
	}
	return "ggml-" + string(m) + ".bin"
}

// PathIn returns the weights path inside dir.
func (m ModelSize) PathIn(dir string) string {
	return filepath.Join(dir, m.FileName())
}
