package transcriber

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/votxt/internal/apperr"
)

// SupportedFormats are the accepted upload extensions.
var SupportedFormats = []string{".wav", ".mp3", ".m4a"}

// IsSupported reports whether path has an accepted audio extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats {
		if ext == format {
			return true
		}
	}
	return false
}

// checkInput returns an input error for missing, empty or unsupported files.
func checkInput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return apperr.New(apperr.Input, "open audio", err)
	}
	if info.IsDir() {
		return apperr.Newf(apperr.Input, "open audio", "%s is a directory", path)
	}
	if info.Size() == 0 {
		return apperr.Newf(apperr.Input, "open audio", "%s is empty", path)
	}
	if !IsSupported(path) {
		return apperr.Newf(apperr.Input, "open audio",
			"unsupported format %q (want %s)", filepath.Ext(path), strings.Join(SupportedFormats, ", "))
	}
	return nil
}

// cleanTranscript strips whisper.cpp timestamp prefixes and joins lines.
func cleanTranscript(out string) string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "[") && strings.Contains(line, "-->") {
			if idx := strings.Index(line, "]"); idx != -1 {
				line = strings.TrimSpace(line[idx+1:])
			}
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, " ")
}

func describe(path string) string {
	return fmt.Sprintf("%s (%s)", filepath.Base(path), strings.ToLower(filepath.Ext(path)))
}
