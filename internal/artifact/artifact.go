// Package artifact writes the downloadable transcript and summary files.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	TranscriptName = "transcription"
	SummaryName    = "summary"
)

// NewJobDir creates <root>/<timestamp>-<id> for one processed file.
func NewJobDir(root string, now time.Time) (string, error) {
	id := strings.SplitN(uuid.NewString(), "-", 2)[0]
	dir := filepath.Join(root, now.Format("20060102-150405")+"-"+id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create job dir: %w", err)
	}
	return dir, nil
}

// Write stores body as <dir>/<name>.txt and <dir>/<name>.docx. The .txt is
// the primary artifact; a .docx failure is returned alongside its path.
func Write(dir, name, title, body string) (string, error) {
	txtPath := filepath.Join(dir, name+".txt")
	if err := os.WriteFile(txtPath, []byte(strings.TrimSpace(body)+"\n"), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", filepath.Base(txtPath), err)
	}

	docxPath := filepath.Join(dir, name+".docx")
	if err := textToDocx(title, body, docxPath); err != nil {
		return txtPath, fmt.Errorf("write %s: %w", filepath.Base(docxPath), err)
	}

	return txtPath, nil
}
