package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// recordingPrefix names the files the recording controller saves.
const recordingPrefix = "recording-"

// archiveAudio stores the source audio in the job directory next to its
// transcript. Recordings saved under paths.temp are moved; anything else,
// such as a user's upload, is copied and left in place. Failures only log.
func (p *implProcessor) archiveAudio(ctx context.Context, audioPath, dir string) {
	dst := filepath.Join(dir, "audio"+strings.ToLower(filepath.Ext(audioPath)))

	if !p.isRecording(audioPath) {
		if err := copyFile(audioPath, dst); err != nil {
			p.logger.Warn(ctx, "Failed to archive audio %s: %v", audioPath, err)
			return
		}
		p.logger.Debug(ctx, "Archived audio: %s", dst)
		return
	}

	if err := moveFile(audioPath, dst); err != nil {
		p.logger.Warn(ctx, "Failed to move recording %s: %v", audioPath, err)
		return
	}
	p.logger.Debug(ctx, "Moved recording: %s -> %s", audioPath, dst)
}

func (p *implProcessor) isRecording(path string) bool {
	return strings.HasPrefix(filepath.Base(path), recordingPrefix) && inDir(path, p.cfg.Paths.Temp)
}

// inDir reports whether path lies inside dir.
func inDir(path, dir string) bool {
	if dir == "" {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// moveFile renames src to dst, falling back to copy and remove when they
// are on different filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("remove source: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy: %w", err)
	}
	return out.Close()
}
