package app

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/omhp/weektaak/internal/logger"
)

// TmpSuffix marks a file that is still being written
const TmpSuffix = ".tmp"

// ErrNoPlaceholder is returned for a filename template without {}
var ErrNoPlaceholder = errors.New("filename template must contain {}")

// FormatFilenameTemplate inserts the lowercased name into template
func FormatFilenameTemplate(template, name string) (string, error) {
	if !strings.Contains(template, "{}") {
		return "", fmt.Errorf("%w: %s", ErrNoPlaceholder, template)
	}
	return strings.ReplaceAll(template, "{}", strings.ToLower(name)), nil
}

// writeFileAtomic writes to a temp file first and renames it into place
func writeFileAtomic(path string, data []byte) error {
	tmpFile := path + TmpSuffix
	if err := os.WriteFile(tmpFile, data, FilePermissions); err != nil {
		return err
	}
	return os.Rename(tmpFile, path)
}

// CleanupCalendars removes every .ics file in dir. A missing dir is not an error.
func CleanupCalendars(dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		logger.Info("Nothing to clean up", "dir", dir)
		return nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.ics"))
	if err != nil {
		return err
	}
	for _, file := range files {
		if err := os.Remove(file); err != nil {
			return fmt.Errorf("failed to remove %s: %w", file, err)
		}
	}
	return nil
}

// WriteCalendars replaces the personal calendars in the template's directory
// and, when adminPath is set, writes the admin calendar. It returns the written paths.
func WriteCalendars(r *Roster, template, adminPath string, stamp time.Time) ([]string, error) {
	if _, err := FormatFilenameTemplate(template, "x"); err != nil {
		return nil, err
	}

	dir := filepath.Dir(template)
	if err := CleanupCalendars(dir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create calendar directory: %w", err)
	}

	var written []string
	owners := make(map[string]string)
	for _, person := range r.People() {
		path, _ := FormatFilenameTemplate(template, person)
		other, shared := owners[path]
		if shared {
			logger.Warn("Names differ only in case, overwriting calendar",
				"path", path, "name", person, "overwritten", other)
		}
		owners[path] = person

		var buf bytes.Buffer
		if err := WriteCalendar(&buf, "Weektaken "+person, PersonalEvents(r, person), stamp); err != nil {
			return written, err
		}
		if err := writeFileAtomic(path, buf.Bytes()); err != nil {
			return written, fmt.Errorf("failed to write calendar for %s: %w", person, err)
		}
		if !shared {
			written = append(written, path)
		}
	}

	if adminPath != "" {
		var buf bytes.Buffer
		if err := WriteCalendar(&buf, "Weektaken", AdminEvents(r), stamp); err != nil {
			return written, err
		}
		if err := writeFileAtomic(adminPath, buf.Bytes()); err != nil {
			return written, fmt.Errorf("failed to write admin calendar: %w", err)
		}
		written = append(written, adminPath)
	}

	return written, nil
}

// WriteJSONFile writes the roster in the tasks.json layout
func WriteJSONFile(r *Roster, path string) error {
	data, err := EncodeJSON(r)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return writeFileAtomic(path, data)
}
