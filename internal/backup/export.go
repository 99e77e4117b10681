package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/utils"
)

// ExportPath is the default location of an export taken at snap.ExportDate:
// <dir>/exports/streakly-backup-YYYY-MM-DD.json.
func ExportPath(dir string, snap models.ExportSnapshot) string {
	name := constants.ExportFilePrefix + utils.FormatDate(snap.ExportDate) + constants.ExportFileSuffix
	return filepath.Join(dir, constants.ExportDirName, name)
}

// EncodeExport writes snap to w as indented JSON.
func EncodeExport(w io.Writer, snap models.ExportSnapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}

// WriteExport writes snap as indented JSON to path, creating parent
// directories. An existing file is replaced.
func WriteExport(path string, snap models.ExportSnapshot) error {
	var buf bytes.Buffer
	if err := EncodeExport(&buf, snap); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}
