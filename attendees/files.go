package attendees

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	apperrors "github.com/jrsteele09/go-webinar-sync/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// FileWriter persists downloaded attendee details as timestamped JSON
// files, one file per webinar per run.
type FileWriter struct {
	outputDir string
}

// NewFileWriter creates a FileWriter rooted at outputDir.
func NewFileWriter(outputDir string) *FileWriter {
	return &FileWriter{outputDir: outputDir}
}

// Save writes the details for one webinar. Empty batches produce no file.
func (fw *FileWriter) Save(details []Detail, webinarKey string) error {
	if len(details) == 0 {
		return nil
	}
	if err := os.MkdirAll(fw.outputDir, 0o750); err != nil {
		return apperrors.Wrapf(apperrors.ErrStorage, "create output dir (%v)", err)
	}

	data, err := json.MarshalIndent(details, "", "  ")
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrStorage, "marshal attendee details (%v)", err)
	}

	now := NowTimeFunc()
	name := fmt.Sprintf("attendee_%s_%s%04d.json", webinarKey,
		now.Format("20060102150405"), now.Nanosecond()/100000)
	if err := os.WriteFile(filepath.Join(fw.outputDir, name), data, 0o640); err != nil {
		return apperrors.Wrapf(apperrors.ErrStorage, "write attendee details (%v)", err)
	}
	return nil
}
