package registrants

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

// FileWriter persists downloaded registrant details as timestamped JSON
// files, one file per webinar per run.
type FileWriter struct {
	outputDir  string
	dummyPhone string
}

// NewFileWriter creates a FileWriter. dummyPhone is the placeholder value
// the upload stage writes when a lead has no phone number; it is scrubbed
// back to empty on the way out so the placeholder never leaks downstream.
func NewFileWriter(outputDir, dummyPhone string) *FileWriter {
	return &FileWriter{outputDir: outputDir, dummyPhone: dummyPhone}
}

// Save writes the details for one webinar. Empty batches produce no file.
func (fw *FileWriter) Save(details []Detail, webinarKey string) error {
	if len(details) == 0 {
		return nil
	}
	if err := os.MkdirAll(fw.outputDir, 0o750); err != nil {
		return apperrors.Wrapf(apperrors.ErrStorage, "create output dir (%v)", err)
	}

	scrubbed := make([]Detail, len(details))
	copy(scrubbed, details)
	for i := range scrubbed {
		if scrubbed[i].Phone == fw.dummyPhone {
			scrubbed[i].Phone = ""
		}
	}

	data, err := json.MarshalIndent(scrubbed, "", "  ")
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrStorage, "marshal registrant details (%v)", err)
	}

	name := fmt.Sprintf("registrant_%s_%s.json", webinarKey, fileTimestamp(NowTimeFunc()))
	if err := os.WriteFile(filepath.Join(fw.outputDir, name), data, 0o640); err != nil {
		return apperrors.Wrapf(apperrors.ErrStorage, "write registrant details (%v)", err)
	}
	return nil
}

// fileTimestamp renders t with sub-second precision so files from the same
// webinar in quick succession never collide.
func fileTimestamp(t time.Time) string {
	return t.Format("20060102150405") + fmt.Sprintf("%04d", t.Nanosecond()/100000)
}
