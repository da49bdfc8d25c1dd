package webinars

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	apperrors "github.com/jrsteele09/go-webinar-sync/internal/errors"
)

const snapshotFileName = "webinars.json"

// SnapshotWriter persists the full webinar list of a run as one JSON
// document. The snapshot is overwritten every run; it is not ledgered.
type SnapshotWriter struct {
	outputDir string
}

// NewSnapshotWriter creates a SnapshotWriter rooted at outputDir.
func NewSnapshotWriter(outputDir string) *SnapshotWriter {
	return &SnapshotWriter{outputDir: outputDir}
}

// Save writes the aggregated webinar list, synthesizing the paging block the
// way the list endpoint would report a single combined page.
func (sw *SnapshotWriter) Save(all []Webinar) error {
	if err := os.MkdirAll(sw.outputDir, 0o750); err != nil {
		return apperrors.Wrapf(apperrors.ErrStorage, "create output dir (%v)", err)
	}

	snapshot := ListResponse{
		Embedded: &Embedded{Webinars: all},
		Page: &Page{
			Size:          len(all),
			TotalElements: len(all),
			TotalPages:    1,
			Number:        0,
		},
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrStorage, "marshal webinar snapshot (%v)", err)
	}

	path := filepath.Join(sw.outputDir, snapshotFileName)
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return apperrors.Wrapf(apperrors.ErrStorage, "write webinar snapshot (%v)", err)
	}
	return nil
}
