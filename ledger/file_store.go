package ledger

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/jrsteele09/go-webinar-sync/internal/errors"
)

var _ Store = (*FileStore)(nil)

// FileStore is a newline-delimited key file. Writes are O_APPEND only, so
// the file grows monotonically and a concurrent reader can never observe a
// rewrite, as long as this process is the only writer.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at path. The file is created on the
// first append.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads every key line into a set. Blank lines are ignored, which also
// makes a trailing partial flush harmless on the read side.
func (fs *FileStore) Load() (map[string]struct{}, error) {
	file, err := os.Open(fs.path)
	if os.IsNotExist(err) {
		return map[string]struct{}{}, nil
	}
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrStorage, "open ledger %s (%v)", fs.path, err)
	}
	defer file.Close()

	keys := make(map[string]struct{})
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		keys[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrStorage, "read ledger %s (%v)", fs.path, err)
	}
	return keys, nil
}

// Append writes keys as new lines at the end of the ledger file.
func (fs *FileStore) Append(keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o750); err != nil {
		return apperrors.Wrapf(apperrors.ErrStorage, "create ledger dir (%v)", err)
	}

	file, err := os.OpenFile(fs.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrStorage, "open ledger %s for append (%v)", fs.path, err)
	}
	defer file.Close()

	if _, err := file.WriteString(strings.Join(keys, "\n") + "\n"); err != nil {
		return apperrors.Wrapf(apperrors.ErrStorage, "append to ledger %s (%v)", fs.path, err)
	}
	return nil
}
