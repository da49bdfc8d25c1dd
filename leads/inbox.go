// Package leads handles externally supplied lead records: reading them from
// the inbox directory and matching them to target webinars and existing
// registrants.
package leads

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Inbox reads pending lead files from a directory. Every consumed file is
// renamed from .json to .txt so the next run does not ingest it again;
// consumption is independent of what later stages do with the leads.
type Inbox struct {
	dir string
}

// NewInbox creates an Inbox over dir.
func NewInbox(dir string) *Inbox {
	return &Inbox{dir: dir}
}

// ReadAll loads every pending lead. A file that cannot be read or parsed is
// skipped with a warning and still marked consumed, so one bad drop cannot
// wedge the inbox. A missing inbox directory yields an empty list.
func (in *Inbox) ReadAll() ([]Lead, error) {
	if _, err := os.Stat(in.dir); os.IsNotExist(err) {
		return nil, nil
	}

	paths, err := filepath.Glob(filepath.Join(in.dir, "*.json"))
	if err != nil {
		return nil, err
	}

	var all []Lead
	for _, path := range paths {
		batch, err := readLeadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("skipping malformed lead file")
		} else {
			all = append(all, batch...)
		}

		if err := in.markConsumed(path); err != nil {
			return nil, err
		}
	}
	return all, nil
}

func readLeadFile(path string) ([]Lead, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var batch []Lead
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// markConsumed renames x.json to x.txt, falling back to a timestamped name
// when the plain rename target already exists.
func (in *Inbox) markConsumed(path string) error {
	target := strings.TrimSuffix(path, ".json") + ".txt"
	if _, err := os.Stat(target); err == nil {
		timestamp := NowTimeFunc().Format("20060102150405.000")
		target = fmt.Sprintf("%s_%s.txt",
			strings.TrimSuffix(path, ".json"), strings.ReplaceAll(timestamp, ".", ""))
	}
	return os.Rename(path, target)
}
