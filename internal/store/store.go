// Package store persists scraped tool records between runs.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/law-makers/toolscout/internal/utils/output"
	"github.com/law-makers/toolscout/pkg/models"
	"github.com/rs/zerolog/log"
)

// File names inside the cache directory
const (
	CacheFile    = "futuretools_cache.csv"
	MetadataFile = "cache_metadata.json"
)

var (
	// ErrNoCache is returned by Load when nothing has been saved yet
	ErrNoCache = errors.New("no cached tools")
	// ErrNothingToSave is returned by Save for a result without records
	ErrNothingToSave = errors.New("no tools to save")
)

// Store keeps the latest scrape as a CSV file plus a small metadata document
type Store struct {
	dir string
}

// New returns a Store rooted at dir. The directory is created on first Save.
func New(dir string) *Store {
	if dir == "" {
		dir = "."
	}
	return &Store{dir: dir}
}

// CachePath returns the location of the record cache
func (s *Store) CachePath() string {
	return filepath.Join(s.dir, CacheFile)
}

// MetadataPath returns the location of the metadata document
func (s *Store) MetadataPath() string {
	return filepath.Join(s.dir, MetadataFile)
}

// Save replaces the cache with result's records
func (s *Store) Save(result models.ScrapeResult) error {
	if len(result.Records) == 0 {
		return ErrNothingToSave
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	if err := writeAtomic(s.CachePath(), func(f *os.File) error {
		return output.WriteCSV(f, result.Records)
	}); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}

	completed := result.CompletedAt
	if completed.IsZero() {
		completed = time.Now()
	}
	meta := models.CacheMetadata{
		LastUpdate: completed.Local().Format(models.ScrapedAtLayout),
		ToolCount:  len(result.Records),
	}
	if err := writeAtomic(s.MetadataPath(), func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}

	log.Debug().
		Str("path", s.CachePath()).
		Int("tool_count", meta.ToolCount).
		Msg("Cache saved")
	return nil
}

// Load returns the cached records and metadata. A cache without a metadata
// file gets metadata derived from the records.
func (s *Store) Load() ([]models.ToolRecord, models.CacheMetadata, error) {
	f, err := os.Open(s.CachePath())
	if errors.Is(err, os.ErrNotExist) {
		return nil, models.CacheMetadata{}, ErrNoCache
	}
	if err != nil {
		return nil, models.CacheMetadata{}, err
	}
	defer f.Close()

	records, err := output.ReadCSV(f)
	if err != nil {
		return nil, models.CacheMetadata{}, fmt.Errorf("read cache: %w", err)
	}

	meta, err := s.readMetadata()
	if err != nil {
		log.Debug().Err(err).Msg("Cache metadata unavailable, deriving from records")
		meta = models.CacheMetadata{ToolCount: len(records)}
		if st, statErr := f.Stat(); statErr == nil {
			meta.LastUpdate = st.ModTime().Local().Format(models.ScrapedAtLayout)
		}
	}
	return records, meta, nil
}

func (s *Store) readMetadata() (models.CacheMetadata, error) {
	var meta models.CacheMetadata
	raw, err := os.ReadFile(s.MetadataPath())
	if err != nil {
		return meta, err
	}
	if err := json.Unmarshal(raw, &meta); err != nil {
		return meta, fmt.Errorf("decode metadata: %w", err)
	}
	return meta, nil
}

// Clear deletes the cache and metadata. Missing files are ignored.
func (s *Store) Clear() error {
	for _, p := range []string{s.CachePath(), s.MetadataPath()} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// writeAtomic writes via a temp file in the same directory and renames it into place
func writeAtomic(path string, write func(*os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
