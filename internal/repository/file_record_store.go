package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"FarmPulse/internal/domain/models"
	applogger "FarmPulse/pkg/logger"
)

// FileRecordStore keeps the whole record sequence in one JSON file.
// Every save rewrites the file; callers serialise mutations themselves.
type FileRecordStore struct {
	path   string
	logger *applogger.Logger
}

func NewFileRecordStore(path string, logger *applogger.Logger) *FileRecordStore {
	return &FileRecordStore{path: path, logger: logger}
}

// Load reads the stored records. A missing file is a normal first run
// and reads as empty; a corrupt file is logged and also reads as empty,
// so a bad store never takes the service down.
func (s *FileRecordStore) Load(_ context.Context) []models.MarketRecord {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("record store unreadable, starting empty",
				applogger.String("path", s.path),
				applogger.Error(err))
		}
		return []models.MarketRecord{}
	}
	var records []models.MarketRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		s.logger.Warn("record store corrupt, starting empty",
			applogger.String("path", s.path),
			applogger.Error(err))
		return []models.MarketRecord{}
	}
	if records == nil {
		records = []models.MarketRecord{}
	}
	return records
}

// Save rewrites the store through a temp file and rename, so a crash
// mid-write leaves the previous contents intact.
func (s *FileRecordStore) Save(_ context.Context, records []models.MarketRecord) error {
	if records == nil {
		records = []models.MarketRecord{}
	}
	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}
