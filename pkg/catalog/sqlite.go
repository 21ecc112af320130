// Package catalog implements the optional side-store for human-facing
// recording metadata (title, artist, source URL). It is independent
// of the in-memory hash index that recognition actually queries: a
// service runs fine without a catalog at all.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/echofp/echofp/pkg/echofp"
)

// DefaultDBFile is used when no path is given to Open.
const DefaultDBFile = "echofp.sqlite3"

// Store is a GORM-backed implementation of echofp.Catalog.
type Store struct {
	db *gorm.DB
}

// recording is the persisted row for one catalog entry.
type recording struct {
	RID        string `gorm:"primaryKey"`
	Title      string `gorm:"index:idx_recording_meta,priority:1"`
	Artist     string `gorm:"index:idx_recording_meta,priority:2"`
	SourceURL  string
	DurationMs int
	CreatedAt  time.Time
}

// Open creates or opens a SQLite-backed catalog at path, migrating the
// schema if needed.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultDBFile
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("catalog: creating db dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: opening sqlite db: %w", err)
	}
	if err := db.AutoMigrate(&recording{}); err != nil {
		return nil, fmt.Errorf("catalog: auto migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) RegisterRecording(rid, title, artist, sourceURL string, durationMs int) error {
	rec := recording{RID: rid, Title: title, Artist: artist, SourceURL: sourceURL, DurationMs: durationMs}
	return s.db.Create(&rec).Error
}

func (s *Store) GetRecording(rid string) (title, artist, sourceURL string, durationMs int, err error) {
	var rec recording
	if dbErr := s.db.Where("rid = ?", rid).First(&rec).Error; dbErr != nil {
		if errors.Is(dbErr, gorm.ErrRecordNotFound) {
			return "", "", "", 0, fmt.Errorf("catalog: recording %q not found", rid)
		}
		return "", "", "", 0, dbErr
	}
	return rec.Title, rec.Artist, rec.SourceURL, rec.DurationMs, nil
}

func (s *Store) DeleteRecording(rid string) error {
	return s.db.Where("rid = ?", rid).Delete(&recording{}).Error
}

func (s *Store) ListRecordings() ([]echofp.CatalogEntry, error) {
	var rows []recording
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]echofp.CatalogEntry, len(rows))
	for i, r := range rows {
		entries[i] = echofp.CatalogEntry{RID: r.RID, Title: r.Title, Artist: r.Artist, SourceURL: r.SourceURL, DurationMs: r.DurationMs}
	}
	return entries, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
