// Package history records created projects in a sqlite database so the CLI
// can list them again.
package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-projectgen/pkg/project"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Record is one created project.
type Record struct {
	gorm.Model
	Name     string `gorm:"index"`
	File     string `gorm:"index"`
	Template string
}

// Store persists records through gorm.
type Store struct {
	db *gorm.DB
}

// Open connects to the sqlite database at path, creating its directory, and
// migrates the schema.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("history: database path is required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("history: mkdir %s: %w", filepath.Dir(path), err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("history: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Record stores p as the most recent project. An older record for the same
// file is replaced.
func (s *Store) Record(ctx context.Context, p project.Project, template string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("history: store is closed")
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("file = ?", p.File).Delete(&Record{}).Error; err != nil {
			return fmt.Errorf("history: replace %s: %w", p.File, err)
		}
		rec := &Record{Name: p.Name, File: p.File, Template: template}
		if err := tx.Create(rec).Error; err != nil {
			return fmt.Errorf("history: record %s: %w", p.File, err)
		}
		return nil
	})
}

// Recent returns records newest first. A limit of zero or less returns all.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("history: store is closed")
	}
	query := s.db.WithContext(ctx).Order("id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var records []Record
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	return records, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("history: close: %w", err)
	}
	s.db = nil
	return sqlDB.Close()
}
