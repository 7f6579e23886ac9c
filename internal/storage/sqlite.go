package storage

import (
	"errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// kvEntry is one row of the key-value table.
type kvEntry struct {
	Key   string `gorm:"column:kv_key;primaryKey"`
	Value string `gorm:"column:kv_value;not null"`
}

func (kvEntry) TableName() string {
	return "weekly_kv"
}

// SQLiteKV stores keys in a single SQLite table through GORM.
type SQLiteKV struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) a SQLite database file. An empty path
// opens a private in-memory database.
func OpenSQLite(path string) (*SQLiteKV, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// One connection keeps an in-memory database alive and shared.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, err
	}

	return &SQLiteKV{db: db}, nil
}

// Get retrieves the string stored under key.
func (s *SQLiteKV) Get(key string) (string, bool, error) {
	var entry kvEntry
	err := s.db.Where("kv_key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return entry.Value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *SQLiteKV) Set(key, value string) error {
	entry := kvEntry{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kv_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"kv_value"}),
	}).Create(&entry).Error
}

// Delete removes a key.
func (s *SQLiteKV) Delete(key string) error {
	return s.db.Where("kv_key = ?", key).Delete(&kvEntry{}).Error
}

// Close closes the underlying connection pool.
func (s *SQLiteKV) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
