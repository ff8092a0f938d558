package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// kvStore is the durable key-value primitive the store adapter sits on.
// Get reports absence through ok, not an error.
type kvStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

type kvRecord struct {
	Key   string `gorm:"primaryKey;size:64"`
	Value string
}

func (kvRecord) TableName() string {
	return "kv"
}

// sqliteKV backs the key-value area with an embedded SQLite database.
type sqliteKV struct {
	db *gorm.DB
}

func openKV(path string) (*sqliteKV, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.AutoMigrate(&kvRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &sqliteKV{db: db}, nil
}

func (s *sqliteKV) Get(key string) (string, bool, error) {
	var rec kvRecord
	if err := s.db.First(&rec, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get %q: %w", key, err)
	}
	return rec.Value, true, nil
}

func (s *sqliteKV) Set(key, value string) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&kvRecord{Key: key, Value: value}).Error
	if err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return nil
}

func (s *sqliteKV) Remove(key string) error {
	if err := s.db.Delete(&kvRecord{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to remove %q: %w", key, err)
	}
	return nil
}

const (
	tasksKey = "tasks"
	userKey  = "user"
)

// store persists the task collection and the cached user record under two
// fixed keys. Every operation replaces the whole record; there are no
// partial updates at this layer. Failures never propagate: reads degrade to
// "no data" and writes report success as a bool, both after logging.
type store struct {
	kv kvStore
}

func newStore(kv kvStore) *store {
	return &store{kv: kv}
}

func (s *store) readTasks() []task {
	value, ok, err := s.kv.Get(tasksKey)
	if err != nil {
		log.Println("error reading tasks:", err)
		return nil
	}
	if !ok {
		return nil
	}
	var tasks []task
	if err := json.Unmarshal([]byte(value), &tasks); err != nil {
		log.Println("error decoding tasks:", err)
		return nil
	}
	return tasks
}

func (s *store) writeTasks(tasks []task) bool {
	data, err := json.Marshal(tasks)
	if err != nil {
		log.Println("error encoding tasks:", err)
		return false
	}
	if err := s.kv.Set(tasksKey, string(data)); err != nil {
		log.Println("error saving tasks:", err)
		return false
	}
	return true
}

func (s *store) readUser() *user {
	value, ok, err := s.kv.Get(userKey)
	if err != nil {
		log.Println("error reading user:", err)
		return nil
	}
	if !ok {
		return nil
	}
	var u user
	if err := json.Unmarshal([]byte(value), &u); err != nil {
		log.Println("error decoding user:", err)
		return nil
	}
	return &u
}

func (s *store) writeUser(u user) bool {
	data, err := json.Marshal(u)
	if err != nil {
		log.Println("error encoding user:", err)
		return false
	}
	if err := s.kv.Set(userKey, string(data)); err != nil {
		log.Println("error saving user:", err)
		return false
	}
	return true
}

func (s *store) clearUser() bool {
	if err := s.kv.Remove(userKey); err != nil {
		log.Println("error clearing user:", err)
		return false
	}
	return true
}
