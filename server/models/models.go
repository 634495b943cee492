package models

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"

	sqlite "github.com/Daskott/gorm-sqlite-cipher"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const DB_FILE_NAME = "folio.db"

var (
	db *gorm.DB

	testDbCounter int64
)

// InitializeDb opens (or creates) the encrypted sqlite database in 'configDir'
// and migrates it.
func InitializeDb(passPhrase, configDir string) error {
	dsn := fmt.Sprintf("%v?_pragma_key=%v&_pragma_cipher_page_size=4096", DbFilePath(configDir), passPhrase)

	var err error
	db, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("InitializeDb: %v", err)
	}

	if err = singleConnection(); err != nil {
		return fmt.Errorf("InitializeDb: %v", err)
	}

	return autoMigrate()
}

// InitializeTestDb swaps the database for a fresh in-memory one
func InitializeTestDb() {
	n := atomic.AddInt64(&testDbCounter, 1)
	dsn := fmt.Sprintf("file:folio_test_%d?mode=memory&cache=shared", n)

	var err error
	db, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(fmt.Sprintf("failed to open test db: %v", err))
	}

	if err = singleConnection(); err != nil {
		panic(fmt.Sprintf("failed to configure test db: %v", err))
	}

	if err = autoMigrate(); err != nil {
		panic(fmt.Sprintf("failed to migrate test db: %v", err))
	}
}

func DbFilePath(configDir string) string {
	return filepath.Join(configDir, DB_FILE_NAME)
}

// Ping checks the database connection is usable.
func Ping() error {
	if db == nil {
		return errors.New("database is not initialized")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// sqlite only allows one writer at a time, so all access goes through one connection
func singleConnection() error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxOpenConns(1)
	return nil
}

func autoMigrate() error {
	err := db.AutoMigrate(&JobStatus{}, &Job{}, &ContactSubmission{})
	if err != nil {
		return fmt.Errorf("autoMigrate: %v", err)
	}

	return seedJobStatuses()
}

func seedJobStatuses() error {
	for name := range JobStatusNameMap {
		err := db.FirstOrCreate(&JobStatus{}, JobStatus{Name: name}).Error
		if err != nil {
			return fmt.Errorf("seedJobStatuses: %v", err)
		}
	}

	return nil
}
