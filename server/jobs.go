package server

import (
	"context"
	"fmt"

	"github.com/Daskott/folio/server/work"
)

const BACKUP_SQLITE_DB_HANDLER = "backup_sqlite_db"

// backupSqliteDb uploads the database file to google storage
func (s *folioServer) backupSqliteDb(map[string]interface{}) error {
	if s.gStorage == nil {
		return fmt.Errorf("backupSqliteDb: google storage is not configured")
	}

	err := s.gStorage.UploadFile(context.Background(), s.storage.Bucket, s.storage.Prefix, s.dbFilePath)
	if err != nil {
		return fmt.Errorf("backupSqliteDb: %v", err)
	}

	return nil
}

func (s *folioServer) registerJobHandlers() error {
	if !s.storage.EnableSqliteBackupAndSync {
		return nil
	}

	return s.workerPool.Register(BACKUP_SQLITE_DB_HANDLER, s.backupSqliteDb)
}

func (s *folioServer) enqueueJobs() error {
	if !s.storage.EnableSqliteBackupAndSync {
		return nil
	}

	return s.workerPool.PeriodicallyPerform(s.storage.SqliteBackupSchedule, work.JobParams{
		Name:    BACKUP_SQLITE_DB_HANDLER,
		Handler: BACKUP_SQLITE_DB_HANDLER,
		Unique:  true,
		Args:    map[string]interface{}{},
	})
}
