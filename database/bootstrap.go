// database/bootstrap.go
package database

import (
	"fmt"
	"log"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agrismart/entities"
)

// crops and tasks keep a hand-written schema so the foreign key and the
// column defaults live in the table. Dates are TEXT: the driver rewrites
// DATE columns into timestamps on read.
const createCropsSQL = `
CREATE TABLE IF NOT EXISTS crops (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    variety TEXT,
    planted_date TEXT,
    status TEXT DEFAULT 'growing'
);`

const createTasksSQL = `
CREATE TABLE IF NOT EXISTS tasks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    crop_id INTEGER,
    task_name TEXT NOT NULL,
    due_date TEXT,
    completed INTEGER DEFAULT 0,
    FOREIGN KEY(crop_id) REFERENCES crops(id)
);`

// OpenSQLite opens the store at path and makes sure every table exists.
// The caller owns the handle and must Close it on shutdown.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql handle: %w", err)
	}
	// sqlite serializes writers anyway; one connection keeps :memory: dbs shared
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	log.Printf("[db] opened %s", path)
	return db, nil
}

// Migrate is idempotent.
func Migrate(db *gorm.DB) error {
	// referential integrity is declared, not enforced
	if err := db.Exec(`PRAGMA foreign_keys=OFF`).Error; err != nil {
		return fmt.Errorf("pragma foreign_keys: %w", err)
	}
	for _, stmt := range []string{createCropsSQL, createTasksSQL} {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	if err := db.AutoMigrate(
		&entities.KBDocument{},
		&entities.KBChunk{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
