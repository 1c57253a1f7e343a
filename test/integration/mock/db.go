package mock

import (
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

// Db is an in-memory SQLite database shared by every scenario of a run.
type Db struct {
	DbConn *gorm.DB
	models []any
}

// NewDb opens the shared database on first use and migrates models.
func NewDb(models ...any) *Db {
	once.Do(func() {
		db = open(models)
	})
	return db
}

func open(models []any) *Db {
	dbConn, err := gorm.Open(sqlite.Open("file:bdd?mode=memory&cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	sqlDB, err := dbConn.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := dbConn.AutoMigrate(models...); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	return &Db{DbConn: dbConn, models: models}
}

// ClearDB removes every row, soft-deleted ones included.
func (d *Db) ClearDB() error {
	for _, model := range d.models {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error
		if err != nil {
			return fmt.Errorf("failed to clear %T: %w", model, err)
		}
	}
	return nil
}

// Count returns the number of live rows of model matching the query.
func (d *Db) Count(model any, query string, args ...any) (int64, error) {
	var count int64
	tx := d.DbConn.Model(model)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	err := tx.Count(&count).Error
	return count, err
}
