// file:artkv/pkg/x_db/entry.go
package x_db

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//---------------------
// Entry Model
//---------------------

// Entry is one persisted key/value pair.
type Entry struct {
	Key       []byte `gorm:"primaryKey"`
	Value     []byte
	UpdatedAt time.Time
}

// TableName keeps the table name stable across drivers.
func (Entry) TableName() string { return "art_entries" }

const defaultBatch = 500

//---------------------
// Snapshot
//---------------------

// SaveSnapshot replaces the whole table with entries in one transaction.
func SaveSnapshot(ctx context.Context, db *gorm.DB, entries []Entry) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&Entry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.CreateInBatches(entries, defaultBatch).Error
	})
}

// Upsert writes entries, overwriting rows with the same key.
func Upsert(ctx context.Context, db *gorm.DB, entries ...Entry) error {
	if len(entries) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		CreateInBatches(entries, defaultBatch).Error
}

// Remove deletes the rows for keys.
func Remove(ctx context.Context, db *gorm.DB, keys ...[]byte) error {
	if len(keys) == 0 {
		return nil
	}
	return db.WithContext(ctx).Where("key IN ?", keys).Delete(&Entry{}).Error
}

// Each streams every row to fn in primary key order, batch rows at a time.
func Each(ctx context.Context, db *gorm.DB, batch int, fn func(Entry) error) error {
	if batch <= 0 {
		batch = defaultBatch
	}
	var (
		rows []Entry
		ferr error
	)
	res := db.WithContext(ctx).FindInBatches(&rows, batch, func(_ *gorm.DB, _ int) error {
		for _, e := range rows {
			if ferr = fn(e); ferr != nil {
				return ferr
			}
		}
		return nil
	})
	if ferr != nil {
		return ferr
	}
	return res.Error
}

// Count returns the number of stored rows.
func Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&Entry{}).Count(&n).Error
	return n, err
}
