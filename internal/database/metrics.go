package database

import (
	"time"

	"jobboard/internal/observability"

	"gorm.io/gorm"
)

const startedAtKey = "jobboard:started_at"

// RegisterMetrics installs GORM callbacks that feed
// observability.DatabaseQueryLatency.
func RegisterMetrics(db *gorm.DB) error {
	cb := db.Callback()

	type registration struct {
		operation string
		before    func(name string, fn func(*gorm.DB)) error
		after     func(name string, fn func(*gorm.DB)) error
	}

	regs := []registration{
		{"create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}

	for _, r := range regs {
		operation := r.operation
		if err := r.before("metrics:before_"+operation, func(tx *gorm.DB) {
			tx.InstanceSet(startedAtKey, time.Now())
		}); err != nil {
			return err
		}
		if err := r.after("metrics:after_"+operation, func(tx *gorm.DB) {
			v, ok := tx.InstanceGet(startedAtKey)
			if !ok {
				return
			}
			start, ok := v.(time.Time)
			if !ok {
				return
			}
			table := ""
			if tx.Statement != nil {
				table = tx.Statement.Table
			}
			observability.ObserveQuery(operation, table, start)
		}); err != nil {
			return err
		}
	}
	return nil
}
