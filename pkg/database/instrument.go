package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/pkg/metrics"
)

const startedKey = "metrics:started"

// instrumentation is a gorm plugin timing every statement into
// metrics.DBQueryDuration.
type instrumentation struct{}

func (instrumentation) Name() string { return "storefront:metrics" }

func (instrumentation) Initialize(db *gorm.DB) error {
	cb := db.Callback()

	hooks := []struct {
		op     string
		before func(name string, fn func(*gorm.DB)) error
		after  func(name string, fn func(*gorm.DB)) error
	}{
		{"create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"select", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}

	for _, h := range hooks {
		if err := h.before("metrics:before_"+h.op, startTimer); err != nil {
			return err
		}
		if err := h.after("metrics:after_"+h.op, stopTimer(h.op)); err != nil {
			return err
		}
	}
	return nil
}

func startTimer(db *gorm.DB) {
	db.InstanceSet(startedKey, time.Now())
}

func stopTimer(op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(startedKey)
		if !ok {
			return
		}
		started, ok := v.(time.Time)
		if !ok {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "none"
		}
		metrics.ObserveDBQuery(op, table, time.Since(started))
	}
}
