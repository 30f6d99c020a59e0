// Package migration runs versioned schema migrations and tracks them in
// the schema_migrations table.
//
//	func init() {
//	    migration.Register("20260101000001_create_collections_table", &CreateCollectionsTable{})
//	}
//
// Migrations run in name order; a Run applies every pending migration as
// one batch, and Rollback reverses the most recent batch.
package migration

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/pkg/logger"
)

// Migration is one reversible schema change.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

type migrationRecord struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (migrationRecord) TableName() string { return "schema_migrations" }

type registered struct {
	name string
	m    Migration
}

var registry []registered

// Register adds a migration. Registering the same name twice panics.
func Register(name string, m Migration) {
	for _, r := range registry {
		if r.name == name {
			panic(fmt.Sprintf("migration: %q registered twice", name))
		}
	}
	registry = append(registry, registered{name: name, m: m})
	sort.Slice(registry, func(i, j int) bool { return registry[i].name < registry[j].name })
}

// ErrUnknownMigration is returned when a recorded migration is no longer registered.
var ErrUnknownMigration = errors.New("migration not registered")

// Status is one row of Runner.Status.
type Status struct {
	Name  string
	Ran   bool
	Batch int
}

type Runner struct {
	db  *gorm.DB
	out io.Writer
}

// New creates a Runner; progress lines go to out (nil discards them).
func New(db *gorm.DB, out io.Writer) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{db: db, out: out}
}

func (r *Runner) ensureTable() error {
	if err := r.db.AutoMigrate(&migrationRecord{}); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}
	return nil
}

func (r *Runner) ran() (map[string]migrationRecord, error) {
	var records []migrationRecord
	if err := r.db.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("migration: load history: %w", err)
	}
	out := make(map[string]migrationRecord, len(records))
	for _, rec := range records {
		out[rec.Name] = rec
	}
	return out, nil
}

// Run applies every pending migration in one batch and returns how many ran.
func (r *Runner) Run() (int, error) {
	if err := r.ensureTable(); err != nil {
		return 0, err
	}
	done, err := r.ran()
	if err != nil {
		return 0, err
	}

	var pending []registered
	for _, reg := range registry {
		if _, ok := done[reg.name]; !ok {
			pending = append(pending, reg)
		}
	}
	if len(pending) == 0 {
		fmt.Fprintln(r.out, "Nothing to migrate.")
		return 0, nil
	}

	batch, err := r.lastBatch()
	if err != nil {
		return 0, err
	}
	batch++

	for _, reg := range pending {
		fmt.Fprintf(r.out, "Migrating: %s\n", reg.name)
		err := r.db.Transaction(func(tx *gorm.DB) error {
			if err := reg.m.Up(tx); err != nil {
				return err
			}
			return tx.Create(&migrationRecord{Name: reg.name, Batch: batch}).Error
		})
		if err != nil {
			return 0, fmt.Errorf("migration: %s up: %w", reg.name, err)
		}
		fmt.Fprintf(r.out, "Migrated:  %s\n", reg.name)
	}

	logger.Info("migration: done", "ran", len(pending), "batch", batch)
	return len(pending), nil
}

// Rollback reverses the most recent batch and returns how many were undone.
func (r *Runner) Rollback() (int, error) {
	if err := r.ensureTable(); err != nil {
		return 0, err
	}
	batch, err := r.lastBatch()
	if err != nil {
		return 0, err
	}
	if batch == 0 {
		fmt.Fprintln(r.out, "Nothing to roll back.")
		return 0, nil
	}

	var records []migrationRecord
	if err := r.db.Where("batch = ?", batch).Order("name desc").Find(&records).Error; err != nil {
		return 0, fmt.Errorf("migration: load batch %d: %w", batch, err)
	}

	byName := make(map[string]Migration, len(registry))
	for _, reg := range registry {
		byName[reg.name] = reg.m
	}

	for _, rec := range records {
		m, ok := byName[rec.Name]
		if !ok {
			return 0, fmt.Errorf("migration: rollback %s: %w", rec.Name, ErrUnknownMigration)
		}
		fmt.Fprintf(r.out, "Rolling back: %s\n", rec.Name)
		err := r.db.Transaction(func(tx *gorm.DB) error {
			if err := m.Down(tx); err != nil {
				return err
			}
			return tx.Delete(&rec).Error
		})
		if err != nil {
			return 0, fmt.Errorf("migration: %s down: %w", rec.Name, err)
		}
		fmt.Fprintf(r.out, "Rolled back:  %s\n", rec.Name)
	}

	logger.Info("migration: rolled back", "count", len(records), "batch", batch)
	return len(records), nil
}

// Status reports every registered migration and whether it has run.
func (r *Runner) Status() ([]Status, error) {
	if err := r.ensureTable(); err != nil {
		return nil, err
	}
	done, err := r.ran()
	if err != nil {
		return nil, err
	}

	out := make([]Status, 0, len(registry))
	for _, reg := range registry {
		rec, ok := done[reg.name]
		out = append(out, Status{Name: reg.name, Ran: ok, Batch: rec.Batch})
	}
	return out, nil
}

func (r *Runner) lastBatch() (int, error) {
	var row struct{ Last int }
	if err := r.db.Model(&migrationRecord{}).Select("COALESCE(MAX(batch), 0) AS last").Scan(&row).Error; err != nil {
		return 0, fmt.Errorf("migration: last batch: %w", err)
	}
	return row.Last, nil
}
