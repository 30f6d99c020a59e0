package app

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/migration"
)

// Boot loads config and connects database.DB.
func Boot() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return database.Connect()
}

// Migrate runs every pending migration.
func Migrate(db *gorm.DB, out io.Writer) error {
	_, err := migration.New(db, out).Run()
	return err
}

// Rollback reverses the last migration batch.
func Rollback(db *gorm.DB, out io.Writer) error {
	_, err := migration.New(db, out).Rollback()
	return err
}

// MigrateStatus prints every registered migration and its batch.
func MigrateStatus(db *gorm.DB, out io.Writer) error {
	statuses, err := migration.New(db, out).Status()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "MIGRATION\tRAN\tBATCH")
	fmt.Fprintln(w, "---------\t---\t-----")
	for _, s := range statuses {
		ran, batch := "no", "-"
		if s.Ran {
			ran, batch = "yes", fmt.Sprint(s.Batch)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, ran, batch)
	}
	return w.Flush()
}

// RouteList prints every registered route.
func (a *Application) RouteList(out io.Writer) error {
	r, err := a.Router()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATH\tNAME")
	fmt.Fprintln(w, "------\t----\t----")
	for _, ri := range r.Routes() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
	}
	return w.Flush()
}
