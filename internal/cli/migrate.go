package cli

import (
	"errors"
	"fmt"
)

// migrator is implemented by the SQL-backed stores.
type migrator interface {
	Migrate(report func(msg string)) (int, error)
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return errors.New("the configured backend has no schema to migrate")
	}

	ctx.PerformAutomaticBackup()

	applied, err := m.Migrate(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return err
	}

	if applied == 0 {
		fmt.Println("Schema is up to date.")
	} else {
		fmt.Printf("Applied %d migration(s).\n", applied)
	}
	return nil
}
