package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/julianstephens/ascend/internal/backup"
)

var errRemoteBackend = errors.New("backups apply to local storage only; remote backends are backed up server-side")

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	if ctx.Remote {
		return errRemoteBackend
	}

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	path, err := mgr.Create()
	if err != nil {
		return err
	}
	fmt.Printf("Created backup: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	if ctx.Remote {
		return errRemoteBackend
	}

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return err
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return nil
	}

	fmt.Printf("Backups in %s:\n", mgr.BackupDir())
	for _, b := range backups {
		fmt.Printf("  %s  %s  %d bytes\n",
			filepath.Base(b.Path),
			b.Timestamp.Format("2006-01-02 15:04:05"),
			b.Size)
	}
	return nil
}

type BackupRestoreCmd struct {
	Name string `arg:"" help:"Backup filename to restore, as shown by 'ascend backup list'."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	if ctx.Remote {
		return errRemoteBackend
	}

	mgr := backup.NewManager(ctx.Store.GetConfigPath())

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close storage before restore: %w", err)
	}

	path := c.Name
	if filepath.Base(path) == path {
		path = filepath.Join(mgr.BackupDir(), path)
	}

	if err := mgr.Restore(path); err != nil {
		return err
	}
	fmt.Printf("Restored storage from %s\n", filepath.Base(path))
	return nil
}
