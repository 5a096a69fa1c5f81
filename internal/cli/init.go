package cli

import (
	"fmt"
	"os"
)

type InitCmd struct {
	Force bool `help:"Delete existing storage before initializing."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if c.Force && !ctx.Remote {
		path := ctx.Store.GetConfigPath()
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing storage: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing storage: %w", err)
			}
			fmt.Printf("Deleted existing storage at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing storage: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized ascend storage at: %s\n", ctx.Store.GetConfigPath())
	fmt.Println("Run 'ascend today' to see your first checklist. Day 1 starts now.")
	return nil
}
