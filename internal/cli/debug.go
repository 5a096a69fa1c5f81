package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/ascend/internal/storage"
)

type DebugCmd struct {
	DBPath     *DebugDBPathCmd     `cmd:"" help:"Show storage path."`
	DumpRecord *DebugDumpRecordCmd `cmd:"" help:"Dump the challenge record as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	output := map[string]string{
		"path": ctx.Store.GetConfigPath(),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDumpRecordCmd struct{}

func (cmd *DebugDumpRecordCmd) Run(ctx *Context) error {
	id, err := ctx.Identity()
	if err != nil {
		return err
	}

	// Read straight from the backend, bypassing the accessor's fallbacks,
	// so the dump shows what is actually stored.
	rec, err := ctx.Store.GetRecord(id.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			return fmt.Errorf("no record found for user %q", id.UserID)
		}
		return fmt.Errorf("failed to get record: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}
