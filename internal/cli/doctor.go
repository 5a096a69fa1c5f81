package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/ascend/internal/backup"
	"github.com/julianstephens/ascend/internal/keyring"
	"github.com/julianstephens/ascend/internal/storage"
	"github.com/julianstephens/ascend/internal/validation"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	reachable := false

	// Check 1: backend reachable
	if err := checkBackendReachable(ctx); err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Storage reachable: OK\n")
		reachable = true
	}

	// Check 2: identity resolvable
	if err := checkIdentity(ctx); err != nil {
		fmt.Printf("❌ Identity: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Identity: OK\n")
	}

	// Check 3: record consistency
	if reachable {
		if err := checkRecord(ctx); err != nil {
			fmt.Printf("❌ Record consistency: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Record consistency: OK\n")
		}
	} else {
		fmt.Printf("⊘ Record consistency: SKIPPED (storage not reachable)\n")
	}

	// Check 4: backups present (warning only, local backends only)
	if ctx.Remote {
		fmt.Printf("⊘ Backups present: SKIPPED (remote backend)\n")
	} else if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 5: OS keyring (warning only, needed for remote backends)
	if keyring.IsAvailable() {
		fmt.Printf("✓ OS keyring: OK\n")
	} else if ctx.Remote {
		fmt.Printf("❌ OS keyring: FAIL\n")
		fmt.Printf("   Error: remote backends need the keyring for the session token\n")
		hasError = true
	} else {
		fmt.Printf("⚠ OS keyring: WARNING (unavailable, remote backends will not work)\n")
	}

	// Check 6: clock sanity
	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		return errors.New("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkBackendReachable(ctx *Context) error {
	return ctx.Store.Load()
}

func checkIdentity(ctx *Context) error {
	_, err := ctx.Identity()
	return err
}

func checkRecord(ctx *Context) error {
	id, err := ctx.Identity()
	if err != nil {
		return err
	}

	rec, err := ctx.Store.GetRecord(id.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			// A fresh install has no record yet; that is consistent.
			return nil
		}
		return err
	}

	if issues := validation.Check(rec); len(issues) > 0 {
		return fmt.Errorf("%d issue(s), first: %s", len(issues), issues[0])
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if issues := validation.CheckRaw(raw); len(issues) > 0 {
		return fmt.Errorf("%d issue(s), first: %s", len(issues), issues[0])
	}

	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return errors.New("no backups found, run 'ascend backup create'")
	}
	if age := time.Since(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("newest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock reports %s, which is implausible", now.Format(time.RFC3339))
	}
	if _, offset := now.Zone(); offset < -14*3600 || offset > 14*3600 {
		return fmt.Errorf("timezone offset %d seconds is out of range", offset)
	}
	return nil
}
