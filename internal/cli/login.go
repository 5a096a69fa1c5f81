package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/ascend/internal/auth"
	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/keyring"
	"github.com/julianstephens/ascend/internal/storage"
)

type LoginCmd struct {
	Token string `help:"Session token issued by the sync service. Prompted for when omitted."`
}

func (c *LoginCmd) Run(ctx *Context) error {
	token := strings.TrimSpace(c.Token)
	if token == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Session token").
				Description("Paste the token issued by the sync service.").
				EchoMode(huh.EchoModePassword).
				Value(&token),
		))
		if err := form.Run(); err != nil {
			return err
		}
		token = strings.TrimSpace(token)
	}
	if token == "" {
		return errors.New("no token provided")
	}

	id, err := ctx.Session.SignIn(token)
	if err != nil {
		return err
	}

	if id.Email != "" {
		fmt.Printf("Signed in as %s\n", id.Email)
	} else {
		fmt.Printf("Signed in as %s\n", id.UserID)
	}
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	if err := ctx.Session.SignOut(); err != nil {
		return err
	}
	fmt.Println("Signed out. Your progress stays in the backend.")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *Context) error {
	id, err := ctx.Session.CurrentUser()
	if err != nil {
		if errors.Is(err, auth.ErrNotSignedIn) && !ctx.Remote {
			fmt.Printf("Using local identity %q (no sign-in required for %s storage)\n",
				constants.LocalUserID, ctx.Store.GetConfigPath())
			return nil
		}
		return err
	}

	fmt.Printf("User:    %s\n", id.UserID)
	if id.Email != "" {
		fmt.Printf("Email:   %s\n", id.Email)
	}
	fmt.Printf("Session: %s\n", id.SessionID)
	if !id.ExpiresAt.IsZero() {
		fmt.Printf("Expires: %s\n", id.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

// ConnectionCmd manages the keyring-stored database connection string used
// in place of a connection string on the command line.
type ConnectionCmd struct {
	Set    ConnectionSetCmd    `cmd:"" help:"Store a connection string in the OS keyring."`
	Clear  ConnectionClearCmd  `cmd:"" help:"Remove the stored connection string."`
	Status ConnectionStatusCmd `cmd:"" help:"Show whether a connection string is stored." default:"1"`
}

type ConnectionSetCmd struct {
	ConnString string `arg:"" help:"PostgreSQL or Redis connection string. Must not embed a password."`
}

func (c *ConnectionSetCmd) Run(ctx *Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	if strings.HasPrefix(c.ConnString, "postgres://") || strings.HasPrefix(c.ConnString, "postgresql://") {
		if ok, err := storage.ValidatePostgresConnString(c.ConnString); !ok {
			return err
		}
	}
	if err := keyring.SetConnectionString(c.ConnString); err != nil {
		return err
	}
	fmt.Println("Connection string stored in OS keyring.")
	return nil
}

type ConnectionClearCmd struct{}

func (c *ConnectionClearCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		return err
	}
	fmt.Println("Connection string removed from OS keyring.")
	return nil
}

type ConnectionStatusCmd struct{}

func (c *ConnectionStatusCmd) Run(ctx *Context) error {
	if _, err := keyring.GetConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("No connection string stored.")
			return nil
		}
		return err
	}
	fmt.Println("A connection string is stored in the OS keyring.")
	return nil
}
