// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// account_cmd.go - Sign in, sign up and sign out.
//
// Commands:
//   login [USERNAME]      Sign in; the password is prompted without echo
//   register              Create an account (prompts for every field)
//   logout                End the session and forget the stored cookie
//
// Flags:
//   --username NAME       Username (login, register)
//   --email ADDR          Email address (register)
//
// When stdin is not a terminal, prompts read plain lines so credentials can
// be piped in by scripts.

package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jeranaias/talentdesk/internal/account"
	"github.com/jeranaias/talentdesk/internal/ui/styles"
)

// HandleLogin handles the "login" command.
func HandleLogin(args Args) error {
	app, err := NewApp(args)
	if err != nil {
		return err
	}
	defer app.Close()

	p := args.Parser()
	username := p.FlagOrDefault("username", p.Positional(0))
	if username == "" {
		if username, err = promptLine(os.Stderr, "Username or email: "); err != nil {
			return err
		}
	}
	password, err := promptPassword(os.Stderr, "Password: ")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), app.Config.RequestTimeout())
	defer cancel()
	if err := account.Login(ctx, app.Client, username, password); err != nil {
		return err
	}
	printDone(os.Stderr, args, "Signed in to "+app.Client.BaseURL())
	return nil
}

// HandleRegister handles the "register" command.
func HandleRegister(args Args) error {
	app, err := NewApp(args)
	if err != nil {
		return err
	}
	defer app.Close()

	p := args.Parser()
	reg := account.Registration{
		Username: p.Flag("username"),
		Email:    p.Flag("email"),
	}
	if err := promptRegistration(os.Stderr, &reg); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), app.Config.RequestTimeout())
	defer cancel()
	if err := account.Register(ctx, app.Client, reg); err != nil {
		return err
	}
	printDone(os.Stderr, args, "Account created; signed in as "+reg.Username)
	return nil
}

// promptRegistration fills the empty fields of reg.
func promptRegistration(w io.Writer, reg *account.Registration) error {
	var err error
	if reg.Username == "" {
		if reg.Username, err = promptLine(w, "Username: "); err != nil {
			return err
		}
	}
	if reg.Email == "" {
		if reg.Email, err = promptLine(w, "Email: "); err != nil {
			return err
		}
	}
	if reg.Password, err = promptPassword(w, "Password: "); err != nil {
		return err
	}
	reg.ConfirmPassword, err = promptPassword(w, "Confirm password: ")
	return err
}

// HandleLogout handles the "logout" command.
func HandleLogout(args Args) error {
	app, err := NewApp(args)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := context.WithTimeout(context.Background(), app.Config.RequestTimeout())
	defer cancel()
	if err := account.Logout(ctx, app.Client); err != nil {
		return err
	}
	printDone(os.Stderr, args, "Signed out")
	return nil
}

func printDone(w io.Writer, args Args, msg string) {
	if !args.Quiet {
		fmt.Fprintln(w, styles.RenderSuccess(msg))
	}
}
