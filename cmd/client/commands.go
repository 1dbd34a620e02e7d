package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-pass-locker/internal/adapter"
	"github.com/MKhiriev/go-pass-locker/models"
)

var (
	errUsage             = errors.New("usage: go-pass-locker-client [flags] version|list|search|get|add|update|delete [args]")
	errNoMasterPassword  = errors.New("PASSLOCKER_MASTER_PASSWORD is not set")
	errNoAccountPassword = errors.New("account password is empty: set PASSLOCKER_ACCOUNT_PASSWORD or write it to stdin")
	errWrongArgumentsNum = errors.New("wrong number of arguments")
)

// commandLine maps positional arguments onto vault calls and prints the
// results as indented JSON. Passwords never come from arguments: the master
// password is read from the environment and the account password from the
// environment or the first line of in.
type commandLine struct {
	vault           adapter.VaultAdapter
	masterPassword  string
	accountPassword string
	in              io.Reader
	out             io.Writer
}

// run executes one command:
//
//	version
//	list
//	search <query>
//	get <id>
//	add <website> <username> [notes]
//	update <id> <website> <username> [notes]
//	delete <id>
func (c *commandLine) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	command, args := args[0], args[1:]
	switch command {
	case "version":
		printBuildInfo()
		version, err := c.vault.Version(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(c.out, "Server version: %s\n", version)
		return err

	case "list":
		if err := expectArgs(args, 0, 0); err != nil {
			return err
		}
		views, err := c.vault.ListAll(ctx)
		if err != nil {
			return err
		}
		return c.print(views)

	case "search":
		if err := expectArgs(args, 1, 1); err != nil {
			return err
		}
		views, err := c.vault.Search(ctx, args[0])
		if err != nil {
			return err
		}
		return c.print(views)

	case "get":
		if err := c.expectSecretArgs(args, 1, 1); err != nil {
			return err
		}
		record, err := c.vault.Get(ctx, args[0], c.masterPassword)
		if err != nil {
			return err
		}
		return c.print(record)

	case "add":
		if err := c.expectSecretArgs(args, 2, 3); err != nil {
			return err
		}
		fields, err := c.fieldsFromArgs(args)
		if err != nil {
			return err
		}
		view, err := c.vault.Add(ctx, fields, c.masterPassword)
		if err != nil {
			return err
		}
		return c.print(view)

	case "update":
		if err := c.expectSecretArgs(args, 3, 4); err != nil {
			return err
		}
		fields, err := c.fieldsFromArgs(args[1:])
		if err != nil {
			return err
		}
		view, err := c.vault.Update(ctx, args[0], fields, c.masterPassword)
		if err != nil {
			return err
		}
		return c.print(view)

	case "delete":
		if err := expectArgs(args, 1, 1); err != nil {
			return err
		}
		return c.vault.Delete(ctx, args[0])

	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func (c *commandLine) print(v any) error {
	encoder := json.NewEncoder(c.out)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}

func (c *commandLine) expectSecretArgs(args []string, minArgs, maxArgs int) error {
	if c.masterPassword == "" {
		return errNoMasterPassword
	}
	return expectArgs(args, minArgs, maxArgs)
}

func expectArgs(args []string, minArgs, maxArgs int) error {
	if len(args) < minArgs || len(args) > maxArgs {
		return fmt.Errorf("%w: got %d, want %d..%d", errWrongArgumentsNum, len(args), minArgs, maxArgs)
	}
	return nil
}

// fieldsFromArgs reads website, username and optional notes from args and
// the account password from the environment or stdin.
func (c *commandLine) fieldsFromArgs(args []string) (models.PasswordFields, error) {
	password, err := c.readAccountPassword()
	if err != nil {
		return models.PasswordFields{}, err
	}

	fields := models.PasswordFields{
		Website:  args[0],
		Username: args[1],
		Password: password,
	}
	if len(args) > 2 {
		fields.Notes = args[2]
	}
	return fields, nil
}

func (c *commandLine) readAccountPassword() (string, error) {
	if c.accountPassword != "" {
		return c.accountPassword, nil
	}
	if c.in == nil {
		return "", errNoAccountPassword
	}

	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("error reading account password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errNoAccountPassword
	}
	return line, nil
}
