// Package command holds the subcommands of cmd/articlesctl, the operator
// tool that ships next to the server.
package command

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/sakif/articles/internal/auth"
	"github.com/sakif/articles/internal/config"
	"github.com/sakif/articles/internal/server"
)

// App builds the articlesctl application. Output goes to app.Writer so
// tests can capture it.
func App(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "articlesctl",
		Usage:     "operator tools for the articles server",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Commands: []*cli.Command{
			HashPassword(),
			Routes(),
		},
	}
}

// HashPassword prints a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
//
//	$ printf 'secret\n' | articlesctl hash-password
//	$2a$12$...
func HashPassword() *cli.Command {
	return &cli.Command{
		Name:  "hash-password",
		Usage: "read a password from stdin and print its bcrypt hash",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "cost",
				Value: auth.DefaultCost,
				Usage: "bcrypt work factor",
			},
		},
		Action: func(ctx *cli.Context) error {
			fmt.Fprint(ctx.App.ErrWriter, "password: ")

			line, err := bufio.NewReader(ctx.App.Reader).ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("reading password: %w", err)
			}

			password := strings.TrimRight(line, "\r\n")
			if password == "" {
				return cli.Exit("password must not be empty", 1)
			}

			hash, err := auth.NewPasswordServiceWithCost(ctx.Int("cost")).Hash(password)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			fmt.Fprintln(ctx.App.Writer, hash)
			return nil
		},
	}
}

// Routes prints the server's route table as Markdown. It builds the router
// against an in-memory database with auth enabled so every route shows up.
func Routes() *cli.Command {
	return &cli.Command{
		Name:  "routes",
		Usage: "print the HTTP route table as Markdown",
		Action: func(ctx *cli.Context) error {
			cfg, err := config.ParseFrom(map[string]string{
				"DB_PATH":    ":memory:",
				"JWT_SECRET": "routes-doc-placeholder-secret",
			})
			if err != nil {
				return err
			}

			srv, err := server.New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
			if err != nil {
				return fmt.Errorf("building router: %w", err)
			}
			defer srv.Close()

			fmt.Fprintln(ctx.App.Writer, srv.RoutesDoc())
			return nil
		},
	}
}
