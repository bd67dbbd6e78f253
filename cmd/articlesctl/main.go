// Command articlesctl bundles operator tasks for the articles server:
//
//	articlesctl hash-password   # produce ADMIN_PASSWORD_HASH
//	articlesctl routes          # print the route table
package main

import (
	"log/slog"
	"os"

	"github.com/sakif/articles/internal/command"
)

func main() {
	app := command.App(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		slog.Error("articlesctl failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
