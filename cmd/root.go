// Package cmd holds the CLI entry points.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lista",
	Short: "Lista - a todo list server with labels",
	Long:  `Lista serves a todo list with labels over HTTP, backed by an in-memory, SQLite, or MySQL store.`,
}

func Execute() error {
	return rootCmd.Execute()
}
