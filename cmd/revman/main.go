package main

import (
	"os"

	"github.com/Vaillus/revolut-expense-manager/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
