package main

import (
	"os"

	"didwallet/cmd/did/commands"
)

func main() {
	os.Exit(commands.ExitCode(commands.Execute()))
}
