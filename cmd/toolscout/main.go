// cmd/toolscout/main.go
package main

import (
	"github.com/law-makers/toolscout/internal/cli"
)

func main() {
	// Interrupts cancel the command context inside cli.Execute
	cli.Execute()
}
