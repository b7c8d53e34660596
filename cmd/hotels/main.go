package main

import (
	"context"
	"os"

	"hotels/internal/adapters/cli"
	"hotels/internal/shared"
)

func main() {
	root := cli.NewRootCommand(shared.NewViper())
	os.Exit(cli.Execute(context.Background(), root))
}
