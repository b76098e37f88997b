package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gitagent.dev/gitagent/internal/cli"
)

func main() {
	ctx := context.Background()

	if err := cli.Execute(ctx); err != nil {
		if !errors.Is(err, cli.ErrOperationFailed) {
			fmt.Fprintf(os.Stderr, "gitagent: %v\n", err)
		}
		os.Exit(1)
	}
}
