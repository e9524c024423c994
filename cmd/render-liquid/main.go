package main

import (
	"context"
	"fmt"
	"os"

	app "github.com/lwmacct/251207-go-render-liquid/internal/command/render"
)

func main() {
	if err := app.Command.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(app.ExitCode)
	}
}
