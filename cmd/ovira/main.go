package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	_ "time/tzdata"
)

var Version = "dev"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ovira",
		Short:         "Ovira health-signal API",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(tokenCmd())
	rootCmd.AddCommand(seedDemoCmd())
	return rootCmd
}
