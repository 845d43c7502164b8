package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func main() {
	color.NoColor = false

	rootCmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy q-chain contracts to an EVM network",
		Long: `Deploy the q-chain contract suite to an EVM-compatible network.

Subcommands:
  all     deploy the fraud registry and the escrow contract
  simple  deploy only the escrow contract

Deployed addresses are written to deployments/deployed.json.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewAllCmd())
	rootCmd.AddCommand(NewSimpleCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
