// Package democtl implements the bring-up tool: it seeds dummy artifacts,
// waits for the service to come up, and fires sample verification claims.
// Failures are fatal to the tool, never to the service under test.
package democtl

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	rootCmd = &cobra.Command{
		Use:   "democtl",
		Short: "Bring-up and demo tooling for the watermark oracle",
		Long: `democtl drives a locally running oracle through a demonstration round:
seed artifacts into the model store, wait for the health endpoint, then
submit verification claims with varied watermark profiles.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "base URL of the oracle")
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(waitCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(demoCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
