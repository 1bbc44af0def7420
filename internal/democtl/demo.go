package democtl

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	demoRoot    string
	demoCount   int
	demoTimeout time.Duration
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the full demonstration round: seed, wait, verify",
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()

		if _, err := seedArtifacts(demoRoot, demoCount); err != nil {
			return err
		}
		fmt.Printf("seeded %d artifacts under %s\n", demoCount, demoRoot)

		if err := waitForHealth(cmd.Context(), baseURL, demoTimeout, 2*time.Second); err != nil {
			return err
		}

		if err := runClaims(cmd.Context(), baseURL, demoCount); err != nil {
			return err
		}

		fmt.Printf("demo complete in %s\n", time.Since(start).Round(time.Second))
		return nil
	},
}

func init() {
	demoCmd.Flags().StringVar(&demoRoot, "root", "models", "model store root directory")
	demoCmd.Flags().IntVar(&demoCount, "count", 10, "number of artifacts to seed and claim")
	demoCmd.Flags().DurationVar(&demoTimeout, "timeout", 60*time.Second, "health wait budget")
}
