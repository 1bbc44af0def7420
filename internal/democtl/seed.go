package democtl

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"wmoracle/internal/artifact"
)

var (
	seedRoot  string
	seedCount int
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create dummy artifacts in the model store",
	RunE: func(cmd *cobra.Command, args []string) error {
		aids, err := seedArtifacts(seedRoot, seedCount)
		if err != nil {
			return err
		}
		for _, aid := range aids {
			fmt.Printf("seeded %s\n", aid)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedRoot, "root", "models", "model store root directory")
	seedCmd.Flags().IntVar(&seedCount, "count", 10, "number of artifacts to create")
}

// demoAid is the identifier of the n-th demo artifact (1-based), a 32-byte
// hex id matching what the chain side registers.
func demoAid(n int) string {
	return fmt.Sprintf("%064x", n)
}

// demoEvidence is the matching evidence hash for the n-th demo artifact.
func demoEvidence(n int) string {
	return fmt.Sprintf("%064x", n+1000)
}

func seedArtifacts(root string, count int) ([]string, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create model root: %w", err)
	}

	aids := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		aid := demoAid(i)
		path := filepath.Join(root, artifact.Normalize(aid)+artifact.DefaultExt)
		if err := os.WriteFile(path, []byte("demo artifact "+aid), 0o644); err != nil {
			return nil, fmt.Errorf("write artifact %s: %w", aid, err)
		}
		aids = append(aids, aid)
	}
	return aids, nil
}
