package democtl

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"wmoracle/pkg/platform/retry"
)

var (
	waitTimeout  time.Duration
	waitInterval time.Duration
)

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait until the oracle health endpoint answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return waitForHealth(cmd.Context(), baseURL, waitTimeout, waitInterval)
	},
}

func init() {
	waitCmd.Flags().DurationVar(&waitTimeout, "timeout", 60*time.Second, "overall wait budget")
	waitCmd.Flags().DurationVar(&waitInterval, "interval", 2*time.Second, "delay between polls")
}

func waitForHealth(ctx context.Context, base string, timeout, interval time.Duration) error {
	url := base + "/health"
	fmt.Printf("waiting for %s ...\n", url)

	client := &http.Client{Timeout: 5 * time.Second}
	err := retry.Until(ctx, retry.Config{Timeout: timeout, Interval: interval}, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("health returned %d", resp.StatusCode)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("wait for %s: %w", url, err)
	}

	fmt.Printf("ok (%s)\n", url)
	return nil
}
