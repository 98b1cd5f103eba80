package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ppiankov/grantab/internal/dataset"
	"github.com/ppiankov/grantab/internal/model"
	"github.com/ppiankov/grantab/internal/util"
	"github.com/spf13/cobra"
)

var (
	fetchOut     string
	fetchTimeout time.Duration
	userAgent    string
	maxBytes     int64
	noCache      bool
	noRobots     bool
	insecureTLS  bool
	httpProxy    string
	httpsProxy   string
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Download a proposals dataset over HTTP",
	Long: `Fetch downloads a CSV dataset politely: robots.txt is consulted,
requests are rate limited per host, transient server errors are
retried, and payloads are cached so repeated fetches stay offline.

Example:
  grantab fetch https://example.com/data/train.csv
  grantab fetch https://example.com/data/train.csv --out datasets/train.csv
  grantab fetch https://example.com/data/train.csv --no-cache --timeout 5m`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&fetchOut, "out", "", "output path (default: basename of the URL)")
	fetchCmd.Flags().DurationVar(&fetchTimeout, "timeout", 2*time.Minute, "download timeout")
	fetchCmd.Flags().StringVar(&userAgent, "ua", "Grantab/0.1 (+https://github.com/ppiankov/grantab)", "HTTP User-Agent")
	fetchCmd.Flags().Int64Var(&maxBytes, "max-bytes", 500_000_000, "max response bytes to read")
	fetchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	fetchCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks")
	fetchCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	fetchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	fetchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	rawURL := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	destPath := fetchOut
	if destPath == "" {
		destPath = filepath.Base(rawURL)
	}

	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = fetchTimeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.InsecureTLS = insecureTLS
	cfg.HTTP.RespectRobots = !noRobots
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Cache.Enabled = !noCache
	if cfg.Cache.Enabled && cfg.Cache.Dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("find home directory: %w", err)
		}
		cfg.Cache.Dir = filepath.Join(home, ".grantab", "cache")
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Fetching: %s\n", rawURL)
		fmt.Fprintf(os.Stderr, "Output: %s\n", destPath)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	result, err := dataset.NewFetcher(cfg).Download(ctx, rawURL, destPath)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	source := "network"
	if result.FromCache {
		source = "cache"
	}
	fmt.Printf("✓ Wrote %s bytes to %s (%s)\n", util.FormatCount(result.Bytes), result.Path, source)

	return nil
}
