// Command hostcheck queries a media host the way the browser does and
// prints what it finds: listing totals, stored preferences, the codec probe
// of the first video and the saved progress of the last item.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/llehouerou/lanshelf/internal/capability"
	"github.com/llehouerou/lanshelf/internal/config"
	"github.com/llehouerou/lanshelf/internal/media"
	"github.com/llehouerou/lanshelf/internal/mediahost"
	"github.com/llehouerou/lanshelf/internal/progress"
)

var rootCmd = &cobra.Command{
	Use:          "hostcheck [host-url]",
	Short:        "Check what a lanshelf media host serves",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().Duration("timeout", 30*time.Second, "overall timeout")
	rootCmd.Flags().Bool("refresh", false, "ask the host to rescan")
	rootCmd.Flags().BoolP("verbose", "v", false, "log requests to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	timeout := lo.Must(cmd.Flags().GetDuration("timeout"))
	refresh := lo.Must(cmd.Flags().GetBool("refresh"))
	verbose := lo.Must(cmd.Flags().GetBool("verbose"))

	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if len(args) > 0 {
		cfg.Host.URL = args[0]
	}
	if !cfg.HasHost() {
		return errors.New("no host: pass a URL or set host.url")
	}

	hostCfg := cfg.GetHostConfig()
	client, err := mediahost.New(hostCfg.URL, mediahost.Options{
		Timeout: hostCfg.Timeout,
		Retries: hostCfg.Retries,
		Logger:  logrus.NewEntry(log),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	out := cmd.OutOrStdout()
	li, etag, err := client.FetchListing(ctx, mediahost.ListingRequest{Refresh: refresh})
	if err != nil {
		return fmt.Errorf("listing: %w", err)
	}
	printListing(out, client.BaseURL(), etag, li)

	prefs, err := client.Prefs(ctx)
	if err != nil {
		log.Warnf("preferences: %v", err)
	} else {
		fmt.Fprintf(out, "prefs     %d keys\n", len(prefs))
		if k, ok := prefs[progress.KeyLastActiveKind]; ok {
			kind, _ := media.ParseKind(k)
			id := prefs[progress.LastIDKey(kind)]
			fmt.Fprintf(out, "last      %s %s\n", kind, media.DecodeID(id))
			if t, err := client.Progress(ctx, id); err == nil {
				fmt.Fprintf(out, "progress  %.1fs\n", t)
			}
		}
	}

	videos := li.ItemsOf(media.KindVideo)
	if len(videos) == 0 {
		return nil
	}
	res, err := client.Probe(ctx, videos[0].ID)
	if err != nil {
		log.Warnf("probe %s: %v", videos[0].Name, err)
		return nil
	}
	fmt.Fprintf(out, "probe     %s: %s\n", videos[0].Name, capability.HintText(mo.Some(res)))
	if warn := capability.WarnText(mo.Some(res)); warn != "" {
		fmt.Fprintf(out, "          %s\n", warn)
	}
	return nil
}

func printListing(out io.Writer, host, etag string, li *media.Listing) {
	fmt.Fprintf(out, "host      %s\n", host)
	fmt.Fprintf(out, "etag      %s\n", etag)
	fmt.Fprintf(out, "scanning  %v\n", li.Scanning)
	fmt.Fprintf(out, "shares    %d\n", len(li.Shares))
	for _, k := range media.Kinds {
		size := lo.SumBy(li.ItemsOf(k), func(it media.Item) int64 { return it.Size })
		fmt.Fprintf(out, "%-9s %s items, %s\n", k, humanize.Comma(int64(li.Total(k))), humanize.Bytes(uint64(size)))
	}
}
