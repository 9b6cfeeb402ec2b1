package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/matzehuels/techcloud/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout and artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts and outputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newPrinter(cmd.OutOrStdout())
			cc, err := c.openCache(cmd.Context(), false)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer cc.Close()

			if _, ok := cc.(*cache.NullCache); ok {
				out.info("Caching is disabled, nothing to clear")
				return nil
			}
			clearer, ok := cc.(cache.Clearer)
			if !ok {
				out.info("Nothing to clear (backend %q)", c.Config.Cache.Backend)
				return nil
			}
			if err := clearer.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			out.success("Cache cleared")
			out.keyValue("backend", c.Config.Cache.Backend)
			out.keyValue("location", cacheLocation(c.Config.Cache))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), cacheLocation(c.Config.Cache))
			return nil
		},
	}
}

// cacheLocation describes where cfg stores entries: the directory for the
// file backend, the URL without password for the others.
func cacheLocation(cfg cache.Config) string {
	switch cfg.Backend {
	case cache.BackendFile:
		return cfg.Dir
	case cache.BackendRedis, cache.BackendMongo:
		if u, err := url.Parse(cfg.URL); err == nil {
			return u.Redacted()
		}
		return cfg.URL
	}
	return cache.BackendNone
}
