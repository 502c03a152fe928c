package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// cacheCommand manages the on-disk geometry cache.
func (c *CLI) cacheCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "cache",
		Short: "Manage the geometry result cache",
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached geometry results",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.fileCacheDir()
			if err != nil {
				return fmt.Errorf("resolve cache dir: %w", err)
			}

			count, err := countEntries(dir)
			if err != nil || count == 0 {
				printInfo("Nothing cached under %s", dir)
				return nil
			}
			if err := os.RemoveAll(dir); err != nil {
				return fmt.Errorf("remove %s: %w", dir, err)
			}

			printSuccess("Removed %d cached results", count)
			printDetail("%s", dir)
			return nil
		},
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.fileCacheDir()
			if err != nil {
				return fmt.Errorf("resolve cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}

	root.AddCommand(clear, path)
	return root
}

// fileCacheDir resolves the file cache directory, honoring the configured
// override.
func (c *CLI) fileCacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// countEntries counts regular files under dir. Errors out when dir does not
// exist.
func countEntries(dir string) (int, error) {
	if _, err := os.Stat(dir); err != nil {
		return 0, err
	}
	count := 0
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			count++
		}
		return nil
	})
	return count, nil
}
