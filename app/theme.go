package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/authorsite/authorsite/internal/localstore"
	"github.com/authorsite/authorsite/internal/theme"
)

const (
	formatCSS  = "css"
	formatJSON = "json"
)

var themeFormat string

func init() { //nolint: gochecknoinits
	themeCmd.Flags().StringVar(&themeFormat, "format", formatCSS, "output format: css or json")
	addSiteFlag(themeCmd)

	rootCmd.AddCommand(themeCmd)
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Resolve the active colour palette and print the derived css variables",
	Long: `theme fetches the active palette from the site. When the site can't be reached the
palette cached by the previous run is used; with nothing cached nothing is printed and
the stylesheet defaults stay in effect.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if themeFormat != formatCSS && themeFormat != formatJSON {
			return fmt.Errorf("unknown format %q", themeFormat)
		}

		local, err := openLocal()
		if err != nil {
			return err
		}
		defer local.Close() //nolint:errcheck

		c, err := newClient(local)
		if err != nil {
			return err
		}

		resolver := theme.NewResolver(c, local)
		resolver.CacheKey = localstore.KeyPalette

		return writeResolution(cmd, resolver.Resolve(cmd.Context()), themeFormat)
	},
}

func writeResolution(cmd *cobra.Command, res theme.Resolution, format string) error {
	if format == formatJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")

		return enc.Encode(res)
	}

	_, err := fmt.Fprint(cmd.OutOrStdout(), res.CSS())

	return err
}
