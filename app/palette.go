package app

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() { //nolint: gochecknoinits
	addSiteFlag(paletteListCmd)
	addSiteFlag(paletteActivateCmd)

	paletteCmd.AddCommand(paletteListCmd, paletteActivateCmd)
	rootCmd.AddCommand(paletteCmd)
}

var (
	paletteCmd = &cobra.Command{
		Use:   "palette",
		Short: "List and activate colour palettes",
	}

	paletteListCmd = &cobra.Command{
		Use:   "list",
		Short: "List the stored palettes, the active one first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			local, err := openLocal()
			if err != nil {
				return err
			}
			defer local.Close() //nolint:errcheck

			c, err := newClient(local)
			if err != nil {
				return err
			}

			palettes, err := c.Palettes(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPRIMARY\tACTIVE") //nolint:errcheck

			for _, p := range palettes {
				active := ""
				if p.IsActive {
					active = "*"
				}

				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Name, p.Colors.Primary, active) //nolint:errcheck
			}

			return w.Flush()
		},
	}

	paletteActivateCmd = &cobra.Command{
		Use:   "activate <id>",
		Short: "Make a palette the only active one (needs an admin session)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil || id == 0 {
				return fmt.Errorf("invalid palette id %q", args[0])
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

			p, err := c.ActivatePalette(cmd.Context(), id)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "palette %d (%s) is active\n", p.ID, p.Name)

			return err
		},
	}
)
