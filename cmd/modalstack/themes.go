package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/modalstack/internal/model"
	"github.com/jmylchreest/modalstack/internal/theme"
)

var themesOpts struct {
	show string
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List bundled stylesheets",
	Long: `List the bundled stylesheets, or print one with its imports inlined.

A file with the same name in the themes directory overrides the bundled
stylesheet.

Examples:
  modalstack themes
  modalstack themes --show light`,
	RunE: runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)

	themesCmd.Flags().StringVar(&themesOpts.show, "show", "",
		"Print the resolved stylesheet for a theme (light, dark)")
}

func runThemes(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	dir := getConfig().Appearance.ThemesDir

	if themesOpts.show != "" {
		t, err := model.ParseTheme(themesOpts.show)
		if err != nil {
			return err
		}
		sheet := theme.LoadStylesheet(t, dir)
		_, err = fmt.Fprint(out, sheet.CSS)
		return err
	}

	for _, name := range theme.ListEmbeddedThemes() {
		source := "bundled"
		if t, err := model.ParseTheme(name); err == nil {
			if sheet := theme.LoadStylesheet(t, dir); !sheet.IsBundle {
				source = sheet.Path
			}
		}
		fmt.Fprintf(out, "%-8s %s\n", name, source)
	}
	return nil
}
