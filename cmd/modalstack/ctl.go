package main

import (
	"context"
	"fmt"
	"time"

	godbus "github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/modalstack/internal/adapter/output"
	"github.com/jmylchreest/modalstack/internal/core"
	"github.com/jmylchreest/modalstack/internal/dbus"
	"github.com/jmylchreest/modalstack/internal/model"
)

var ctlOpts struct {
	timeout time.Duration

	// open
	name    string
	content string
	size    string
	custom  string
	color   string
	outline string
	effect  string

	// list
	format   string
	template string
	filter   string
	search string
	sortBy string
	order  string
}

var ctlCmd = &cobra.Command{
	Use:   "ctl",
	Short: "Control a running modalstack service",
	Long: `Send commands to a running "modalstack serve" over the session bus.

Targets are "current", a dialog ID, a unique ID prefix, or "#N" for the
Nth dialog in the stack, oldest first.

Examples:
  modalstack ctl open --name welcome --size large
  modalstack ctl resize current custom "width: 640px"
  modalstack ctl close '#2'
  modalstack ctl list --filter "state!=removing,size>=large" --format json
  modalstack ctl close-all`,
}

var ctlOpenCmd = &cobra.Command{
	Use:   "open",
	Short: "Open a dialog and print its ID",
	Args:  cobra.NoArgs,
	RunE: withClient(func(ctx context.Context, c *dbus.Client, cmd *cobra.Command, args []string) error {
		opts := map[string]godbus.Variant{}
		set := func(key, value string) {
			if value != "" {
				opts[key] = godbus.MakeVariant(value)
			}
		}
		set(dbus.OptName, ctlOpts.name)
		set(dbus.OptContent, ctlOpts.content)
		set(dbus.OptSize, ctlOpts.size)
		set(dbus.OptCustomSize, ctlOpts.custom)
		set(dbus.OptColor, ctlOpts.color)
		set(dbus.OptOutlineColor, ctlOpts.outline)
		set(dbus.OptBackgroundEffect, ctlOpts.effect)

		id, err := c.Open(ctx, opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	}),
}

var ctlCloseCmd = &cobra.Command{
	Use:   "close <target>",
	Short: "Close a dialog",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, c *dbus.Client, cmd *cobra.Command, args []string) error {
		id, err := resolveTarget(ctx, c, args[0])
		if err != nil {
			return err
		}
		return c.Close(ctx, id)
	}),
}

var ctlCloseAllCmd = &cobra.Command{
	Use:   "close-all",
	Short: "Close every dialog",
	Args:  cobra.NoArgs,
	RunE: withClient(func(ctx context.Context, c *dbus.Client, cmd *cobra.Command, args []string) error {
		return c.CloseAll(ctx)
	}),
}

var ctlResizeCmd = &cobra.Command{
	Use:   "resize <target> <size> [custom-size]",
	Short: "Resize a dialog",
	Args:  cobra.RangeArgs(2, 3),
	RunE: withClient(func(ctx context.Context, c *dbus.Client, cmd *cobra.Command, args []string) error {
		custom := ""
		if len(args) == 3 {
			custom = args[2]
		}
		target, err := serverTarget(ctx, c, args[0])
		if err != nil {
			return err
		}
		return c.Resize(ctx, target, args[1], custom)
	}),
}

var ctlRecolorCmd = &cobra.Command{
	Use:   "recolor <target> <color> [outline-color]",
	Short: "Recolor a dialog",
	Args:  cobra.RangeArgs(2, 3),
	RunE: withClient(func(ctx context.Context, c *dbus.Client, cmd *cobra.Command, args []string) error {
		outline := ""
		if len(args) == 3 {
			outline = args[2]
		}
		target, err := serverTarget(ctx, c, args[0])
		if err != nil {
			return err
		}
		return c.Recolor(ctx, target, args[1], outline)
	}),
}

var ctlThemeCmd = &cobra.Command{
	Use:   "theme <light|dark>",
	Short: "Change the theme of the running service",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, c *dbus.Client, cmd *cobra.Command, args []string) error {
		return c.SetTheme(ctx, args[0])
	}),
}

var ctlListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the dialogs of the running service",
	Args:  cobra.NoArgs,
	RunE: withClient(func(ctx context.Context, c *dbus.Client, cmd *cobra.Command, args []string) error {
		ft, err := output.ParseFormat(ctlOpts.format)
		if err != nil {
			return err
		}
		opts := output.DefaultFormatterOptions()
		opts.Template = ctlOpts.template
		formatter, err := output.NewFormatter(ft, opts)
		if err != nil {
			return err
		}

		entries, err := c.List(ctx)
		if err != nil {
			return err
		}
		selected, err := selectDialogs(summaries(entries))
		if err != nil {
			return err
		}
		return formatter.Format(cmd.OutOrStdout(), selected)
	}),
}

var ctlWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the stack size on every change until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := dbus.Connect(logger)
		if err != nil {
			return err
		}
		return c.Watch(cmd.Context(), func(count uint32) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s changed: %d dialog(s)\n", time.Now().Format(time.TimeOnly), count)
		})
	},
}

func init() {
	rootCmd.AddCommand(ctlCmd)
	ctlCmd.AddCommand(ctlOpenCmd, ctlCloseCmd, ctlCloseAllCmd, ctlResizeCmd,
		ctlRecolorCmd, ctlThemeCmd, ctlListCmd, ctlWatchCmd)

	ctlCmd.PersistentFlags().DurationVar(&ctlOpts.timeout, "timeout", 5*time.Second,
		"Timeout for each call")

	ctlOpenCmd.Flags().StringVar(&ctlOpts.name, "name", "",
		"Registered content name to open")
	ctlOpenCmd.Flags().StringVar(&ctlOpts.content, "content", "",
		"Raw content reference to open")
	ctlOpenCmd.Flags().StringVar(&ctlOpts.size, "size", "",
		"Size (small, medium, large, extra-large, custom)")
	ctlOpenCmd.Flags().StringVar(&ctlOpts.custom, "custom-size", "",
		"CSS size declarations for --size custom")
	ctlOpenCmd.Flags().StringVar(&ctlOpts.color, "color", "",
		"Color (default, success, error, warning, info, primary, custom)")
	ctlOpenCmd.Flags().StringVar(&ctlOpts.outline, "outline-color", "",
		"Outline color for --color custom")
	ctlOpenCmd.Flags().StringVar(&ctlOpts.effect, "effect", "",
		"Background effect (dim, blur, none)")

	ctlListCmd.Flags().StringVarP(&ctlOpts.format, "format", "f", string(output.FormatPlain),
		"Output format (plain, json, yaml, ids, dmenu)")
	ctlListCmd.Flags().StringVar(&ctlOpts.template, "template", "",
		"Go template for plain and dmenu lines (e.g. \"{{short .ID}} {{.Content}}\")")
	ctlListCmd.Flags().StringVar(&ctlOpts.filter, "filter", "",
		"Filter expression (e.g. \"state!=removing,size>=large\")")
	ctlListCmd.Flags().StringVarP(&ctlOpts.search, "search", "s", "",
		"Only show dialogs whose content contains this text")
	ctlListCmd.Flags().StringVar(&ctlOpts.sortBy, "sort", "created",
		"Sort field (created, content, size, color)")
	ctlListCmd.Flags().StringVar(&ctlOpts.order, "order", "asc",
		"Sort order (asc, desc)")
}

// withClient connects to the session bus and runs fn with a per-call timeout.
func withClient(fn func(ctx context.Context, c *dbus.Client, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c, err := dbus.Connect(logger)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), ctlOpts.timeout)
		defer cancel()
		return fn(ctx, c, cmd, args)
	}
}

// resolveTarget turns a user-supplied target into a dialog ID using the
// service's current listing.
func resolveTarget(ctx context.Context, c *dbus.Client, ref string) (string, error) {
	entries, err := c.List(ctx)
	if err != nil {
		return "", err
	}
	d, err := core.Resolve(summaries(entries), ref)
	if err != nil {
		return "", err
	}
	return d.ID, nil
}

// serverTarget passes "current" through so the service resolves it at call
// time, and resolves every other reference locally.
func serverTarget(ctx context.Context, c *dbus.Client, ref string) (string, error) {
	if ref == core.TargetCurrent {
		return ref, nil
	}
	return resolveTarget(ctx, c, ref)
}

// summaries converts a listing, numbering positions from 1.
func summaries(entries []dbus.DialogEntry) []model.Summary {
	out := make([]model.Summary, 0, len(entries))
	for i, e := range entries {
		sum := e.Summary()
		sum.Position = i + 1
		out = append(out, sum)
	}
	return out
}

// selectDialogs applies the list search, filter and sort flags.
func selectDialogs(dialogs []model.Summary) ([]model.Summary, error) {
	expr, err := core.ParseFilter(ctlOpts.filter)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	field, err := core.ParseSortField(ctlOpts.sortBy)
	if err != nil {
		return nil, err
	}
	order, err := core.ParseSortOrder(ctlOpts.order)
	if err != nil {
		return nil, err
	}

	selected := core.FilterWithExpr(core.Search(dialogs, ctlOpts.search), expr)
	core.Sort(selected, core.SortOptions{Field: field, Order: order})
	return selected, nil
}
