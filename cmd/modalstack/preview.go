package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/modalstack/internal/display"
	"github.com/jmylchreest/modalstack/internal/interop"
	"github.com/jmylchreest/modalstack/internal/tui"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Launch the interactive stack preview",
	Long: `Launch a terminal preview of the dialog stack.

Dialogs are drawn as layered boxes using the configured theme, with the
backdrop owner and the current dialog marked.

Key bindings:
  o           Open a dialog with a dimmed backdrop
  b           Open a dialog with a blurred backdrop
  c, esc      Close the current dialog through the escape router
  ↑/↓, d      Select a dialog, close the selected dialog
  r           Cycle the size of the current dialog
  k           Cycle the color of the current dialog
  t           Toggle the light/dark theme
  a           Cycle the animation
  x           Close all dialogs
  y           Copy the stack as YAML
  ?           Show help
  q           Quit`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	manager := display.NewManager(getConfig(), newRegistry(), logger)
	defer manager.Stop()

	router := interop.NewEscapeRouter(logger)
	manager.SetAsCurrent(router)
	manager.Start()

	return tui.Run(tui.RunOptions{
		Config:  getConfig(),
		Manager: manager,
		Router:  router,
	})
}
