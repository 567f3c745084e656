// Package theme derives dialog styling from the current theme and a dialog's
// fields. It also bundles the CSS stylesheets and the lipgloss styles used by
// the terminal preview. Everything here is pure; nothing mutates dialog state.
package theme
