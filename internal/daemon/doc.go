// Package daemon runs a dialog manager as a long-lived service. It wires the
// manager to the D-Bus front end, reloads the config file when it changes and
// reports its own events as notice dialogs.
package daemon
