// Package dbus exposes a dialog stack on the session bus as the
// org.modalstack.Dialogs1 service. It provides the server that routes method
// calls to a Controller, the Changed signal emitted after every change, and a
// client used by the command line to drive a running service.
package dbus
