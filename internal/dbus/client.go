package dbus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"
)

// Client calls a running dialog service.
type Client struct {
	conn   *dbus.Conn
	obj    dbus.BusObject
	logger *slog.Logger
}

// NewClient creates a client on an existing connection.
func NewClient(conn *dbus.Conn, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		conn:   conn,
		obj:    conn.Object(DBusBusName, DBusPath),
		logger: logger,
	}
}

// Connect creates a client on the session bus.
func Connect(logger *slog.Logger) (*Client, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return NewClient(conn, logger), nil
}

func (c *Client) call(ctx context.Context, method string, args ...any) *dbus.Call {
	return c.obj.CallWithContext(ctx, DBusInterface+"."+method, 0, args...)
}

// Open opens a dialog with the given options and returns its ID.
func (c *Client) Open(ctx context.Context, opts map[string]dbus.Variant) (string, error) {
	var id string
	if err := c.call(ctx, "Open", opts).Store(&id); err != nil {
		return "", fmt.Errorf("open: %w", err)
	}
	return id, nil
}

// Close closes a dialog.
func (c *Client) Close(ctx context.Context, id string) error {
	if err := c.call(ctx, "Close", id).Err; err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

// CloseAll closes every dialog.
func (c *Client) CloseAll(ctx context.Context) error {
	if err := c.call(ctx, "CloseAll").Err; err != nil {
		return fmt.Errorf("close all: %w", err)
	}
	return nil
}

// Resize resizes a dialog or "current".
func (c *Client) Resize(ctx context.Context, target, size, customSize string) error {
	if err := c.call(ctx, "Resize", target, size, customSize).Err; err != nil {
		return fmt.Errorf("resize: %w", err)
	}
	return nil
}

// Recolor recolors a dialog or "current".
func (c *Client) Recolor(ctx context.Context, target, color, outlineColor string) error {
	if err := c.call(ctx, "Recolor", target, color, outlineColor).Err; err != nil {
		return fmt.Errorf("recolor: %w", err)
	}
	return nil
}

// SetTheme changes the theme of the running service.
func (c *Client) SetTheme(ctx context.Context, theme string) error {
	if err := c.call(ctx, "SetTheme", theme).Err; err != nil {
		return fmt.Errorf("set theme: %w", err)
	}
	return nil
}

// List returns the stack of the running service.
func (c *Client) List(ctx context.Context) ([]DialogEntry, error) {
	var entries []DialogEntry
	if err := c.call(ctx, "List").Store(&entries); err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return entries, nil
}

// Watch calls fn with the stack size carried by every Changed signal until
// ctx is done.
func (c *Client) Watch(ctx context.Context, fn func(count uint32)) error {
	opts := []dbus.MatchOption{
		dbus.WithMatchObjectPath(DBusPath),
		dbus.WithMatchInterface(DBusInterface),
		dbus.WithMatchMember("Changed"),
	}
	if err := c.conn.AddMatchSignalContext(ctx, opts...); err != nil {
		return fmt.Errorf("failed to add match rule: %w", err)
	}
	defer func() {
		if err := c.conn.RemoveMatchSignal(opts...); err != nil {
			c.logger.Warn("failed to remove match rule", "error", err)
		}
	}()

	ch := make(chan *dbus.Signal, 16)
	c.conn.Signal(ch)
	defer c.conn.RemoveSignal(ch)

	for {
		select {
		case <-ctx.Done():
			return nil
		case sig, ok := <-ch:
			if !ok {
				return nil
			}
			if count, ok := changedCount(sig); ok {
				fn(count)
			}
		}
	}
}

// changedCount extracts the stack size from a Changed signal.
func changedCount(sig *dbus.Signal) (uint32, bool) {
	if sig == nil || sig.Name != SignalChanged || sig.Path != DBusPath {
		return 0, false
	}
	if len(sig.Body) < 1 {
		return 0, false
	}
	count, ok := sig.Body[0].(uint32)
	return count, ok
}
