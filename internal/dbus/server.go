package dbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/jmylchreest/modalstack/internal/content"
	"github.com/jmylchreest/modalstack/internal/interop"
	"github.com/jmylchreest/modalstack/internal/model"
)

const (
	// DBusInterface is the dialog interface name.
	DBusInterface = "org.modalstack.Dialogs1"
	// DBusPath is the dialog object path.
	DBusPath = "/org/modalstack/Dialogs1"
	// DBusBusName is the bus name to claim.
	DBusBusName = "org.modalstack.Dialogs1"

	// ErrInvalidArgs is the D-Bus error name for rejected arguments.
	ErrInvalidArgs = "org.freedesktop.DBus.Error.InvalidArgs"
	// ErrUnknownContent is returned when a content name does not resolve.
	ErrUnknownContent = DBusInterface + ".Error.UnknownContent"
)

// Controller is the dialog stack the server drives. display.Manager
// implements it.
type Controller interface {
	Open(opts model.Options) string
	Close(id string)
	CloseAll()
	Resize(target string, size model.Size, customSize string)
	Recolor(target string, color model.Color, outlineColor string)
	UpdateContent(target string, ref content.Ref, params map[string]any)
	SetTheme(t model.Theme)
	SetAnimation(a model.Animation)
	Dialogs() []model.Dialog
	DefaultOptions() model.Options
	Registry() *content.Registry
	Subscribe() (<-chan struct{}, func())
}

// DialogServer implements the org.modalstack.Dialogs1 D-Bus interface.
type DialogServer struct {
	conn   *dbus.Conn
	logger *slog.Logger

	controller Controller
	router     *interop.EscapeRouter

	mu      sync.Mutex
	running bool
}

// NewDialogServer creates a server for controller. Escape presses received
// over the bus are delivered through router.
func NewDialogServer(controller Controller, router *interop.EscapeRouter, logger *slog.Logger) *DialogServer {
	if logger == nil {
		logger = slog.Default()
	}
	if router == nil {
		router = interop.NewEscapeRouter(logger)
	}
	return &DialogServer{
		logger:     logger,
		controller: controller,
		router:     router,
	}
}

// Start connects to the session bus and exports the dialog service.
func (s *DialogServer) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.mu.Unlock()

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return s.StartOn(conn)
}

// StartOn exports the dialog service on an existing connection.
func (s *DialogServer) StartOn(conn *dbus.Conn) error {
	if err := conn.Export(s, DBusPath, DBusInterface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}

	node := &introspect.Node{
		Name: DBusPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    DBusInterface,
				Methods: dialogMethods(),
				Signals: dialogSignals(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), DBusPath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(DBusBusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken", DBusBusName)
	}

	s.mu.Lock()
	s.conn = conn
	s.running = true
	s.mu.Unlock()

	s.logger.Info("D-Bus dialog server started", "interface", DBusInterface, "path", DBusPath)
	return nil
}

// Stop releases the bus name. The shared session connection stays open.
func (s *DialogServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.conn != nil {
		if _, err := s.conn.ReleaseName(DBusBusName); err != nil {
			s.logger.Warn("failed to release bus name", "error", err)
		}
	}

	s.logger.Info("D-Bus dialog server stopped")
	return nil
}

// Run emits Changed for every change signal from the controller until ctx
// is done or the controller stops.
func (s *DialogServer) Run(ctx context.Context) error {
	changes, cancel := s.controller.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			if err := s.EmitChanged(); err != nil {
				s.logger.Warn("failed to emit Changed signal", "error", err)
			}
		}
	}
}

// Open opens a dialog and returns its ID.
// D-Bus method: Open(a{sv}) -> s
func (s *DialogServer) Open(opts map[string]dbus.Variant) (string, *dbus.Error) {
	req, err := ParseOpenOptions(opts, s.controller.DefaultOptions())
	if err != nil {
		return "", invalidArgs(err)
	}

	if req.Name != "" {
		ref, ok := s.controller.Registry().Resolve(req.Name)
		if !ok {
			return "", unknownContent(req.Name)
		}
		req.Options.Content = string(ref)
	}

	id := s.controller.Open(req.Options)
	s.logger.Debug("Open called", "id", id, "content", req.Options.Content)
	return id, nil
}

// Close closes a dialog.
// D-Bus method: Close(s)
func (s *DialogServer) Close(id string) *dbus.Error {
	s.logger.Debug("Close called", "id", id)
	s.controller.Close(id)
	return nil
}

// CloseAll closes every open dialog.
// D-Bus method: CloseAll()
func (s *DialogServer) CloseAll() *dbus.Error {
	s.logger.Debug("CloseAll called")
	s.controller.CloseAll()
	return nil
}

// Resize changes the size of a dialog or of "current".
// D-Bus method: Resize(sss)
func (s *DialogServer) Resize(target, size, customSize string) *dbus.Error {
	sz, err := model.ParseSize(size)
	if err != nil {
		return invalidArgs(err)
	}
	s.logger.Debug("Resize called", "target", target, "size", sz.String())
	s.controller.Resize(target, sz, customSize)
	return nil
}

// Recolor changes the accent color of a dialog or of "current".
// D-Bus method: Recolor(sss)
func (s *DialogServer) Recolor(target, color, outlineColor string) *dbus.Error {
	c, err := model.ParseColor(color)
	if err != nil {
		return invalidArgs(err)
	}
	s.logger.Debug("Recolor called", "target", target, "color", c.String())
	s.controller.Recolor(target, c, outlineColor)
	return nil
}

// UpdateContent swaps the content of a dialog or of "current" for the
// registered content called name.
// D-Bus method: UpdateContent(ss)
func (s *DialogServer) UpdateContent(target, name string) *dbus.Error {
	ref, ok := s.controller.Registry().Resolve(name)
	if !ok {
		return unknownContent(name)
	}
	s.logger.Debug("UpdateContent called", "target", target, "content", ref)
	s.controller.UpdateContent(target, ref, nil)
	return nil
}

// SetTheme changes the theme.
// D-Bus method: SetTheme(s)
func (s *DialogServer) SetTheme(name string) *dbus.Error {
	t, err := model.ParseTheme(name)
	if err != nil {
		return invalidArgs(err)
	}
	s.controller.SetTheme(t)
	return nil
}

// SetAnimation changes the animation.
// D-Bus method: SetAnimation(s)
func (s *DialogServer) SetAnimation(name string) *dbus.Error {
	a, err := model.ParseAnimation(name)
	if err != nil {
		return invalidArgs(err)
	}
	s.controller.SetAnimation(a)
	return nil
}

// HandleEscapeKey forwards an escape press on a dialog to the escape router
// and reports whether a receiver took it.
// D-Bus method: HandleEscapeKey(s) -> b
func (s *DialogServer) HandleEscapeKey(id string) (bool, *dbus.Error) {
	s.logger.Debug("HandleEscapeKey called", "id", id)
	return s.router.HandleEscapeKey(id), nil
}

// List returns the stack, oldest first.
// D-Bus method: List() -> a(sbbbssssssxa{sv})
func (s *DialogServer) List() ([]DialogEntry, *dbus.Error) {
	dialogs := s.controller.Dialogs()
	entries := make([]DialogEntry, 0, len(dialogs))
	for _, d := range dialogs {
		entries = append(entries, EntryFor(d))
	}
	return entries, nil
}

func invalidArgs(err error) *dbus.Error {
	return dbus.NewError(ErrInvalidArgs, []any{err.Error()})
}

func unknownContent(name string) *dbus.Error {
	return dbus.NewError(ErrUnknownContent, []any{fmt.Sprintf("unknown content %q", name)})
}

// dialogMethods returns the D-Bus method introspection data.
func dialogMethods() []introspect.Method {
	target := introspect.Arg{Name: "target", Type: "s", Direction: "in"}
	return []introspect.Method{
		{
			Name: "Open",
			Args: []introspect.Arg{
				{Name: "options", Type: "a{sv}", Direction: "in"},
				{Name: "id", Type: "s", Direction: "out"},
			},
		},
		{
			Name: "Close",
			Args: []introspect.Arg{{Name: "id", Type: "s", Direction: "in"}},
		},
		{Name: "CloseAll"},
		{
			Name: "Resize",
			Args: []introspect.Arg{
				target,
				{Name: "size", Type: "s", Direction: "in"},
				{Name: "custom_size", Type: "s", Direction: "in"},
			},
		},
		{
			Name: "Recolor",
			Args: []introspect.Arg{
				target,
				{Name: "color", Type: "s", Direction: "in"},
				{Name: "outline_color", Type: "s", Direction: "in"},
			},
		},
		{
			Name: "UpdateContent",
			Args: []introspect.Arg{
				target,
				{Name: "name", Type: "s", Direction: "in"},
			},
		},
		{
			Name: "SetTheme",
			Args: []introspect.Arg{{Name: "theme", Type: "s", Direction: "in"}},
		},
		{
			Name: "SetAnimation",
			Args: []introspect.Arg{{Name: "animation", Type: "s", Direction: "in"}},
		},
		{
			Name: "HandleEscapeKey",
			Args: []introspect.Arg{
				{Name: "id", Type: "s", Direction: "in"},
				{Name: "handled", Type: "b", Direction: "out"},
			},
		},
		{
			Name: "List",
			Args: []introspect.Arg{
				{Name: "dialogs", Type: "a" + DialogEntrySignature, Direction: "out"},
			},
		},
	}
}

// dialogSignals returns the D-Bus signal introspection data.
func dialogSignals() []introspect.Signal {
	return []introspect.Signal{
		{
			Name: "Changed",
			Args: []introspect.Arg{{Name: "count", Type: "u"}},
		},
	}
}
