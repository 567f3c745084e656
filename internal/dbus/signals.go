package dbus

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// SignalChanged is the fully qualified name of the Changed signal.
const SignalChanged = DBusInterface + ".Changed"

// EmitChanged emits the Changed signal carrying the current stack size.
// Listeners re-read the stack with List.
func (s *DialogServer) EmitChanged() error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("not connected to D-Bus")
	}

	count := uint32(len(s.controller.Dialogs()))
	if err := conn.Emit(DBusPath, SignalChanged, count); err != nil {
		return fmt.Errorf("failed to emit Changed signal: %w", err)
	}

	s.logger.Debug("emitted Changed signal", "count", count)
	return nil
}

// Connection returns the underlying D-Bus connection.
func (s *DialogServer) Connection() *dbus.Conn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn
}
