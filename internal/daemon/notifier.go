package daemon

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jmylchreest/modalstack/internal/content"
	"github.com/jmylchreest/modalstack/internal/model"
)

// NoticeContent is the content reference of dialogs opened by the Notifier.
const NoticeContent content.Ref = "modalstack.Notice"

// NoticeLevel is the severity of an internal notice.
type NoticeLevel int

// Notice levels, in increasing severity.
const (
	// NoticeInfo reports routine events such as startup or a reload.
	NoticeInfo NoticeLevel = iota
	// NoticeWarning reports a problem the daemon worked around.
	NoticeWarning
	// NoticeError reports a failure, such as a config file that did not load.
	NoticeError
)

// String returns the lowercase name of the level.
func (l NoticeLevel) String() string {
	switch l {
	case NoticeInfo:
		return "info"
	case NoticeWarning:
		return "warning"
	case NoticeError:
		return "error"
	default:
		return "unknown"
	}
}

// Color returns the dialog accent used for the level.
func (l NoticeLevel) Color() model.Color {
	switch l {
	case NoticeWarning:
		return model.ColorWarning
	case NoticeError:
		return model.ColorError
	default:
		return model.ColorInfo
	}
}

// Opener opens dialogs. display.Manager implements it.
type Opener interface {
	Open(opts model.Options) string
	DefaultOptions() model.Options
}

// Notifier opens small dialogs about the service's own events, such as a
// config reload. The same key is not repeated within the minimum interval.
type Notifier struct {
	mu     sync.Mutex
	logger *slog.Logger
	opener Opener

	lastNotifyTime map[string]time.Time
	minInterval    time.Duration
	enabled        bool
	now            func() time.Time
}

// NewNotifier creates a Notifier that opens its dialogs through opener.
func NewNotifier(opener Opener, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		logger:         logger,
		opener:         opener,
		lastNotifyTime: make(map[string]time.Time),
		minInterval:    5 * time.Second,
		enabled:        true,
		now:            time.Now,
	}
}

// SetEnabled enables or disables notices.
func (n *Notifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// SetMinInterval sets the minimum interval between notices with the same key.
func (n *Notifier) SetMinInterval(interval time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.minInterval = interval
}

// Notify opens a notice dialog unless it is rate limited and returns its ID,
// or "" if nothing was opened.
func (n *Notifier) Notify(key, summary, body string, level NoticeLevel) string {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.enabled || n.opener == nil {
		return ""
	}

	now := n.now()
	if last, ok := n.lastNotifyTime[key]; ok && now.Sub(last) < n.minInterval {
		n.logger.Debug("notice rate-limited", "key", key, "summary", summary)
		return ""
	}
	n.lastNotifyTime[key] = now

	opts := n.opener.DefaultOptions()
	opts.Size = model.SizeSmall
	opts.Color = level.Color()
	opts.BackgroundEffect = model.EffectNone
	opts.Content = string(NoticeContent)
	opts.Parameters = map[string]any{
		"summary": summary,
		"body":    body,
		"level":   level.String(),
	}

	n.logger.Debug("opening notice", "key", key, "summary", summary, "level", level.String())
	return n.opener.Open(opts)
}

// NotifyConfigReloaded reports a successful config reload.
func (n *Notifier) NotifyConfigReloaded() string {
	return n.Notify(
		"config-reload",
		"Configuration Reloaded",
		"The modalstack configuration has been reloaded.",
		NoticeInfo,
	)
}

// NotifyConfigError reports a config file that failed to load.
func (n *Notifier) NotifyConfigError(err error) string {
	return n.Notify(
		"config-error",
		"Configuration Error",
		"Failed to reload configuration: "+err.Error(),
		NoticeWarning,
	)
}

// NotifyStartup reports that the service is running.
func (n *Notifier) NotifyStartup(version string) string {
	return n.Notify(
		"startup",
		"modalstack Started",
		"Dialog service "+version+" is now running.",
		NoticeInfo,
	)
}
