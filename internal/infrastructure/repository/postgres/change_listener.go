package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/lib/pq"

	"github.com/riskibarqy/league-standings/internal/domain/changefeed"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
)

const (
	DefaultNotifyChannel = "league_changes"
	listenerPingInterval = 90 * time.Second
)

type ChangeListenerConfig struct {
	DSN                  string
	Channel              string
	MinReconnectInterval time.Duration
	MaxReconnectInterval time.Duration
}

// ChangeListener turns LISTEN/NOTIFY messages emitted by the league_changes
// triggers into change feed events.
type ChangeListener struct {
	cfg       ChangeListenerConfig
	publisher changefeed.Publisher
	logger    *logging.Logger
}

func NewChangeListener(cfg ChangeListenerConfig, publisher changefeed.Publisher, logger *logging.Logger) *ChangeListener {
	if strings.TrimSpace(cfg.Channel) == "" {
		cfg.Channel = DefaultNotifyChannel
	}
	if cfg.MinReconnectInterval <= 0 {
		cfg.MinReconnectInterval = time.Second
	}
	if cfg.MaxReconnectInterval < cfg.MinReconnectInterval {
		cfg.MaxReconnectInterval = time.Minute
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ChangeListener{cfg: cfg, publisher: publisher, logger: logger}
}

// Run listens until ctx is done. pq.Listener reconnects on its own; every
// reconnect publishes a resync event since notifications may have been lost.
func (l *ChangeListener) Run(ctx context.Context) error {
	listener := pq.NewListener(l.cfg.DSN, l.cfg.MinReconnectInterval, l.cfg.MaxReconnectInterval, l.onListenerEvent)
	defer func() {
		if err := listener.Close(); err != nil {
			l.logger.Warn("close change listener", "error", err)
		}
	}()

	if err := listener.Listen(l.cfg.Channel); err != nil {
		return crerr.Wrapf(err, "listen on %s", l.cfg.Channel)
	}
	l.logger.InfoContext(ctx, "change listener started", "channel", l.cfg.Channel)

	ticker := time.NewTicker(listenerPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case n := <-listener.Notify:
			l.handle(n)
		case <-ticker.C:
			if err := listener.Ping(); err != nil {
				l.logger.Warn("change listener ping failed", "error", err)
			}
		}
	}
}

func (l *ChangeListener) handle(n *pq.Notification) {
	if n == nil {
		l.publisher.Publish(changefeed.Resync())
		return
	}

	event, err := parseNotification(n.Extra)
	if err != nil {
		l.logger.Warn("unreadable change notification, forcing resync", "payload", n.Extra, "error", err)
		l.publisher.Publish(changefeed.Resync())
		return
	}
	l.publisher.Publish(event)
}

func (l *ChangeListener) onListenerEvent(ev pq.ListenerEventType, err error) {
	switch ev {
	case pq.ListenerEventConnected:
		l.logger.Debug("change listener connected", "channel", l.cfg.Channel)
	case pq.ListenerEventDisconnected:
		l.logger.Warn("change listener disconnected", "channel", l.cfg.Channel, "error", err)
	case pq.ListenerEventReconnected:
		l.logger.Info("change listener reconnected", "channel", l.cfg.Channel)
	case pq.ListenerEventConnectionAttemptFailed:
		l.logger.Warn("change listener connection attempt failed", "channel", l.cfg.Channel, "error", err)
	}
}

type notificationPayload struct {
	Table string `json:"table"`
	Op    string `json:"op"`
	ID    string `json:"id"`
}

func parseNotification(raw string) (changefeed.Event, error) {
	var payload notificationPayload
	if err := sonic.UnmarshalString(raw, &payload); err != nil {
		return changefeed.Event{}, fmt.Errorf("decode notification: %w", err)
	}

	event := changefeed.Event{
		Table: changefeed.Table(strings.ToLower(payload.Table)),
		Op:    changefeed.Op(strings.ToUpper(payload.Op)),
		ID:    payload.ID,
	}
	if !event.Table.Valid() {
		return changefeed.Event{}, fmt.Errorf("unknown table %q", payload.Table)
	}
	if !event.Op.Valid() {
		return changefeed.Event{}, fmt.Errorf("unknown op %q", payload.Op)
	}
	return event, nil
}
