package httpapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
	"nhooyr.io/websocket"

	"github.com/riskibarqy/league-standings/internal/usecase"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsPingInterval = 30 * time.Second
)

type wsAcceptConfig struct {
	originPatterns []string
	allowAll       bool
}

// newWSAcceptConfig turns CORS origins into websocket host patterns.
func newWSAcceptConfig(allowedOrigins []string) wsAcceptConfig {
	var cfg wsAcceptConfig
	for _, origin := range allowedOrigins {
		candidate := strings.TrimSpace(origin)
		switch {
		case candidate == "":
			continue
		case candidate == "*":
			cfg.allowAll = true
		default:
			if parsed, err := url.Parse(candidate); err == nil && parsed.Host != "" {
				candidate = parsed.Host
			}
			cfg.originPatterns = append(cfg.originPatterns, candidate)
		}
	}
	return cfg
}

func (c wsAcceptConfig) options() *websocket.AcceptOptions {
	return &websocket.AcceptOptions{
		InsecureSkipVerify: c.allowAll,
		OriginPatterns:     c.originPatterns,
	}
}

// StreamStandings pushes the current snapshot of a category and then every
// newer one until the client goes away.
func (h *Handler) StreamStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StreamStandings")
	defer span.End()

	category, err := parseCategory(r.PathValue("category"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	// Server read/write timeouts would otherwise survive the hijack.
	rc := http.NewResponseController(w)
	_ = rc.SetReadDeadline(time.Time{})
	_ = rc.SetWriteDeadline(time.Time{})

	conn, err := websocket.Accept(w, r, h.wsAccept.options())
	if err != nil {
		h.logger.WarnContext(ctx, "websocket upgrade failed", "category", category, "error", err)
		return
	}
	defer conn.CloseNow()

	updates := make(chan usecase.Snapshot, 1)
	unsubscribe, err := h.liveService.Subscribe(category, func(s usecase.Snapshot) {
		offerLatest(updates, s)
	})
	if err != nil {
		_ = conn.Close(websocket.StatusInternalError, "subscribe failed")
		return
	}
	defer unsubscribe()

	current, err := h.liveService.Snapshot(category)
	if err != nil {
		_ = conn.Close(websocket.StatusInternalError, "snapshot failed")
		return
	}
	offerLatest(updates, current)

	ctx = conn.CloseRead(ctx)
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	var lastVersion uint64
	sent := false
	for {
		select {
		case <-ctx.Done():
			return
		case snapshot := <-updates:
			if sent && snapshot.Version <= lastVersion {
				continue
			}
			if err := writeSnapshot(ctx, conn, snapshot); err != nil {
				h.logger.DebugContext(ctx, "websocket write failed", "category", category, "error", err)
				return
			}
			lastVersion, sent = snapshot.Version, true
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
			err := conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}
		}
	}
}

// offerLatest keeps only the newest snapshot in a one-slot mailbox.
func offerLatest(ch chan usecase.Snapshot, s usecase.Snapshot) {
	for {
		select {
		case ch <- s:
			return
		default:
		}
		select {
		case stale := <-ch:
			if stale.Version > s.Version {
				s = stale
			}
		default:
		}
	}
}

func writeSnapshot(ctx context.Context, conn *websocket.Conn, snapshot usecase.Snapshot) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	payload := googleResponseEnvelope{APIVersion: googleAPIVersion, Data: snapshotToDTO(snapshot)}
	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		return err
	}

	writeCtx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
	defer cancel()
	return conn.Write(writeCtx, websocket.MessageText, buf.B)
}
