package postgres

import (
	"testing"

	"github.com/lib/pq"

	"github.com/riskibarqy/league-standings/internal/domain/changefeed"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
)

type recordingPublisher struct {
	events []changefeed.Event
}

func (p *recordingPublisher) Publish(event changefeed.Event) {
	p.events = append(p.events, event)
}

func TestParseNotification(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    changefeed.Event
		wantErr bool
	}{
		{
			name: "insert match",
			raw:  `{"table":"matches","op":"INSERT","id":"5b0c"}`,
			want: changefeed.Event{Table: changefeed.TableMatches, Op: changefeed.OpInsert, ID: "5b0c"},
		},
		{
			name: "lower case op",
			raw:  `{"table":"players","op":"delete","id":"p1"}`,
			want: changefeed.Event{Table: changefeed.TablePlayers, Op: changefeed.OpDelete, ID: "p1"},
		},
		{name: "unknown table", raw: `{"table":"users","op":"INSERT"}`, wantErr: true},
		{name: "unknown op", raw: `{"table":"teams","op":"TRUNCATE"}`, wantErr: true},
		{name: "garbage", raw: `not-json`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseNotification(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("unexpected event: got %+v want %+v", got, tc.want)
			}
		})
	}
}

func TestChangeListener_HandlePublishesResyncOnReconnect(t *testing.T) {
	publisher := &recordingPublisher{}
	listener := NewChangeListener(ChangeListenerConfig{DSN: "postgres://unused"}, publisher, logging.NewNop())

	listener.handle(nil)
	listener.handle(&pq.Notification{Channel: DefaultNotifyChannel, Extra: `{"table":"teams","op":"UPDATE","id":"t1"}`})
	listener.handle(&pq.Notification{Channel: DefaultNotifyChannel, Extra: `{}`})

	if len(publisher.events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(publisher.events))
	}
	if publisher.events[0].Op != changefeed.OpResync {
		t.Fatalf("expected resync for nil notification, got %+v", publisher.events[0])
	}
	if publisher.events[1].ID != "t1" || publisher.events[1].Op != changefeed.OpUpdate {
		t.Fatalf("unexpected decoded event: %+v", publisher.events[1])
	}
	if publisher.events[2].Op != changefeed.OpResync {
		t.Fatalf("expected resync for unreadable payload, got %+v", publisher.events[2])
	}
}
