package changefeed

import (
	"testing"

	"github.com/riskibarqy/league-standings/internal/domain/changefeed"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
)

func TestBroker_PublishFansOutToSubscribers(t *testing.T) {
	t.Parallel()

	broker := NewBroker(logging.NewNop())
	var first, second []changefeed.Event
	unsubFirst := broker.Subscribe(func(e changefeed.Event) { first = append(first, e) })
	broker.Subscribe(func(e changefeed.Event) { second = append(second, e) })

	broker.Publish(changefeed.Event{Table: changefeed.TableMatches, Op: changefeed.OpInsert, ID: "m1"})
	unsubFirst()
	unsubFirst()
	broker.Publish(changefeed.Resync())

	if len(first) != 1 || first[0].ID != "m1" {
		t.Fatalf("unexpected events for first subscriber: %+v", first)
	}
	if len(second) != 2 || second[1].Op != changefeed.OpResync {
		t.Fatalf("unexpected events for second subscriber: %+v", second)
	}
	if got := broker.Subscribers(); got != 1 {
		t.Fatalf("expected 1 subscriber left, got %d", got)
	}
}

func TestBroker_SubscriberPanicDoesNotStopDelivery(t *testing.T) {
	t.Parallel()

	broker := NewBroker(logging.NewNop())
	delivered := 0
	broker.Subscribe(func(changefeed.Event) { panic("boom") })
	broker.Subscribe(func(changefeed.Event) { delivered++ })

	broker.Publish(changefeed.Event{Table: changefeed.TableTeams, Op: changefeed.OpDelete})

	if delivered != 1 {
		t.Fatalf("expected healthy subscriber to receive event, got %d", delivered)
	}
}

func TestBroker_DeliversInSubscriptionOrder(t *testing.T) {
	t.Parallel()

	broker := NewBroker(logging.NewNop())
	var order []int
	for i := range 5 {
		broker.Subscribe(func(changefeed.Event) { order = append(order, i) })
	}

	broker.Publish(changefeed.Resync())

	for i, got := range order {
		if got != i {
			t.Fatalf("unexpected delivery order: %v", order)
		}
	}
	if len(order) != 5 {
		t.Fatalf("expected 5 deliveries, got %d", len(order))
	}
}
