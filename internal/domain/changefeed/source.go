package changefeed

// Source delivers change events to subscribers. The returned function removes
// the subscription and is safe to call more than once.
type Source interface {
	Subscribe(fn func(Event)) (unsubscribe func())
}

// Publisher pushes events into a Source.
type Publisher interface {
	Publish(event Event)
}
