package metrics

// Counter is the only metric shape the core needs.
type Counter interface {
	Inc()
}

// Metrics groups the protocol counters handed to the application services.
type Metrics struct {
	RequestsCreated   Counter
	RequestsConfirmed Counter
	RequestsRejected  Counter
	RequestsExpired   Counter
	PositionsOpened   Counter
	PositionsSettled  Counter
	SettleFailures    Counter
}

type noopCounter struct{}

func (noopCounter) Inc() {}

// NewNoop returns metrics that record nothing; tests and embedded use.
func NewNoop() *Metrics {
	n := noopCounter{}
	return &Metrics{
		RequestsCreated:   n,
		RequestsConfirmed: n,
		RequestsRejected:  n,
		RequestsExpired:   n,
		PositionsOpened:   n,
		PositionsSettled:  n,
		SettleFailures:    n,
	}
}
