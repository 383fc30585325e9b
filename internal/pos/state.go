package pos

// State bundles the session-scoped mutable tables: ledger, catalog, sales
// history, and the kitchen ticket queue. The serving layer holds the sole
// owning reference; transaction code borrows it for the duration of a call
// and never retains it.
type State struct {
	Ledger  *Ledger
	Catalog *Catalog
	History *History
	Tickets *TicketQueue
}

// NewState assembles a session from loaded ledger and history. The ticket
// queue always starts empty: tickets do not survive a session.
func NewState(ledger *Ledger, catalog *Catalog, history *History) *State {
	return &State{
		Ledger:  ledger,
		Catalog: catalog,
		History: history,
		Tickets: NewTicketQueue(),
	}
}
