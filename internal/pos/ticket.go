package pos

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Ticket statuses. PENDING is the only live state; DONE is terminal and a
// done ticket is removed from the queue rather than archived.
const (
	TicketPending = "PENDING"
	TicketDone    = "DONE"
)

// ErrTicketNotFound is returned when a completion action names a ticket that
// is not in the queue.
var ErrTicketNotFound = errors.New("ticket not found")

// TicketLine is one non-zero order line on a kitchen ticket.
type TicketLine struct {
	MenuItem string
	Quantity int
}

// Ticket is a kitchen-facing record of one accepted order's line items
// awaiting preparation.
type Ticket struct {
	ID        uuid.UUID
	Lines     []TicketLine
	Status    string
	CreatedAt time.Time
}

// TicketQueue owns every ticket from creation until completion. A ticket has
// exactly one transition, PENDING -> DONE; completion permanently removes it
// and a ticket can never return to PENDING.
type TicketQueue struct {
	mu      sync.Mutex
	tickets map[uuid.UUID]*Ticket
	fifo    []uuid.UUID
}

// NewTicketQueue creates an empty queue.
func NewTicketQueue() *TicketQueue {
	return &TicketQueue{tickets: make(map[uuid.UUID]*Ticket)}
}

// Enqueue creates a pending ticket for the given lines and returns it.
func (q *TicketQueue) Enqueue(lines []TicketLine, at time.Time) Ticket {
	t := Ticket{
		ID:        uuid.New(),
		Lines:     lines,
		Status:    TicketPending,
		CreatedAt: at,
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	q.tickets[t.ID] = &t
	q.fifo = append(q.fifo, t.ID)
	return t
}

// Pending returns all queued tickets in creation order.
func (q *TicketQueue) Pending() []Ticket {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Ticket, 0, len(q.tickets))
	for _, id := range q.fifo {
		if t, ok := q.tickets[id]; ok {
			out = append(out, *t)
		}
	}
	return out
}

// Len returns the number of pending tickets.
func (q *TicketQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tickets)
}

// Complete transitions one ticket to DONE and removes it from the queue.
// The returned copy carries the terminal status for the caller to report.
func (q *TicketQueue) Complete(id uuid.UUID) (Ticket, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	t, ok := q.tickets[id]
	if !ok {
		return Ticket{}, ErrTicketNotFound
	}
	done := *t
	done.Status = TicketDone
	delete(q.tickets, id)
	for i, fid := range q.fifo {
		if fid == id {
			q.fifo = append(q.fifo[:i], q.fifo[i+1:]...)
			break
		}
	}
	return done, nil
}
