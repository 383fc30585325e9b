package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fnb-control/api/internal/pos"
)

// mockClient creates a client for testing without a real WebSocket connection
func mockClient(hub *Hub) *Client {
	return &Client{
		hub:  hub,
		send: make(chan []byte, 256),
	}
}

func TestHubRegistration(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := mockClient(hub)
	hub.register <- client

	// Give hub time to process
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()
	if !hub.clients[client] {
		t.Fatal("client not registered")
	}
}

func TestHubUnregistration(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := mockClient(hub)
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	hub.unregister <- client
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()
	if hub.clients[client] {
		t.Fatal("client still registered after unregister")
	}
}

func TestBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client1 := mockClient(hub)
	client2 := mockClient(hub)
	hub.register <- client1
	hub.register <- client2
	time.Sleep(10 * time.Millisecond)

	testPayload := json.RawMessage(`{"id":"test-123"}`)
	hub.Broadcast(Event{Type: EventTicketCreated, Payload: testPayload})

	for i, client := range []*Client{client1, client2} {
		select {
		case msg := <-client.send:
			var received Event
			if err := json.Unmarshal(msg, &received); err != nil {
				t.Fatalf("client%d: unmarshal: %v", i+1, err)
			}
			if received.Type != EventTicketCreated {
				t.Errorf("client%d: type: got %s, want %s", i+1, received.Type, EventTicketCreated)
			}
			if string(received.Payload) != string(testPayload) {
				t.Errorf("client%d: payload: got %s", i+1, received.Payload)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("client%d did not receive message", i+1)
		}
	}
}

func TestNotifierTicketCreated(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := mockClient(hub)
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	queue := pos.NewTicketQueue()
	ticket := queue.Enqueue([]pos.TicketLine{{MenuItem: "Fries", Quantity: 40}}, time.Now())

	NewNotifier(hub).TicketCreated(ticket)

	select {
	case msg := <-client.send:
		var received Event
		if err := json.Unmarshal(msg, &received); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if received.Type != EventTicketCreated {
			t.Errorf("type: got %s, want %s", received.Type, EventTicketCreated)
		}
		var payload ticketPayload
		if err := json.Unmarshal(received.Payload, &payload); err != nil {
			t.Fatalf("unmarshal payload: %v", err)
		}
		if payload.ID != ticket.ID {
			t.Errorf("ticket ID: got %v, want %v", payload.ID, ticket.ID)
		}
		if len(payload.Lines) != 1 || payload.Lines[0].MenuItem != "Fries" || payload.Lines[0].Quantity != 40 {
			t.Errorf("lines: got %+v", payload.Lines)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("no event received")
	}
}

func TestNotifierLowStock(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := mockClient(hub)
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	NewNotifier(hub).LowStock([]pos.Ingredient{
		{Name: "Oil", Stock: decimal.RequireFromString("2.5")},
	})

	select {
	case msg := <-client.send:
		var received Event
		if err := json.Unmarshal(msg, &received); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if received.Type != EventLowStock {
			t.Errorf("type: got %s, want %s", received.Type, EventLowStock)
		}
		var payload lowStockPayload
		if err := json.Unmarshal(received.Payload, &payload); err != nil {
			t.Fatalf("unmarshal payload: %v", err)
		}
		if len(payload.Ingredients) != 1 || payload.Ingredients[0].Name != "Oil" || payload.Ingredients[0].Stock != "2.5" {
			t.Errorf("payload: got %+v", payload.Ingredients)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("no event received")
	}
}
