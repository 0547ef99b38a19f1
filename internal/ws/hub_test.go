package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"go-inventory-tracker/internal/model"
	"go-inventory-tracker/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu       sync.Mutex
	messages [][]byte
	failing  bool
	closed   bool
}

func (c *fakeClient) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return errors.New("broken pipe")
	}
	c.messages = append(c.messages, data)
	return nil
}

func (c *fakeClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeClient) received() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]byte(nil), c.messages...)
}

func (c *fakeClient) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return hub, cancel
}

func TestPublishReachesClientsAndDropsBrokenOnes(t *testing.T) {
	hub, _ := startHub(t)
	good := &fakeClient{}
	bad := &fakeClient{failing: true}
	hub.Register <- good
	hub.Register <- bad

	hub.Publish(service.Event{Type: service.EventStockUpdate, Action: model.ActionStockOut, Quantity: 3})

	require.Eventually(t, func() bool { return len(good.received()) == 1 }, time.Second, 10*time.Millisecond)
	require.Eventually(t, bad.isClosed, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, hub.ClientCount())

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(good.received()[0], &event))
	assert.Equal(t, "stock_update", event["type"])
	assert.Equal(t, "Stock Out", event["action"])
}

func TestUnregisterAndShutdownCloseClients(t *testing.T) {
	hub, cancel := startHub(t)
	a := &fakeClient{}
	b := &fakeClient{}
	hub.Register <- a
	hub.Register <- b

	hub.Unregister <- a
	require.Eventually(t, a.isClosed, time.Second, 10*time.Millisecond)

	cancel()
	require.Eventually(t, b.isClosed, time.Second, 10*time.Millisecond)
}

func TestPublishDoesNotBlockWithoutRunLoop(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	for i := 0; i < broadcastBuffer+10; i++ {
		hub.Publish(service.Event{Type: service.EventStockUpdate})
	}
	assert.Len(t, hub.Broadcast, broadcastBuffer)
}

// readingClient blocks in ReadMessage until it is closed
type readingClient struct {
	fakeClient
	closedCh chan struct{}
	once     sync.Once
}

func newReadingClient() *readingClient {
	return &readingClient{closedCh: make(chan struct{})}
}

func (c *readingClient) Close() error {
	c.once.Do(func() { close(c.closedCh) })
	return c.fakeClient.Close()
}

func (c *readingClient) ReadMessage() (int, []byte, error) {
	<-c.closedCh
	return 0, nil, errors.New("connection closed")
}

func serveAsync(hub *Hub, c conn) <-chan struct{} {
	finished := make(chan struct{})
	go func() {
		hub.serve(c)
		close(finished)
	}()
	return finished
}

func TestServeReturnsWhenHubStops(t *testing.T) {
	hub, cancel := startHub(t)
	c := newReadingClient()
	finished := serveAsync(hub, c)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	cancel()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("serve still blocked after the hub stopped")
	}
	assert.True(t, c.isClosed())
}

func TestServeAfterHubStoppedDoesNotBlock(t *testing.T) {
	hub, cancel := startHub(t)
	cancel()
	require.Eventually(t, func() bool {
		select {
		case <-hub.done:
			return true
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)

	finished := serveAsync(hub, newReadingClient())
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("serve blocked registering with a stopped hub")
	}
}
