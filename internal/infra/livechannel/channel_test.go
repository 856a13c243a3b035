package livechannel

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotEngine/internal/domain"
	"github.com/m04kA/SMC-SlotEngine/pkg/types"
)

// fakeConn управляемое из теста подключение: события и ошибки
// подаются через каналы
type fakeConn struct {
	events chan *Event
	errs   chan error

	closeOnce sync.Once
	closed    chan struct{}
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		events: make(chan *Event, 8),
		errs:   make(chan error, 1),
		closed: make(chan struct{}),
	}
}

func (c *fakeConn) Receive(ctx context.Context) (*Event, error) {
	select {
	case event := <-c.events:
		return event, nil
	case err := <-c.errs:
		return nil, err
	case <-c.closed:
		return nil, errors.New("connection closed")
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *fakeConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

// fakeTransport выдает подключения по сценарию: очередь результатов Connect
type fakeTransport struct {
	mu      sync.Mutex
	results []connectResult
	conns   []*fakeConn
	calls   int
}

type connectResult struct {
	conn *fakeConn
	err  error
}

func (t *fakeTransport) Connect(_ context.Context) (Conn, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.calls++
	if len(t.results) == 0 {
		conn := newFakeConn()
		t.conns = append(t.conns, conn)
		return conn, nil
	}

	result := t.results[0]
	t.results = t.results[1:]
	if result.err != nil {
		return nil, result.err
	}
	t.conns = append(t.conns, result.conn)
	return result.conn, nil
}

func (t *fakeTransport) connectCalls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}

func (t *fakeTransport) lastConn() *fakeConn {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.conns) == 0 {
		return nil
	}
	return t.conns[len(t.conns)-1]
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func fastReconnect() ReconnectConfig {
	return ReconnectConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		MaxDelay:    5 * time.Millisecond,
	}
}

func newTestChannel(t *testing.T, transport *fakeTransport) *Channel {
	t.Helper()
	channel := New(transport, fastReconnect(), nopLogger{}, nil)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = channel.Shutdown(ctx)
	})
	return channel
}

func waitForState(t *testing.T, channel *Channel, state domain.ConnectionState) {
	t.Helper()
	require.Eventually(t, func() bool {
		return channel.State() == state
	}, 2*time.Second, 5*time.Millisecond, "waiting for state %s, got %s", state, channel.State())
}

func TestChannelStartsDisconnected(t *testing.T) {
	channel := newTestChannel(t, &fakeTransport{})
	assert.Equal(t, domain.StateDisconnected, channel.State())
}

func TestChannelConnectSuccess(t *testing.T) {
	transport := &fakeTransport{}
	channel := newTestChannel(t, transport)

	require.NoError(t, channel.Connect())
	waitForState(t, channel, domain.StateConnected)
	assert.Equal(t, 1, transport.connectCalls())
}

func TestChannelConnectFailure(t *testing.T) {
	transport := &fakeTransport{results: []connectResult{
		{err: errors.New("refused")},
	}}
	channel := newTestChannel(t, transport)

	require.NoError(t, channel.Connect())
	waitForState(t, channel, domain.StateDisconnected)
	assert.Equal(t, 1, transport.connectCalls())
}

func TestChannelDeliversEvents(t *testing.T) {
	transport := &fakeTransport{}
	channel := newTestChannel(t, transport)

	var mu sync.Mutex
	var received []Event
	unsubscribe := channel.Subscribe(func(event Event) {
		mu.Lock()
		received = append(received, event)
		mu.Unlock()
	})
	defer unsubscribe()

	require.NoError(t, channel.Connect())
	waitForState(t, channel, domain.StateConnected)

	transport.lastConn().events <- &Event{
		Stream:    StreamSlotStatus,
		BranchID:  1,
		Date:      "2026-09-07",
		StartTime: types.TimeString("06:00"),
		Reserved:  true,
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 1
	}, 2*time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, StreamSlotStatus, received[0].Stream)
	assert.Equal(t, int64(1), received[0].BranchID)
	assert.True(t, received[0].Reserved)
}

func TestChannelReconnectsOnTransportError(t *testing.T) {
	transport := &fakeTransport{}
	channel := newTestChannel(t, transport)

	require.NoError(t, channel.Connect())
	waitForState(t, channel, domain.StateConnected)

	transport.lastConn().errs <- errors.New("connection reset")

	waitForState(t, channel, domain.StateConnected)
	assert.Equal(t, 2, transport.connectCalls())
}

func TestChannelDisconnectsAfterExhaustedReconnects(t *testing.T) {
	transport := &fakeTransport{results: []connectResult{
		{conn: newFakeConn()},
		{err: errors.New("down")},
		{err: errors.New("down")},
		{err: errors.New("down")},
	}}
	channel := newTestChannel(t, transport)

	require.NoError(t, channel.Connect())
	waitForState(t, channel, domain.StateConnected)

	transport.lastConn().errs <- errors.New("connection reset")

	waitForState(t, channel, domain.StateDisconnected)
	// Первоначальное подключение + MaxAttempts попыток переподключения
	assert.Equal(t, 4, transport.connectCalls())
}

func TestChannelCloseTriggersSingleReconnect(t *testing.T) {
	transport := &fakeTransport{}
	channel := newTestChannel(t, transport)

	require.NoError(t, channel.Connect())
	waitForState(t, channel, domain.StateConnected)

	// Явный разрыв: ровно одна попытка переподключения
	require.NoError(t, channel.Close())

	require.Eventually(t, func() bool {
		return transport.connectCalls() == 2
	}, 2*time.Second, 5*time.Millisecond)
	waitForState(t, channel, domain.StateConnected)
}

func TestChannelCloseStaysDisconnectedWhenReconnectFails(t *testing.T) {
	transport := &fakeTransport{results: []connectResult{
		{conn: newFakeConn()},
		{err: errors.New("down")},
	}}
	channel := newTestChannel(t, transport)

	require.NoError(t, channel.Connect())
	waitForState(t, channel, domain.StateConnected)

	require.NoError(t, channel.Close())

	waitForState(t, channel, domain.StateDisconnected)
	assert.Equal(t, 2, transport.connectCalls())
}

func TestChannelConnectIgnoredWhenConnected(t *testing.T) {
	transport := &fakeTransport{}
	channel := newTestChannel(t, transport)

	require.NoError(t, channel.Connect())
	waitForState(t, channel, domain.StateConnected)

	require.NoError(t, channel.Connect())

	// Команда обработана и отброшена, второго подключения нет
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, transport.connectCalls())
	assert.Equal(t, domain.StateConnected, channel.State())
}

func TestChannelShutdown(t *testing.T) {
	transport := &fakeTransport{}
	channel := New(transport, fastReconnect(), nopLogger{}, nil)

	require.NoError(t, channel.Connect())
	waitForState(t, channel, domain.StateConnected)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, channel.Shutdown(ctx))

	assert.Equal(t, domain.StateDisconnected, channel.State())
	assert.ErrorIs(t, channel.Connect(), ErrShutdown)
	assert.ErrorIs(t, channel.Close(), ErrShutdown)
}

func TestChannelCommandsAfterShutdownNeverEnqueue(t *testing.T) {
	transport := &fakeTransport{}
	channel := New(transport, fastReconnect(), nopLogger{}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, channel.Shutdown(ctx))

	// Очередь команд буферизована: без приоритетной проверки shutdownCh
	// часть команд могла бы молча лечь в буфер мертвого актора
	for i := 0; i < 32; i++ {
		assert.ErrorIs(t, channel.Connect(), ErrShutdown)
		assert.ErrorIs(t, channel.Close(), ErrShutdown)
	}
	assert.Equal(t, 0, transport.connectCalls())
}

func TestChannelUnsubscribeStopsDelivery(t *testing.T) {
	transport := &fakeTransport{}
	channel := newTestChannel(t, transport)

	var mu sync.Mutex
	count := 0
	unsubscribe := channel.Subscribe(func(Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	require.NoError(t, channel.Connect())
	waitForState(t, channel, domain.StateConnected)

	conn := transport.lastConn()
	conn.events <- &Event{Stream: StreamBookingResult, BranchID: 1, Booked: true}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count == 1
	}, 2*time.Second, 5*time.Millisecond)

	unsubscribe()
	conn.events <- &Event{Stream: StreamBookingResult, BranchID: 1, Booked: false}

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, count)
}
