package livechannel

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-SlotEngine/internal/domain"
)

// connectTimeout таймаут одной попытки подключения к транспорту
const connectTimeout = 10 * time.Second

// ReconnectConfig параметры переподключения с экспоненциальным backoff
type ReconnectConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

type command int

const (
	cmdConnect command = iota
	cmdClose
)

// Channel live-канал обновлений слотов
//
// Один экземпляр на процесс, переживает смену филиала/недели. State machine
// соединения работает в единственной горутине-акторе с очередью команд:
// попытки подключения сериализованы, параллельных connect не бывает
//
// Переходы состояний:
//
//	disconnected --Connect()--> connecting --> connected | disconnected
//	connected --ошибка транспорта--> reconnecting --> connected | disconnected
//	connected --Close()--> disconnected, затем ровно одна попытка переподключения
type Channel struct {
	transport Transport
	log       Logger
	metrics   MetricsRecorder // может быть nil, если метрики выключены
	reconnect ReconnectConfig

	stateMu sync.RWMutex
	state   domain.ConnectionState

	subsMu    sync.RWMutex
	subs      map[int]func(Event)
	nextSubID int

	commands   chan command
	connErrs   chan error
	shutdownCh chan struct{}
	doneCh     chan struct{}

	// поля ниже принадлежат горутине-актору
	conn       Conn
	recvCancel context.CancelFunc
	recvDone   chan struct{}
}

// New создает канал и запускает горутину-актора
// Канал создается в состоянии disconnected; подключение по Connect()
func New(transport Transport, reconnect ReconnectConfig, log Logger, metrics MetricsRecorder) *Channel {
	c := &Channel{
		transport:  transport,
		log:        log,
		metrics:    metrics,
		reconnect:  reconnect,
		state:      domain.StateDisconnected,
		subs:       make(map[int]func(Event)),
		commands:   make(chan command, 8),
		connErrs:   make(chan error, 1),
		shutdownCh: make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
	c.publishState(domain.StateDisconnected)

	go c.run()
	return c
}

// State возвращает текущее состояние соединения
func (c *Channel) State() domain.ConnectionState {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state
}

// Connect запрашивает подключение канала
// Игнорируется, если канал уже не в состоянии disconnected
func (c *Channel) Connect() error {
	return c.enqueue(cmdConnect)
}

// Close явно разрывает соединение
// По контракту канала после разрыва выполняется ровно одна попытка
// переподключения, после чего канал остается в disconnected при неудаче
func (c *Channel) Close() error {
	return c.enqueue(cmdClose)
}

// enqueue ставит команду в очередь актора
// Проверка shutdownCh идет до записи: очередь буферизована, и обычный
// select мог бы принять команду уже после остановки актора
func (c *Channel) enqueue(cmd command) error {
	select {
	case <-c.shutdownCh:
		return ErrShutdown
	default:
	}
	select {
	case <-c.shutdownCh:
		return ErrShutdown
	case c.commands <- cmd:
		return nil
	}
}

// Shutdown останавливает актора и закрывает транспортное соединение
// Вызывается только при остановке приложения
func (c *Channel) Shutdown(ctx context.Context) error {
	close(c.shutdownCh)
	select {
	case <-c.doneCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe регистрирует обработчик событий канала
// Возвращает функцию отписки; отписка не влияет на соединение
func (c *Channel) Subscribe(handler func(Event)) func() {
	c.subsMu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subs[id] = handler
	c.subsMu.Unlock()

	return func() {
		c.subsMu.Lock()
		delete(c.subs, id)
		c.subsMu.Unlock()
	}
}

// run цикл горутины-актора: единственное место, где меняется состояние
// соединения и создаются/закрываются подключения
func (c *Channel) run() {
	defer close(c.doneCh)

	for {
		select {
		case <-c.shutdownCh:
			c.teardownConn()
			c.setState(domain.StateDisconnected)
			c.log.Info("livechannel: shut down")
			return

		case cmd := <-c.commands:
			switch cmd {
			case cmdConnect:
				if c.State() != domain.StateDisconnected {
					continue
				}
				c.tryConnect()

			case cmdClose:
				c.teardownConn()
				c.setState(domain.StateDisconnected)
				c.log.Info("livechannel: closed by request, attempting single reconnect")
				c.tryConnect()
			}

		case err := <-c.connErrs:
			c.log.Warn("livechannel: transport error, reconnecting: %v", err)
			c.teardownConn()
			c.setState(domain.StateReconnecting)
			c.reconnectLoop()
		}
	}
}

// tryConnect одна попытка подключения через состояние connecting
func (c *Channel) tryConnect() bool {
	c.setState(domain.StateConnecting)

	conn, err := c.dialOnce()
	if err != nil {
		c.log.Error("livechannel: connect failed: %v", err)
		c.setState(domain.StateDisconnected)
		return false
	}

	c.startPump(conn)
	c.setState(domain.StateConnected)
	c.log.Info("livechannel: connected")
	return true
}

// reconnectLoop сериализованные попытки переподключения с backoff
// Состояние остается reconnecting до успеха или исчерпания попыток
func (c *Channel) reconnectLoop() {
	for attempt := 1; attempt <= c.reconnect.MaxAttempts; attempt++ {
		delay := backoffDelay(attempt, c.reconnect.BaseDelay, c.reconnect.MaxDelay)

		select {
		case <-c.shutdownCh:
			// Остановку обработает основной цикл
			return
		case <-time.After(delay):
		}

		conn, err := c.dialOnce()
		if err != nil {
			c.recordReconnect("failure")
			c.log.Warn("livechannel: reconnect attempt %d/%d failed: %v",
				attempt, c.reconnect.MaxAttempts, err)
			continue
		}

		c.recordReconnect("success")
		c.startPump(conn)
		c.setState(domain.StateConnected)
		c.log.Info("livechannel: reconnected after %d attempt(s)", attempt)
		return
	}

	c.setState(domain.StateDisconnected)
	c.log.Error("livechannel: reconnect attempts exhausted, live updates paused")
}

func (c *Channel) dialOnce() (Conn, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return c.transport.Connect(ctx)
}

// startPump запускает горутину чтения событий из подключения
func (c *Channel) startPump(conn Conn) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	c.conn = conn
	c.recvCancel = cancel
	c.recvDone = done

	go func() {
		defer close(done)
		for {
			event, err := conn.Receive(ctx)
			if err != nil {
				// Намеренное закрытие не считается ошибкой транспорта
				if ctx.Err() != nil {
					return
				}
				select {
				case c.connErrs <- err:
				case <-ctx.Done():
				}
				return
			}
			c.dispatch(event)
		}
	}()
}

// teardownConn закрывает текущее подключение и дожидается остановки pump
func (c *Channel) teardownConn() {
	if c.conn == nil {
		return
	}

	c.recvCancel()
	_ = c.conn.Close()
	<-c.recvDone

	c.conn = nil
	c.recvCancel = nil
	c.recvDone = nil

	// Сбрасываем ошибку, которую pump мог успеть отправить до закрытия
	select {
	case <-c.connErrs:
	default:
	}
}

// dispatch доставляет событие всем подписчикам
func (c *Channel) dispatch(event *Event) {
	if c.metrics != nil {
		c.metrics.RecordLiveEvent(string(event.Stream))
	}

	c.subsMu.RLock()
	handlers := make([]func(Event), 0, len(c.subs))
	for _, h := range c.subs {
		handlers = append(handlers, h)
	}
	c.subsMu.RUnlock()

	for _, h := range handlers {
		h(*event)
	}
}

func (c *Channel) setState(state domain.ConnectionState) {
	c.stateMu.Lock()
	c.state = state
	c.stateMu.Unlock()
	c.publishState(state)
}

func (c *Channel) publishState(state domain.ConnectionState) {
	if c.metrics == nil {
		return
	}
	all := make([]string, len(domain.AllConnectionStates))
	for i, s := range domain.AllConnectionStates {
		all[i] = s.String()
	}
	c.metrics.SetLiveConnectionState(state.String(), all)
}

func (c *Channel) recordReconnect(result string) {
	if c.metrics != nil {
		c.metrics.RecordLiveReconnect(result)
	}
}

// backoffDelay экспоненциальная задержка с верхней границей
func backoffDelay(attempt int, base, max time.Duration) time.Duration {
	delay := base
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= max {
			return max
		}
	}
	if delay > max {
		return max
	}
	return delay
}
