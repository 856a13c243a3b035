package livechannel

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/SMC-SlotEngine/pkg/types"
)

// RedisTransport транспорт live-канала поверх Redis pub/sub
//
// Имена каналов: <prefix>:<branchId>:slot_status_update
// и <prefix>:<branchId>:slot_booking_result. Подписка паттерном
// по всем филиалам: процесс обслуживает сессии разных филиалов
type RedisTransport struct {
	opts   *redis.Options
	prefix string
	log    Logger
}

// NewRedisTransport создает транспорт с указанными параметрами подключения
func NewRedisTransport(addr, password string, db int, prefix string, log Logger) *RedisTransport {
	return &RedisTransport{
		opts: &redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		},
		prefix: prefix,
		log:    log,
	}
}

// Connect устанавливает подключение и подписывается на оба потока событий
func (t *RedisTransport) Connect(ctx context.Context) (Conn, error) {
	client := redis.NewClient(t.opts)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: redis ping: %v", ErrConnectFailed, err)
	}

	patterns := []string{
		fmt.Sprintf("%s:*:%s", t.prefix, StreamSlotStatus),
		fmt.Sprintf("%s:*:%s", t.prefix, StreamBookingResult),
	}

	pubsub := client.PSubscribe(context.Background(), patterns...)

	// Дожидаемся подтверждения подписки, чтобы не считать канал
	// подключенным раньше времени
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		_ = client.Close()
		return nil, fmt.Errorf("%w: redis subscribe: %v", ErrConnectFailed, err)
	}

	return &redisConn{
		client: client,
		pubsub: pubsub,
		prefix: t.prefix,
		log:    t.log,
	}, nil
}

type redisConn struct {
	client *redis.Client
	pubsub *redis.PubSub
	prefix string
	log    Logger
}

// Receive блокируется до следующего распознанного события
// Сообщения, которые не удалось разобрать, логируются и пропускаются:
// канал обязан переживать события про слоты, которых нет на экране
func (c *redisConn) Receive(ctx context.Context) (*Event, error) {
	for {
		msg, err := c.pubsub.ReceiveMessage(ctx)
		if err != nil {
			return nil, err
		}

		event, err := c.parseMessage(msg.Channel, msg.Payload)
		if err != nil {
			c.log.Warn("livechannel: skipping malformed message on %s: %v", msg.Channel, err)
			continue
		}
		return event, nil
	}
}

func (c *redisConn) Close() error {
	_ = c.pubsub.Close()
	return c.client.Close()
}

// parseMessage разбирает имя канала и тело сообщения в Event
func (c *redisConn) parseMessage(channel, payload string) (*Event, error) {
	rest, ok := strings.CutPrefix(channel, c.prefix+":")
	if !ok {
		return nil, fmt.Errorf("channel %q does not match prefix %q", channel, c.prefix)
	}

	parts := strings.SplitN(rest, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("channel %q has unexpected format", channel)
	}

	branchID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid branch id in channel %q: %v", channel, err)
	}

	switch Stream(parts[1]) {
	case StreamSlotStatus:
		var body slotStatusPayload
		if err := json.Unmarshal([]byte(payload), &body); err != nil {
			return nil, fmt.Errorf("invalid slot status payload: %v", err)
		}
		startTime, err := types.NewTimeStringFromString(body.StartTime)
		if err != nil {
			return nil, fmt.Errorf("invalid slot status start time: %v", err)
		}
		return &Event{
			Stream:    StreamSlotStatus,
			BranchID:  branchID,
			Date:      body.Date,
			StartTime: startTime,
			Reserved:  body.Reserved,
		}, nil

	case StreamBookingResult:
		var body bookingResultPayload
		if err := json.Unmarshal([]byte(payload), &body); err != nil {
			return nil, fmt.Errorf("invalid booking result payload: %v", err)
		}
		return &Event{
			Stream:   StreamBookingResult,
			BranchID: branchID,
			Booked:   body.Booked,
		}, nil

	default:
		return nil, fmt.Errorf("unknown stream %q", parts[1])
	}
}
