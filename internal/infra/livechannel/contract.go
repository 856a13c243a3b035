package livechannel

import "context"

// Conn активное подключение к транспорту live-канала
type Conn interface {
	// Receive блокируется до следующего события или ошибки транспорта
	Receive(ctx context.Context) (*Event, error)
	Close() error
}

// Transport фабрика подключений live-канала
// Позволяет тестировать state machine канала без живой сети
type Transport interface {
	Connect(ctx context.Context) (Conn, error)
}

// MetricsRecorder интерфейс записи метрик live-канала
type MetricsRecorder interface {
	RecordLiveEvent(stream string)
	RecordLiveReconnect(result string)
	SetLiveConnectionState(active string, all []string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
