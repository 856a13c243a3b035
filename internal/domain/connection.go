package domain

// ConnectionState состояние соединения live-канала
// Жизненным циклом владеет исключительно live-канал,
// остальные компоненты только читают текущее значение
type ConnectionState string

const (
	StateDisconnected ConnectionState = "disconnected"
	StateConnecting   ConnectionState = "connecting"
	StateConnected    ConnectionState = "connected"
	StateReconnecting ConnectionState = "reconnecting"
)

// AllConnectionStates используется метриками для выставления gauge по состояниям
var AllConnectionStates = []ConnectionState{
	StateDisconnected,
	StateConnecting,
	StateConnected,
	StateReconnecting,
}

// IsConnected возвращает true, если канал подключен и доставляет события
func (s ConnectionState) IsConnected() bool {
	return s == StateConnected
}

func (s ConnectionState) String() string {
	return string(s)
}
