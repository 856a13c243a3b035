package livechannel

import "errors"

var (
	// ErrShutdown возвращается после остановки канала
	ErrShutdown = errors.New("livechannel: channel is shut down")

	// ErrConnectFailed возвращается, когда попытка подключения не удалась
	ErrConnectFailed = errors.New("livechannel: connect failed")
)
