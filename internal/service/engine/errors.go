package engine

import "errors"

var (
	// ErrSessionNotFound возвращается, когда у пользователя нет загруженной
	// недели (loadWeek еще не вызывался)
	ErrSessionNotFound = errors.New("engine session not found")

	// ErrUnknownCell возвращается, когда пара (дата, слот) не входит
	// в загруженную сетку недели
	ErrUnknownCell = errors.New("unknown grid cell")

	// ErrSelectionLimit возвращается при попытке превысить лимит выбора
	ErrSelectionLimit = errors.New("selection limit reached")

	// ErrSlotNotSelected возвращается при удалении отсутствующей записи выбора
	ErrSlotNotSelected = errors.New("slot is not selected")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("engine: internal error")
)
