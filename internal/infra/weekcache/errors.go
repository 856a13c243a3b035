package weekcache

import "errors"

var (
	// ErrFetchFailed возвращается, когда запрос занятых слотов не удался
	// Кэш при этом заполняется пустым списком (fail-open): ложное "свободно"
	// исправимо на этапе резервации, ложное "занято" блокирует бронирование
	ErrFetchFailed = errors.New("weekcache: failed to fetch unavailable slots")
)
