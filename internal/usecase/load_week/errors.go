package load_week

import "errors"

var (
	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = errors.New("branch not found")

	// ErrInvalidSchedule возвращается при некорректной конфигурации филиала
	// (неразборчивый диапазон дней или часы работы). Ошибка данных, не сети:
	// не ретраится, сетка остается пустой
	ErrInvalidSchedule = errors.New("invalid branch schedule configuration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
