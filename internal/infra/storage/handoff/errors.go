package handoff

import "errors"

var (
	// ErrHandoffNotFound возвращается, когда запись журнала не найдена
	ErrHandoffNotFound = errors.New("handoff.repository: handoff not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("handoff.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("handoff.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("handoff.repository: failed to scan row")

	// ErrEncodeLines возвращается при ошибке сериализации строк резервации
	ErrEncodeLines = errors.New("handoff.repository: failed to encode lines")
)
