package branchservice

import "errors"

var (
	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = errors.New("branch not found")

	// ErrPricesNotFound возвращается, когда для филиала не настроены тарифы
	ErrPricesNotFound = errors.New("branch prices not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("branchservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("branchservice client: invalid response")
)
