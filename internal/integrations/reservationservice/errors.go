package reservationservice

import "errors"

var (
	// ErrRejected возвращается, когда сервис резервации отклонил запрос
	// (например, слот успели занять между выбором и отправкой)
	ErrRejected = errors.New("reservation rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("reservationservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("reservationservice client: invalid response")
)
