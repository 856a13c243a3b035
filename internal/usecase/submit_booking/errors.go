package submit_booking

import "errors"

var (
	// ErrBranchNotSet возвращается, когда у оператора нет загруженной недели
	// (филиал не выбран)
	ErrBranchNotSet = errors.New("branch is not set")

	// ErrNothingSelected возвращается при попытке отправить пустой выбор
	ErrNothingSelected = errors.New("selection is empty")

	// ErrReservationRejected возвращается, когда сервис резервации отклонил
	// запрос (слоты успели занять)
	ErrReservationRejected = errors.New("reservation rejected by reservation service")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
