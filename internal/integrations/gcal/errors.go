package gcal

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("gcal client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе Calendar API
	ErrInvalidResponse = errors.New("gcal client: invalid response")

	// ErrCalendarUnavailable возвращается, когда API сообщает об ошибке конкретного календаря
	ErrCalendarUnavailable = errors.New("gcal client: calendar unavailable")
)
