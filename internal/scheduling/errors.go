package scheduling

import "errors"

var (
	// ErrInvalidArgument возвращается при неположительной длительности или шаге
	ErrInvalidArgument = errors.New("scheduling: invalid argument")

	// ErrBarberNotFound возвращается, когда барбер не существует
	// Определение делегировано хранилищу; ядро не подменяет ошибку пустым результатом
	ErrBarberNotFound = errors.New("scheduling: barber not found")

	// ErrDataUnavailable возвращается, когда хранилище недоступно
	// Подстановка пустого результата запрещена: она выглядела бы как полная доступность
	ErrDataUnavailable = errors.New("scheduling: data unavailable")
)
