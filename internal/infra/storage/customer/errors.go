package customer

import "errors"

var (
	// ErrCustomerNotFound клиент не найден
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("failed to build query")
	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("failed to execute query")
	// ErrScanRow ошибка сканирования результата
	ErrScanRow = errors.New("failed to scan row")
)
