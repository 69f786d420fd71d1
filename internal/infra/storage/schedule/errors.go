package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда для типа дня не заданы часы работы
	ErrScheduleNotFound = errors.New("schedule.repository: schedule not found")

	// ErrTransaction возвращается, когда операция требует транзакцию
	ErrTransaction = errors.New("schedule.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
