// Package errs содержит типизированные ошибки приложения.
package errs

import (
	"errors"
	"fmt"
)

// ValidationError - некорректный или отсутствующий пользовательский ввод
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Message
	}
	return fmt.Sprintf("validation: %s %s", e.Field, e.Message)
}

// Validation создает ValidationError
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// StorageError - ошибка записи в файловое хранилище
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// DataSourceError - внешний источник реестра недоступен или не настроен
type DataSourceError struct {
	Source string
	Err    error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source %s: %v", e.Source, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// ParseError - строка реестра не разобрана. Никогда не пробрасывается наружу,
// строка просто отбрасывается.
type ParseError struct {
	Row    int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// IsValidation сообщает, является ли err (или одна из обернутых ошибок) ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsStorage сообщает, является ли err ошибкой хранилища
func IsStorage(err error) bool {
	var s *StorageError
	return errors.As(err, &s)
}
