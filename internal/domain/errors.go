package domain

import (
	"errors"
	"fmt"
)

// Ошибки, связанные с хранением последовательностей.
var (
	ErrSequenceNotFound = errors.New("sequence not found")      // последовательность не найдена
	ErrSequenceExists   = errors.New("sequence already exists") // имя последовательности занято
	ErrForbidden        = errors.New("forbidden")               // последовательность принадлежит другому пользователю
)

// SequenceExistsError определяет ошибку, когда последовательность с таким именем уже создана.
type SequenceExistsError struct {
	err  error
	name string
}

// NewSequenceExistsError создает экземпляр ошибки.
func NewSequenceExistsError(name string, err error) *SequenceExistsError {
	return &SequenceExistsError{
		err:  err,
		name: name,
	}
}

// Error возвращает текст ошибки.
func (e *SequenceExistsError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("%v: %s", ErrSequenceExists, e.name)
	}
	return fmt.Sprintf("%v: %s: %v", ErrSequenceExists, e.name, e.err)
}

// Unwrap возвращает ErrSequenceExists.
func (e *SequenceExistsError) Unwrap() error {
	return ErrSequenceExists
}

// Name возвращает имя последовательности, которая была создана ранее.
func (e *SequenceExistsError) Name() string {
	return e.name
}
