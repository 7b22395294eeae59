package domain

import "errors"

// ErrDataUnavailable indica que a origem dos registros não pôde ser consultada.
// Diferente de um resultado vazio.
var ErrDataUnavailable = errors.New("sales data unavailable")

// DataError carrega a falha do driver de uma origem de dados e casa com
// ErrDataUnavailable em errors.Is
type DataError struct {
	Source string
	Err    error
}

func (e *DataError) Error() string {
	return e.Source + ": " + e.Err.Error()
}

func (e *DataError) Unwrap() error {
	return e.Err
}

func (e *DataError) Is(target error) bool {
	return target == ErrDataUnavailable
}
