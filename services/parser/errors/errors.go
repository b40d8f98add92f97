package errors

import "github.com/pkg/errors"

var (
	ErrSyntax         = errors.New("syntax error")
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidSize    = errors.New("invalid size")
	ErrInvalidString  = errors.New("invalid string literal")
)
