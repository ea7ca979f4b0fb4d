package internal

import "errors"

var ErrValidation = errors.New("argument validation failed")
var ErrFunctionNotFound = errors.New("function not found")
