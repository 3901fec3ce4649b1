package orders

import "errors"

var (
	ErrNotFound           = errors.New("order not found")
	ErrDuplicateReference = errors.New("payment reference already exists")
)
