package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error taxonomy shared by all services. Controllers translate these with
// errors.Is; nothing here is fatal to the process.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidState    = errors.New("invalid state")
	ErrConflict        = errors.New("conflict")
)

// asNotFound maps gorm's record-not-found onto the service taxonomy, keeping
// the repository layer free of service error types.
func asNotFound(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
	}
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
