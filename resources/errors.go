package resources

import (
	"github.com/daedaleanai/xdlrc/interchange"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is the cause when a name or a wire has no entry in an index.
	// Callers enumerating the device treat it as "nothing to declare".
	ErrNotFound = errors.New("not found")
	// ErrSchema is the cause when the device itself is malformed.
	ErrSchema = interchange.ErrSchema
	// ErrUsage is the cause when a query names something its type does not define.
	ErrUsage = errors.New("usage error")
)

// IsNotFound reports whether err was caused by ErrNotFound.
func IsNotFound(err error) bool {
	return err != nil && errors.Cause(err) == ErrNotFound
}

// IsSchema reports whether err was caused by ErrSchema.
func IsSchema(err error) bool {
	return err != nil && errors.Cause(err) == ErrSchema
}

// IsUsage reports whether err was caused by ErrUsage.
func IsUsage(err error) bool {
	return err != nil && errors.Cause(err) == ErrUsage
}

func notFoundf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrNotFound, format, args...)
}

func schemaf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrSchema, format, args...)
}

func usagef(format string, args ...interface{}) error {
	return errors.Wrapf(ErrUsage, format, args...)
}
