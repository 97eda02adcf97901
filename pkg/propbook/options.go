// Package propbook wires the workbook store, table accessor, schema
// bootstrapper and budget service for one proposal workbook.
package propbook

import (
	"log/slog"
	"time"
)

// Options configures a Book.
type Options struct {
	// Logger receives store, accessor and bootstrap events.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
	// Seed specifies whether initialization adds sample users and cost items.
	// If nil, defaults to true.
	Seed *bool
	// Validate specifies whether rows of known sheets are checked against
	// their typed columns before writing. If nil, defaults to true.
	Validate *bool
	// Now stamps generated rows. If nil, time.Now is used.
	Now func() time.Time
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{}
}

// ShouldSeed returns whether to seed sample data.
func (o Options) ShouldSeed() bool {
	if o.Seed != nil {
		return *o.Seed
	}
	return true
}

// ShouldValidate returns whether typed row validation is enabled.
func (o Options) ShouldValidate() bool {
	if o.Validate != nil {
		return *o.Validate
	}
	return true
}
