package propbook

import (
	"context"
	"log/slog"
	"time"

	"github.com/ukaji3/propbook-go/pkg/propbook/budget"
	"github.com/ukaji3/propbook-go/pkg/propbook/schema"
	"github.com/ukaji3/propbook-go/pkg/propbook/store"
	"github.com/ukaji3/propbook-go/pkg/propbook/table"
)

// Book is one workbook together with the services that operate on it.
// Create a single Book per workbook path and share it; its operations are
// serialized internally.
type Book struct {
	Tables *table.Accessor
	Schema *schema.Bootstrapper
	Budget *budget.Service

	now func() time.Time
}

// Open prepares a Book for the workbook at path. The file is not read
// until the first operation.
func Open(path string, opts Options) *Book {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tableOpts := table.Options{Logger: logger}
	if opts.ShouldValidate() {
		tableOpts.Validator = schema.Registry{}
	}
	accessor := table.New(store.New(path, logger), tableOpts)
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Book{
		Tables: accessor,
		Schema: schema.NewBootstrapper(accessor, schema.Options{
			Logger:   logger,
			Now:      opts.Now,
			SkipSeed: !opts.ShouldSeed(),
		}),
		Budget: budget.NewService(accessor, budget.Options{Logger: logger, Now: opts.Now}),
		now:    now,
	}
}

// Initialize creates or repairs the workbook; see schema.Bootstrapper.Initialize.
func (b *Book) Initialize(ctx context.Context) (schema.InitResult, error) {
	return b.Schema.Initialize(ctx)
}

// Path returns the workbook file path.
func (b *Book) Path() string {
	return b.Tables.Path()
}

// Close releases the in-memory workbook.
func (b *Book) Close() error {
	return b.Tables.Close()
}
