package propbook

import (
	"context"
	"fmt"

	apperr "github.com/ukaji3/propbook-go/pkg/propbook/errors"
	"github.com/ukaji3/propbook-go/pkg/propbook/models"
	"github.com/ukaji3/propbook-go/pkg/propbook/schema"
	"github.com/ukaji3/propbook-go/pkg/propbook/table"
)

// Workplan returns the micro-activity lines of the Workplan sheet.
func (b *Book) Workplan(ctx context.Context) ([]models.WorkplanEntry, error) {
	records, err := b.Tables.Records(ctx, schema.SheetWorkplan)
	if err != nil {
		return nil, err
	}
	out := make([]models.WorkplanEntry, 0, len(records))
	for _, r := range records {
		out = append(out, models.WorkplanEntryFromRecord(r))
	}
	return out, nil
}

// Config returns the System_Config entry for key.
func (b *Book) Config(ctx context.Context, key string) (models.ConfigEntry, error) {
	records, err := b.Tables.Records(ctx, schema.SheetSystemConfig)
	if err != nil {
		return models.ConfigEntry{}, err
	}
	for _, r := range records {
		if r.String("config_key") == key {
			return models.ConfigEntryFromRecord(r)
		}
	}
	return models.ConfigEntry{}, apperr.NotFound(fmt.Sprintf("config key %q", key))
}

// SetConfig writes value under key, replacing the first existing entry or
// appending a new one. The lookup and the write happen under one hold of
// the workbook.
func (b *Book) SetConfig(ctx context.Context, key, value, description string) (models.ConfigEntry, error) {
	entry := models.ConfigEntry{Key: key, Value: value, Description: description, UpdatedDate: b.now().UTC()}

	err := b.Tables.Update(ctx, func(tx *table.Tx) error {
		data, err := tx.SheetData(schema.SheetSystemConfig)
		if err != nil {
			return err
		}
		row := entry.Record().Row(data.Headers)
		idx, err := tx.FindRowIndex(schema.SheetSystemConfig, "config_key", key)
		if err != nil {
			return err
		}
		if idx == table.NotFound {
			_, err = tx.AppendRow(schema.SheetSystemConfig, row)
			return err
		}
		return tx.UpdateRow(schema.SheetSystemConfig, idx, row)
	})
	if err != nil {
		return models.ConfigEntry{}, apperr.Wrapf(err, "failed to set config %q", key)
	}
	return entry, nil
}
