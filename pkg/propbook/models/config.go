package models

import "time"

// ConfigEntry is one key/value row of the System_Config sheet.
type ConfigEntry struct {
	Key         string    `json:"config_key"`
	Value       string    `json:"config_value"`
	Description string    `json:"description"`
	UpdatedDate time.Time `json:"updated_date"`
}

// Record converts c to a record keyed by the System_Config columns.
func (c ConfigEntry) Record() Record {
	r := NewRecord()
	r.Set("config_key", c.Key)
	r.Set("config_value", c.Value)
	r.Set("description", c.Description)
	r.Set("updated_date", c.UpdatedDate)
	return r
}

// ConfigEntryFromRecord reads a System_Config record.
func ConfigEntryFromRecord(r Record) (ConfigEntry, error) {
	updated, err := ParseTime(r.String("updated_date"))
	if err != nil {
		return ConfigEntry{}, err
	}
	return ConfigEntry{
		Key:         r.String("config_key"),
		Value:       r.String("config_value"),
		Description: r.String("description"),
		UpdatedDate: updated,
	}, nil
}
