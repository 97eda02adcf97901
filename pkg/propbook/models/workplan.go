package models

// WorkplanEntry is one micro-activity line of the country workplan.
type WorkplanEntry struct {
	Year            string `json:"year"`
	FieldOffice     string `json:"field_office"`
	State           string `json:"state"`
	Outcome         string `json:"outcome"`
	SpecialistName  string `json:"specialist_name"`
	SpecialistEmail string `json:"specialist_email"`
	SpecialistPhone string `json:"specialist_phone"`
	Output          string `json:"output"`
	Intervention    string `json:"intervention"`
	Activity        string `json:"activity"`
	ActivityID      string `json:"activity_id"`
	MicroActivity   string `json:"micro_activity"`
	MicroActivityID string `json:"micro_activity_id"`
}

func (w *WorkplanEntry) fields() []textField {
	return []textField{
		{"year", &w.Year},
		{"field_office", &w.FieldOffice},
		{"state", &w.State},
		{"outcome", &w.Outcome},
		{"specialist_name", &w.SpecialistName},
		{"specialist_email", &w.SpecialistEmail},
		{"specialist_phone", &w.SpecialistPhone},
		{"output", &w.Output},
		{"intervention", &w.Intervention},
		{"activity", &w.Activity},
		{"activity_id", &w.ActivityID},
		{"micro_activity", &w.MicroActivity},
		{"micro_activity_id", &w.MicroActivityID},
	}
}

// Record converts w to a record keyed by the Workplan columns.
func (w WorkplanEntry) Record() Record {
	r := NewRecord()
	for _, f := range w.fields() {
		r.Set(f.column, *f.ptr)
	}
	return r
}

// WorkplanEntryFromRecord reads a Workplan record.
func WorkplanEntryFromRecord(r Record) WorkplanEntry {
	var w WorkplanEntry
	for _, f := range w.fields() {
		*f.ptr = r.String(f.column)
	}
	return w
}

// textField binds a column name to a string field.
type textField struct {
	column string
	ptr    *string
}
