package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Proposal statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusResubmit = "resubmit"
)

// Proposal is a funding proposal submitted by an implementing partner
// against a workplan micro-activity.
type Proposal struct {
	Year            string          `json:"year"`
	FieldOffice     string          `json:"field_office"`
	State           string          `json:"state"`
	Outcome         string          `json:"outcome"`
	SpecialistName  string          `json:"specialist_name"`
	SpecialistEmail string          `json:"specialist_email"`
	SpecialistPhone string          `json:"specialist_phone"`
	Output          string          `json:"output"`
	Intervention    string          `json:"intervention"`
	Activity        string          `json:"activity"`
	ActivityID      string          `json:"activity_id"`
	IPName          string          `json:"ip_name"`
	IPEmail         string          `json:"ip_email"`
	IPID            string          `json:"ip_id"`
	IPPhone         string          `json:"ip_phone"`
	MicroActivity   string          `json:"micro_activity"`
	MicroActivityID string          `json:"micro_activity_id"`
	Timeline        string          `json:"timeline"`
	EntryDate       string          `json:"proposal_entry_date"`
	ProposalID      string          `json:"proposal_id"`
	Title           string          `json:"proposal_title"`
	Description     string          `json:"proposal_description"`
	Objectives      string          `json:"proposal_objectives"`
	Activities      string          `json:"proposal_activities"`
	Outcomes        string          `json:"proposal_outcomes"`
	TotalBudget     decimal.Decimal `json:"proposal_totalbudget"`
	Duration        string          `json:"proposal_duration"`
	StartDate       string          `json:"proposal_startdate"`
	EndDate         string          `json:"proposal_enddate"`
	Location        string          `json:"proposal_location"`
	Beneficiaries   string          `json:"proposal_beneficiaries"`
	Risks           string          `json:"proposal_risks"`
	Mitigation      string          `json:"proposal_mitigation"`
	Sustainability  string          `json:"proposal_sustainability"`
	Monitoring      string          `json:"proposal_monitoring"`
	Status          string          `json:"proposal_status"`
	SubmissionDate  string          `json:"proposal_submissiondate"`
	Feedback        string          `json:"proposal_feedback"`
	Priority        string          `json:"proposal_priority"`
	CreatedDate     time.Time       `json:"created_date"`
	UpdatedDate     time.Time       `json:"updated_date"`
}

func (p *Proposal) textFields() []textField {
	return []textField{
		{"year", &p.Year},
		{"field_office", &p.FieldOffice},
		{"state", &p.State},
		{"outcome", &p.Outcome},
		{"specialist_name", &p.SpecialistName},
		{"specialist_email", &p.SpecialistEmail},
		{"specialist_phone", &p.SpecialistPhone},
		{"output", &p.Output},
		{"intervention", &p.Intervention},
		{"activity", &p.Activity},
		{"activity_id", &p.ActivityID},
		{"ip_name", &p.IPName},
		{"ip_email", &p.IPEmail},
		{"ip_id", &p.IPID},
		{"ip_phone", &p.IPPhone},
		{"micro_activity", &p.MicroActivity},
		{"micro_activity_id", &p.MicroActivityID},
		{"timeline", &p.Timeline},
		{"proposal_entry_date", &p.EntryDate},
		{"proposal_id", &p.ProposalID},
		{"proposal_title", &p.Title},
		{"proposal_description", &p.Description},
		{"proposal_objectives", &p.Objectives},
		{"proposal_activities", &p.Activities},
		{"proposal_outcomes", &p.Outcomes},
		{"proposal_duration", &p.Duration},
		{"proposal_startdate", &p.StartDate},
		{"proposal_enddate", &p.EndDate},
		{"proposal_location", &p.Location},
		{"proposal_beneficiaries", &p.Beneficiaries},
		{"proposal_risks", &p.Risks},
		{"proposal_mitigation", &p.Mitigation},
		{"proposal_sustainability", &p.Sustainability},
		{"proposal_monitoring", &p.Monitoring},
		{"proposal_status", &p.Status},
		{"proposal_submissiondate", &p.SubmissionDate},
		{"proposal_feedback", &p.Feedback},
		{"proposal_priority", &p.Priority},
	}
}

// Record converts p to a record keyed by the Proposals columns.
func (p Proposal) Record() Record {
	r := NewRecord()
	for _, f := range p.textFields() {
		r.Set(f.column, *f.ptr)
	}
	r.Set("proposal_totalbudget", p.TotalBudget)
	r.Set("created_date", p.CreatedDate)
	r.Set("updated_date", p.UpdatedDate)
	return r
}

// ProposalFromRecord reads a Proposals record.
func ProposalFromRecord(r Record) (Proposal, error) {
	var (
		p   Proposal
		err error
	)
	for _, f := range p.textFields() {
		*f.ptr = r.String(f.column)
	}
	if p.TotalBudget, err = r.Decimal("proposal_totalbudget"); err != nil {
		return Proposal{}, err
	}
	if p.CreatedDate, err = ParseTime(r.String("created_date")); err != nil {
		return Proposal{}, err
	}
	if p.UpdatedDate, err = ParseTime(r.String("updated_date")); err != nil {
		return Proposal{}, err
	}
	return p, nil
}
