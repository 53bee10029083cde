package model

// QAEntry is immutable once created. Handler and Intent are nullable so
// history written by older deployments without routing metadata still loads.
type QAEntry struct {
	ID        int64   `db:"id" json:"id"`
	ProjectID int64   `db:"project_id" json:"project_id"`
	Question  string  `db:"question" json:"question"`
	Answer    string  `db:"answer" json:"answer"`
	Handler   *string `db:"handler" json:"handler,omitempty"`
	Intent    *string `db:"intent" json:"intent,omitempty"`
	Ctime     int64   `db:"ctime" json:"ctime"`
}
