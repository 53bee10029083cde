package model

const (
	DocumentStatusProcessing = "processing"
	DocumentStatusReady      = "ready"
	DocumentStatusError      = "error"
)

type Document struct {
	ID        int64  `db:"id" json:"id"`
	ProjectID int64  `db:"project_id" json:"project_id"`
	FileName  string `db:"file_name" json:"file_name"`
	FileKey   string `db:"file_key" json:"file_key"`
	Status    string `db:"status" json:"status"`
	Ctime     int64  `db:"ctime" json:"ctime"`
}
