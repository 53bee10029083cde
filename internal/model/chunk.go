package model

// Chunk is one extracted text segment of a document. Locator is the 1-based
// position within the source file: page number for PDF, paragraph-group index
// for DOCX, sheet index for XLSX.
type Chunk struct {
	ID         int64  `db:"id" json:"id"`
	ProjectID  int64  `db:"project_id" json:"project_id"`
	DocumentID int64  `db:"document_id" json:"document_id"`
	Locator    int    `db:"locator" json:"locator"`
	Content    string `db:"content" json:"content"`
}
