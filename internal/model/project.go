package model

type Project struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	Ctime       int64  `db:"ctime" json:"ctime"`
}
