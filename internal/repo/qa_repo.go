package repo

import (
	"context"

	"github.com/didi/gendry/builder"
	"github.com/jmoiron/sqlx"

	"github.com/sunbeamlabs/sundoc/internal/model"
)

var qaColumns = []string{"id", "project_id", "question", "answer", "handler", "intent", "ctime"}

type QARepo struct {
	db *sqlx.DB
}

func NewQARepo(db *sqlx.DB) *QARepo {
	return &QARepo{db: db}
}

func (r *QARepo) Create(ctx context.Context, entry *model.QAEntry) error {
	data := map[string]interface{}{
		"project_id": entry.ProjectID,
		"question":   entry.Question,
		"answer":     entry.Answer,
		"handler":    entry.Handler,
		"intent":     entry.Intent,
		"ctime":      entry.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("qa_entries", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	entry.ID, err = result.LastInsertId()
	return err
}

// ListByProject returns the project's Q&A history, oldest first.
func (r *QARepo) ListByProject(ctx context.Context, projectID int64) ([]model.QAEntry, error) {
	where := map[string]interface{}{
		"project_id": projectID,
		"_orderby":   "ctime asc, id asc",
	}
	sqlStr, args, err := builder.BuildSelect("qa_entries", where, qaColumns)
	if err != nil {
		return nil, err
	}
	entries := make([]model.QAEntry, 0)
	if err := r.db.SelectContext(ctx, &entries, sqlStr, args...); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *QARepo) DeleteByProject(ctx context.Context, projectID int64) error {
	where := map[string]interface{}{
		"project_id": projectID,
	}
	sqlStr, args, err := builder.BuildDelete("qa_entries", where)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// DeleteBefore removes history entries created before the cutoff. Returns the
// number of rows removed.
func (r *QARepo) DeleteBefore(ctx context.Context, cutoff int64) (int64, error) {
	where := map[string]interface{}{
		"ctime <": cutoff,
	}
	sqlStr, args, err := builder.BuildDelete("qa_entries", where)
	if err != nil {
		return 0, err
	}
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
