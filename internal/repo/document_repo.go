package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/didi/gendry/builder"
	"github.com/jmoiron/sqlx"

	"github.com/sunbeamlabs/sundoc/internal/model"
	appErr "github.com/sunbeamlabs/sundoc/internal/pkg/errors"
)

var documentColumns = []string{"id", "project_id", "file_name", "file_key", "status", "ctime"}

type DocumentRepo struct {
	db *sqlx.DB
}

func NewDocumentRepo(db *sqlx.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

func (r *DocumentRepo) Create(ctx context.Context, doc *model.Document) error {
	data := map[string]interface{}{
		"project_id": doc.ProjectID,
		"file_name":  doc.FileName,
		"file_key":   doc.FileKey,
		"status":     doc.Status,
		"ctime":      doc.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("documents", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	doc.ID, err = result.LastInsertId()
	return err
}

func (r *DocumentRepo) GetByID(ctx context.Context, projectID, documentID int64) (*model.Document, error) {
	where := map[string]interface{}{
		"id":         documentID,
		"project_id": projectID,
	}
	sqlStr, args, err := builder.BuildSelect("documents", where, documentColumns)
	if err != nil {
		return nil, err
	}
	var doc model.Document
	if err := r.db.GetContext(ctx, &doc, sqlStr, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// ListByProject returns the project's documents newest first.
func (r *DocumentRepo) ListByProject(ctx context.Context, projectID int64) ([]model.Document, error) {
	where := map[string]interface{}{
		"project_id": projectID,
		"_orderby":   "ctime desc, id desc",
	}
	sqlStr, args, err := builder.BuildSelect("documents", where, documentColumns)
	if err != nil {
		return nil, err
	}
	docs := make([]model.Document, 0)
	if err := r.db.SelectContext(ctx, &docs, sqlStr, args...); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *DocumentRepo) UpdateStatus(ctx context.Context, documentID int64, status string) error {
	where := map[string]interface{}{
		"id": documentID,
	}
	update := map[string]interface{}{
		"status": status,
	}
	sqlStr, args, err := builder.BuildUpdate("documents", where, update)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

// ListStalled returns documents still marked processing or error that were
// uploaded before the given time, for the reprocess job.
func (r *DocumentRepo) ListStalled(ctx context.Context, before int64) ([]model.Document, error) {
	where := map[string]interface{}{
		"status in": []interface{}{model.DocumentStatusProcessing, model.DocumentStatusError},
		"ctime <=":  before,
		"_orderby":  "ctime asc",
	}
	sqlStr, args, err := builder.BuildSelect("documents", where, documentColumns)
	if err != nil {
		return nil, err
	}
	docs := make([]model.Document, 0)
	if err := r.db.SelectContext(ctx, &docs, sqlStr, args...); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *DocumentRepo) Delete(ctx context.Context, projectID, documentID int64) error {
	where := map[string]interface{}{
		"id":         documentID,
		"project_id": projectID,
	}
	sqlStr, args, err := builder.BuildDelete("documents", where)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *DocumentRepo) DeleteByProject(ctx context.Context, projectID int64) error {
	where := map[string]interface{}{
		"project_id": projectID,
	}
	sqlStr, args, err := builder.BuildDelete("documents", where)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}
