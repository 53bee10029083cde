package repo

import (
	"context"

	"github.com/didi/gendry/builder"
	"github.com/jmoiron/sqlx"

	"github.com/sunbeamlabs/sundoc/internal/model"
)

var chunkColumns = []string{"id", "project_id", "document_id", "locator", "content"}

type ChunkRepo struct {
	db *sqlx.DB
}

func NewChunkRepo(db *sqlx.DB) *ChunkRepo {
	return &ChunkRepo{db: db}
}

func (r *ChunkRepo) CreateBatch(ctx context.Context, chunks []*model.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	data := make([]map[string]interface{}, 0, len(chunks))
	for _, chunk := range chunks {
		data = append(data, map[string]interface{}{
			"project_id":  chunk.ProjectID,
			"document_id": chunk.DocumentID,
			"locator":     chunk.Locator,
			"content":     chunk.Content,
		})
	}
	sqlStr, args, err := builder.BuildInsert("chunks", data)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// ListByProject returns up to limit chunks for the project in insertion order.
func (r *ChunkRepo) ListByProject(ctx context.Context, projectID int64, limit uint) ([]model.Chunk, error) {
	where := map[string]interface{}{
		"project_id": projectID,
		"_orderby":   "id asc",
	}
	if limit > 0 {
		where["_limit"] = []uint{0, limit}
	}
	return r.list(ctx, where)
}

// ListGlobal returns up to limit chunks across all projects in insertion
// order. Used by the cross-project context fallback.
func (r *ChunkRepo) ListGlobal(ctx context.Context, limit uint) ([]model.Chunk, error) {
	where := map[string]interface{}{
		"_orderby": "id asc",
	}
	if limit > 0 {
		where["_limit"] = []uint{0, limit}
	}
	return r.list(ctx, where)
}

// ListByLocator returns the chunks for one exact page/section/sheet of a
// document.
func (r *ChunkRepo) ListByLocator(ctx context.Context, projectID, documentID int64, locator int) ([]model.Chunk, error) {
	where := map[string]interface{}{
		"project_id":  projectID,
		"document_id": documentID,
		"locator":     locator,
		"_orderby":    "id asc",
	}
	return r.list(ctx, where)
}

func (r *ChunkRepo) list(ctx context.Context, where map[string]interface{}) ([]model.Chunk, error) {
	sqlStr, args, err := builder.BuildSelect("chunks", where, chunkColumns)
	if err != nil {
		return nil, err
	}
	chunks := make([]model.Chunk, 0)
	if err := r.db.SelectContext(ctx, &chunks, sqlStr, args...); err != nil {
		return nil, err
	}
	return chunks, nil
}

func (r *ChunkRepo) DeleteByDocument(ctx context.Context, documentID int64) error {
	where := map[string]interface{}{
		"document_id": documentID,
	}
	sqlStr, args, err := builder.BuildDelete("chunks", where)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *ChunkRepo) DeleteByProject(ctx context.Context, projectID int64) error {
	where := map[string]interface{}{
		"project_id": projectID,
	}
	sqlStr, args, err := builder.BuildDelete("chunks", where)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}
