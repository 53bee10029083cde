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

var projectColumns = []string{"id", "name", "description", "ctime"}

type ProjectRepo struct {
	db *sqlx.DB
}

func NewProjectRepo(db *sqlx.DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

func (r *ProjectRepo) Create(ctx context.Context, project *model.Project) error {
	data := map[string]interface{}{
		"name":        project.Name,
		"description": project.Description,
		"ctime":       project.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("projects", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	project.ID, err = result.LastInsertId()
	return err
}

func (r *ProjectRepo) Get(ctx context.Context, projectID int64) (*model.Project, error) {
	where := map[string]interface{}{
		"id": projectID,
	}
	sqlStr, args, err := builder.BuildSelect("projects", where, projectColumns)
	if err != nil {
		return nil, err
	}
	var project model.Project
	if err := r.db.GetContext(ctx, &project, sqlStr, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepo) List(ctx context.Context) ([]model.Project, error) {
	where := map[string]interface{}{
		"_orderby": "ctime desc, id desc",
	}
	sqlStr, args, err := builder.BuildSelect("projects", where, projectColumns)
	if err != nil {
		return nil, err
	}
	projects := make([]model.Project, 0)
	if err := r.db.SelectContext(ctx, &projects, sqlStr, args...); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectRepo) Delete(ctx context.Context, projectID int64) error {
	where := map[string]interface{}{
		"id": projectID,
	}
	sqlStr, args, err := builder.BuildDelete("projects", where)
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
