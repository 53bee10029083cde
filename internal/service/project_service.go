package service

import (
	"context"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/sunbeamlabs/sundoc/internal/filestore"
	"github.com/sunbeamlabs/sundoc/internal/model"
	appErr "github.com/sunbeamlabs/sundoc/internal/pkg/errors"
	"github.com/sunbeamlabs/sundoc/internal/pkg/timeutil"
	"github.com/sunbeamlabs/sundoc/internal/repo"
)

const maxProjectNameLen = 200

type ProjectService struct {
	projects *repo.ProjectRepo
	docs     *repo.DocumentRepo
	chunks   *repo.ChunkRepo
	qa       *repo.QARepo
	store    filestore.Store
}

func NewProjectService(projects *repo.ProjectRepo, docs *repo.DocumentRepo, chunks *repo.ChunkRepo, qa *repo.QARepo, store filestore.Store) *ProjectService {
	return &ProjectService{projects: projects, docs: docs, chunks: chunks, qa: qa, store: store}
}

func (s *ProjectService) Create(ctx context.Context, name, description string) (*model.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxProjectNameLen {
		return nil, appErr.ErrInvalid
	}
	project := &model.Project{
		Name:        name,
		Description: strings.TrimSpace(description),
		Ctime:       timeutil.NowUnix(),
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, projectID int64) (*model.Project, error) {
	return s.projects.Get(ctx, projectID)
}

func (s *ProjectService) List(ctx context.Context) ([]model.Project, error) {
	return s.projects.List(ctx)
}

// Delete removes the project and everything hanging off it: documents,
// chunks, Q&A history and stored files. File removal is best effort; a
// missing blob never blocks the delete.
func (s *ProjectService) Delete(ctx context.Context, projectID int64) error {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return err
	}
	docs, err := s.docs.ListByProject(ctx, projectID)
	if err != nil {
		return err
	}
	if err := s.chunks.DeleteByProject(ctx, projectID); err != nil {
		return err
	}
	if err := s.qa.DeleteByProject(ctx, projectID); err != nil {
		return err
	}
	if err := s.docs.DeleteByProject(ctx, projectID); err != nil {
		return err
	}
	for _, doc := range docs {
		if err := s.store.Remove(ctx, doc.FileKey); err != nil {
			logutil.GetLogger(ctx).Warn("failed to remove stored file",
				zap.Int64("document_id", doc.ID),
				zap.String("file_key", doc.FileKey),
				zap.Error(err),
			)
		}
	}
	return s.projects.Delete(ctx, projectID)
}
