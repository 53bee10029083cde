package agent

import (
	"context"

	"github.com/sunbeamlabs/sundoc/internal/model"
	appErr "github.com/sunbeamlabs/sundoc/internal/pkg/errors"
)

type fakeChunkStore struct {
	byProject map[int64][]model.Chunk
	global    []model.Chunk
}

func (s *fakeChunkStore) ListByProject(ctx context.Context, projectID int64, limit uint) ([]model.Chunk, error) {
	return capped(s.byProject[projectID], limit), nil
}

func (s *fakeChunkStore) ListGlobal(ctx context.Context, limit uint) ([]model.Chunk, error) {
	return capped(s.global, limit), nil
}

func (s *fakeChunkStore) ListByLocator(ctx context.Context, projectID, documentID int64, locator int) ([]model.Chunk, error) {
	var out []model.Chunk
	for _, c := range s.byProject[projectID] {
		if c.DocumentID == documentID && c.Locator == locator {
			out = append(out, c)
		}
	}
	return out, nil
}

func capped(chunks []model.Chunk, limit uint) []model.Chunk {
	if limit > 0 && uint(len(chunks)) > limit {
		return chunks[:limit]
	}
	return chunks
}

type fakeDocStore struct {
	docs []model.Document
}

func (s *fakeDocStore) ListByProject(ctx context.Context, projectID int64) ([]model.Document, error) {
	var out []model.Document
	for _, d := range s.docs {
		if d.ProjectID == projectID {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeProjectStore struct {
	projects map[int64]*model.Project
}

func (s *fakeProjectStore) Get(ctx context.Context, projectID int64) (*model.Project, error) {
	if p, ok := s.projects[projectID]; ok {
		return p, nil
	}
	return nil, appErr.ErrNotFound
}

type fakeGenerator struct {
	available  bool
	reply      string
	err        error
	calls      int
	lastPrompt string
}

func (g *fakeGenerator) Available() bool {
	return g.available
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls++
	g.lastPrompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}
