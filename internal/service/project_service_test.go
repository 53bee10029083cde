package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunbeamlabs/sundoc/internal/agent"
	appErr "github.com/sunbeamlabs/sundoc/internal/pkg/errors"
	"github.com/sunbeamlabs/sundoc/internal/repo"
)

func TestProjectService_CreateValidation(t *testing.T) {
	projectSvc, _, _ := newDocumentFixture(t)
	ctx := context.Background()

	_, err := projectSvc.Create(ctx, "   ", "")
	require.ErrorIs(t, err, appErr.ErrInvalid)

	_, err = projectSvc.Create(ctx, strings.Repeat("a", maxProjectNameLen+1), "")
	require.ErrorIs(t, err, appErr.ErrInvalid)

	project, err := projectSvc.Create(ctx, "  Site A  ", "  desc  ")
	require.NoError(t, err)
	require.Equal(t, "Site A", project.Name)
	require.Equal(t, "desc", project.Description)
	require.NotZero(t, project.Ctime)
}

func TestProjectService_DeleteCascades(t *testing.T) {
	db := newTestDB(t)
	store := newTestStore(t)
	projects := repo.NewProjectRepo(db)
	docs := repo.NewDocumentRepo(db)
	chunks := repo.NewChunkRepo(db)
	qa := repo.NewQARepo(db)
	projectSvc := NewProjectService(projects, docs, chunks, qa, store)
	docSvc := NewDocumentService(projects, docs, chunks, store)
	qaSvc := NewQAService(projects, qa, &stubAnswerer{res: agent.Result{
		Answer: "a", Handler: agent.HandlerQA, Intent: agent.IntentQA,
	}})
	ctx := context.Background()

	project, err := projectSvc.Create(ctx, "Site A", "")
	require.NoError(t, err)

	file := buildDOCX(t, "some content")
	doc, err := docSvc.Upload(ctx, project.ID, "specs.docx", file, file.Size())
	require.NoError(t, err)
	_, err = qaSvc.Ask(ctx, project.ID, "a question")
	require.NoError(t, err)

	require.NoError(t, projectSvc.Delete(ctx, project.ID))

	_, err = projectSvc.Get(ctx, project.ID)
	require.ErrorIs(t, err, appErr.ErrNotFound)
	remaining, err := chunks.ListGlobal(ctx, 50)
	require.NoError(t, err)
	require.Empty(t, remaining)
	entries, err := qa.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Empty(t, entries)
	_, err = docs.GetByID(ctx, project.ID, doc.ID)
	require.ErrorIs(t, err, appErr.ErrNotFound)

	require.ErrorIs(t, projectSvc.Delete(ctx, project.ID), appErr.ErrNotFound)
}
