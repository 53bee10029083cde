package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/sunbeamlabs/sundoc/internal/extract"
	"github.com/sunbeamlabs/sundoc/internal/filestore"
	"github.com/sunbeamlabs/sundoc/internal/model"
	appErr "github.com/sunbeamlabs/sundoc/internal/pkg/errors"
	"github.com/sunbeamlabs/sundoc/internal/pkg/timeutil"
	"github.com/sunbeamlabs/sundoc/internal/repo"
)

// UploadFile is what the HTTP layer hands us for an upload. multipart.File
// and *os.File both satisfy it.
type UploadFile interface {
	io.Reader
	io.ReaderAt
	io.Seeker
}

type DocumentService struct {
	projects *repo.ProjectRepo
	docs     *repo.DocumentRepo
	chunks   *repo.ChunkRepo
	store    filestore.Store
}

func NewDocumentService(projects *repo.ProjectRepo, docs *repo.DocumentRepo, chunks *repo.ChunkRepo, store filestore.Store) *DocumentService {
	return &DocumentService{projects: projects, docs: docs, chunks: chunks, store: store}
}

// Upload stores the file, records the document and indexes its text. A
// failed extraction does not fail the upload; the document is kept with
// status error so the reprocess job can retry it.
func (s *DocumentService) Upload(ctx context.Context, projectID int64, fileName string, f UploadFile, size int64) (*model.Document, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	fileName = strings.TrimSpace(filepath.Base(fileName))
	if fileName == "" || fileName == "." {
		return nil, appErr.ErrInvalid
	}
	if !extract.Supported(fileName) {
		return nil, appErr.ErrInvalid
	}
	key := fmt.Sprintf("%d_%s%s", projectID, uuid.NewString(), strings.ToLower(filepath.Ext(fileName)))
	if err := s.store.Save(ctx, key, nopCloser{f}, size); err != nil {
		return nil, err
	}
	doc := &model.Document{
		ProjectID: projectID,
		FileName:  fileName,
		FileKey:   key,
		Status:    model.DocumentStatusProcessing,
		Ctime:     timeutil.NowUnix(),
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, err
	}
	s.index(ctx, doc, f, size)
	return doc, nil
}

// index extracts text segments from f and persists them as chunks, then
// flips the document to ready or error.
func (s *DocumentService) index(ctx context.Context, doc *model.Document, f UploadFile, size int64) {
	logger := logutil.GetLogger(ctx).With(
		zap.Int64("project_id", doc.ProjectID),
		zap.Int64("document_id", doc.ID),
		zap.String("file_name", doc.FileName),
	)
	segments, err := extract.Extract(f, size, doc.FileName)
	if err != nil {
		logger.Warn("text extraction failed", zap.Error(err))
		s.markStatus(ctx, doc, model.DocumentStatusError)
		return
	}
	chunks := make([]*model.Chunk, 0, len(segments))
	for _, seg := range segments {
		chunks = append(chunks, &model.Chunk{
			ProjectID:  doc.ProjectID,
			DocumentID: doc.ID,
			Locator:    seg.Locator,
			Content:    seg.Text,
		})
	}
	if err := s.chunks.CreateBatch(ctx, chunks); err != nil {
		logger.Error("failed to save chunks", zap.Error(err))
		s.markStatus(ctx, doc, model.DocumentStatusError)
		return
	}
	logger.Info("document indexed", zap.Int("chunks", len(chunks)))
	s.markStatus(ctx, doc, model.DocumentStatusReady)
}

func (s *DocumentService) markStatus(ctx context.Context, doc *model.Document, status string) {
	if err := s.docs.UpdateStatus(ctx, doc.ID, status); err != nil {
		logutil.GetLogger(ctx).Error("failed to update document status",
			zap.Int64("document_id", doc.ID),
			zap.String("status", status),
			zap.Error(err),
		)
		return
	}
	doc.Status = status
}

func (s *DocumentService) Get(ctx context.Context, projectID, documentID int64) (*model.Document, error) {
	return s.docs.GetByID(ctx, projectID, documentID)
}

func (s *DocumentService) List(ctx context.Context, projectID int64) ([]model.Document, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	return s.docs.ListByProject(ctx, projectID)
}

// Download returns the original uploaded file. Callers own closing the
// reader.
func (s *DocumentService) Download(ctx context.Context, projectID, documentID int64) (*model.Document, filestore.ReadSeekCloser, error) {
	doc, err := s.docs.GetByID(ctx, projectID, documentID)
	if err != nil {
		return nil, nil, err
	}
	r, err := s.store.Open(ctx, doc.FileKey)
	if err != nil {
		return nil, nil, err
	}
	return doc, r, nil
}

func (s *DocumentService) Delete(ctx context.Context, projectID, documentID int64) error {
	doc, err := s.docs.GetByID(ctx, projectID, documentID)
	if err != nil {
		return err
	}
	if err := s.chunks.DeleteByDocument(ctx, documentID); err != nil {
		return err
	}
	if err := s.docs.Delete(ctx, projectID, documentID); err != nil {
		return err
	}
	if err := s.store.Remove(ctx, doc.FileKey); err != nil {
		logutil.GetLogger(ctx).Warn("failed to remove stored file",
			zap.Int64("document_id", documentID),
			zap.String("file_key", doc.FileKey),
			zap.Error(err),
		)
	}
	return nil
}

// ReprocessStalled re-runs extraction for documents stuck in processing or
// error since before the cutoff. Stores that cannot serve files back (s3)
// are skipped with a warning.
func (s *DocumentService) ReprocessStalled(ctx context.Context, before int64) error {
	docs, err := s.docs.ListStalled(ctx, before)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}
	logger := logutil.GetLogger(ctx)
	logger.Info("reprocessing stalled documents", zap.Int("count", len(docs)))
	for i := range docs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		doc := &docs[i]
		r, err := s.store.Open(ctx, doc.FileKey)
		if err != nil {
			logger.Warn("cannot reopen stored file, skipping",
				zap.Int64("document_id", doc.ID),
				zap.Error(err),
			)
			continue
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			logger.Warn("failed to read stored file",
				zap.Int64("document_id", doc.ID),
				zap.Error(err),
			)
			continue
		}
		if err := s.chunks.DeleteByDocument(ctx, doc.ID); err != nil {
			logger.Error("failed to clear old chunks",
				zap.Int64("document_id", doc.ID),
				zap.Error(err),
			)
			continue
		}
		s.index(ctx, doc, bytes.NewReader(data), int64(len(data)))
	}
	return nil
}

// nopCloser adapts an UploadFile to the store's ReadSeekCloser; the HTTP
// layer owns the underlying file's lifetime.
type nopCloser struct {
	UploadFile
}

func (nopCloser) Close() error {
	return nil
}
