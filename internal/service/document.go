package service

import (
	"context"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/domain/document"
	"github.com/buildline/buildline/internal/jobs"
	"github.com/buildline/buildline/internal/tracker"
	"github.com/buildline/buildline/internal/types"
)

type DocumentService interface {
	CreateDocument(ctx context.Context, req *dto.CreateDocumentRequest) (*document.Document, error)
	GetDocument(ctx context.Context, id string) (*document.Document, error)
	ListDocuments(ctx context.Context, filter *types.QueryFilter) (*dto.ListDocumentsResponse, error)
	ArchiveDocument(ctx context.Context, id string) (*document.Document, error)
	RestoreDocument(ctx context.Context, id string) (*document.Document, error)
}

type documentService struct {
	ServiceParams
	dispatcher *Dispatcher
	store      *trackedStore[document.Document, *document.Document]
}

func NewDocumentService(params ServiceParams, dispatcher *Dispatcher) DocumentService {
	s := &documentService{ServiceParams: params, dispatcher: dispatcher}
	s.store = newTrackedStore[document.Document](params, types.EntityTypeDocument, params.DocumentRepo, s)
	return s
}

func (s *documentService) CreateDocument(ctx context.Context, req *dto.CreateDocumentRequest) (*document.Document, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.ProjectID != nil {
		if err := requireProject(ctx, s.ServiceParams, *req.ProjectID); err != nil {
			return nil, err
		}
	}

	doc := req.ToDocument(ctx)
	if err := s.store.create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) GetDocument(ctx context.Context, id string) (*document.Document, error) {
	return s.store.get(ctx, id)
}

func (s *documentService) ListDocuments(ctx context.Context, filter *types.QueryFilter) (*dto.ListDocumentsResponse, error) {
	return s.store.list(ctx, filter)
}

func (s *documentService) ArchiveDocument(ctx context.Context, id string) (*document.Document, error) {
	return s.store.update(ctx, id, func(ctx context.Context, doc *document.Document) error {
		return moveTo(types.EntityTypeDocument, types.DocumentWorkflow, &doc.Status, types.StatusArchived)
	})
}

func (s *documentService) RestoreDocument(ctx context.Context, id string) (*document.Document, error) {
	return s.store.update(ctx, id, func(ctx context.Context, doc *document.Document) error {
		return moveTo(types.EntityTypeDocument, types.DocumentWorkflow, &doc.Status, types.StatusActive)
	})
}

// OnTransition queues a thumbnail for every new upload
func (s *documentService) OnTransition(ctx context.Context, doc *document.Document, t tracker.Transition) {
	description := ""
	if t.Created {
		description = "Document " + doc.Name + " uploaded"
	}
	s.dispatcher.RecordTransition(ctx, t, doc.GetProjectID(), types.ActivitySeverityInfo, description)

	if !t.Created {
		return
	}
	s.dispatcher.EnqueueNotification(ctx, types.JobGenerateThumbnail, jobs.Payload{
		EntityID:  doc.ID,
		ProjectID: doc.GetProjectID(),
		Data: map[string]interface{}{
			"document_id":  doc.ID,
			"storage_key":  doc.StorageKey,
			"content_type": doc.ContentType,
		},
	})
}
