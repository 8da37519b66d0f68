package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"github.com/razan-ali/petrolube-guardpass/internal/gate/entity"
	"github.com/razan-ali/petrolube-guardpass/internal/gate/repository"
	"github.com/razan-ali/petrolube-guardpass/internal/gate/sse"
)

// LogService handles entry/exit logging, delivery notes and request
// documents.
type LogService struct {
	repos       *repository.Repositories
	minioClient *minio.Client
	bucketName  string
}

// NewLogService creates a log service. minioClient may be nil, in which case
// uploads keep only the metadata row.
func NewLogService(repos *repository.Repositories, minioClient *minio.Client, bucketName string) *LogService {
	return &LogService{
		repos:       repos,
		minioClient: minioClient,
		bucketName:  bucketName,
	}
}

// OpenEntry records a visitor entering the facility. Security only; the
// request must be approved.
func (s *LogService) OpenEntry(ctx context.Context, actor Actor, requestID, notes string) (*entity.EntryExitLog, error) {
	if !actor.IsSecurityAdmin() {
		return nil, fmt.Errorf("%w: entry logging requires a security admin", ErrForbidden)
	}

	request, err := s.repos.Request.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if request.Status != entity.StatusApproved {
		return nil, fmt.Errorf("%w: only approved requests may be logged", ErrInvalidState)
	}

	now := time.Now()
	log := &entity.EntryExitLog{
		ID:        uuid.New().String(),
		RequestID: requestID,
		EntryTime: &now,
		Notes:     notes,
		LoggedBy:  actor.ID,
		CreatedAt: now,
	}
	if err := s.repos.EntryLog.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("create entry log: %w", err)
	}

	go sse.PublishEntryUpdate(request.DepartmentToVisit, requestID, log.ID, "entry")
	return log, nil
}

// CloseExit records the visitor leaving. The log must still be active.
func (s *LogService) CloseExit(ctx context.Context, actor Actor, logID string) (*entity.EntryExitLog, error) {
	if !actor.IsSecurityAdmin() {
		return nil, fmt.Errorf("%w: exit logging requires a security admin", ErrForbidden)
	}

	log, err := s.repos.EntryLog.FindByID(ctx, logID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !log.Active() {
		return nil, fmt.Errorf("%w: log is already closed", ErrInvalidState)
	}

	now := time.Now()
	ok, err := s.repos.EntryLog.CloseGuarded(ctx, logID, now)
	if err != nil {
		return nil, fmt.Errorf("close entry log: %w", err)
	}
	if !ok {
		return nil, ErrInvalidState
	}

	log.ExitTime = &now

	if request, err := s.repos.Request.FindByID(ctx, log.RequestID); err == nil {
		go sse.PublishEntryUpdate(request.DepartmentToVisit, log.RequestID, logID, "exit")
	}
	return log, nil
}

// UploadDeliveryNote stores a delivery note file for a truck request doing
// loading. The permission gate is enforced here, at the write boundary, not
// only in the interface.
func (s *LogService) UploadDeliveryNote(ctx context.Context, actor Actor, requestID, exitLogID, fileName string, reader io.Reader, fileSize int64, contentType string) (*entity.DeliveryNote, error) {
	if !actor.IsDepartmentAdmin() {
		return nil, fmt.Errorf("%w: delivery notes are uploaded by department admins", ErrForbidden)
	}

	request, err := s.repos.Request.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if request.DepartmentToVisit != actor.Department {
		return nil, fmt.Errorf("%w: request belongs to department %s", ErrForbidden, request.DepartmentToVisit)
	}
	if !request.AcceptsDeliveryNotes() {
		return nil, fmt.Errorf("%w: delivery notes only apply to trucks doing loading", ErrForbidden)
	}

	if exitLogID != "" {
		log, err := s.repos.EntryLog.FindByID(ctx, exitLogID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: exit log %s", ErrNotFound, exitLogID)
			}
			return nil, err
		}
		if log.RequestID != requestID {
			return nil, fmt.Errorf("%w: exit log belongs to another request", ErrValidation)
		}
	}

	objectName, err := s.putObject(ctx, "delivery-notes", fileName, reader, fileSize, contentType)
	if err != nil {
		return nil, err
	}

	note := &entity.DeliveryNote{
		ID:         uuid.New().String(),
		RequestID:  requestID,
		ExitLogID:  exitLogID,
		FileName:   fileName,
		FileURL:    objectName,
		UploadedBy: actor.ID,
		UploadedAt: time.Now(),
	}
	if err := s.repos.DeliveryNote.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create delivery note: %w", err)
	}
	return note, nil
}

// AttachDocument stores a submission document (id/iqama scan, truck photos,
// ...) against a request. Open to the requester; terminal requests no longer
// accept documents.
func (s *LogService) AttachDocument(ctx context.Context, requestID, documentType, fileName string, reader io.Reader, fileSize int64, contentType string) (*entity.RequestDocument, error) {
	if !entity.IsValidDocumentType(documentType) {
		return nil, fmt.Errorf("%w: unknown document type %q", ErrValidation, documentType)
	}

	request, err := s.repos.Request.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if entity.IsTerminalStatus(request.Status) {
		return nil, fmt.Errorf("%w: request is already %s", ErrInvalidState, request.Status)
	}

	objectName, err := s.putObject(ctx, "documents", fileName, reader, fileSize, contentType)
	if err != nil {
		return nil, err
	}

	doc := &entity.RequestDocument{
		ID:           uuid.New().String(),
		RequestID:    requestID,
		DocumentType: documentType,
		FileName:     fileName,
		FileURL:      objectName,
		UploadedAt:   time.Now(),
	}
	if err := s.repos.Document.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create request document: %w", err)
	}
	return doc, nil
}

// ListLogs returns all entry/exit logs for a request, scope-checked.
func (s *LogService) ListLogs(ctx context.Context, actor Actor, requestID string) ([]entity.EntryExitLog, error) {
	request, err := s.repos.Request.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if actor.IsDepartmentAdmin() && request.DepartmentToVisit != actor.Department {
		return nil, fmt.Errorf("%w: request belongs to department %s", ErrForbidden, request.DepartmentToVisit)
	}
	return s.repos.EntryLog.ListByRequest(ctx, requestID)
}

func (s *LogService) putObject(ctx context.Context, prefix, fileName string, reader io.Reader, fileSize int64, contentType string) (string, error) {
	objectName := fmt.Sprintf("%s/%s/%s%s", prefix, time.Now().Format("2006/01/02"), uuid.New().String()[:8], filepath.Ext(fileName))
	if s.minioClient != nil {
		_, err := s.minioClient.PutObject(ctx, s.bucketName, objectName, reader, fileSize, minio.PutObjectOptions{
			ContentType: contentType,
		})
		if err != nil {
			return "", fmt.Errorf("upload file: %w", err)
		}
	}
	return objectName, nil
}
