package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"church-cms/internal/core/domain"
	"church-cms/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

func newTestLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestAuditService_Log_PersistsToRepo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditService(mockRepo, newTestLogger())

	done := make(chan struct{})
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, log *domain.AuditLog) error {
			if log.Action != domain.AuditActionDelete {
				t.Errorf("expected DELETE, got %s", log.Action)
			}
			if log.ID == uuid.Nil || log.CreatedAt.IsZero() {
				t.Errorf("expected id and timestamp to be filled")
			}
			close(done)
			return nil
		},
	)

	actorID := "user-1"
	svc.Log(context.Background(), &domain.AuditLog{
		ActorID:      &actorID,
		ActorEmail:   "pastor@church.org",
		Action:       domain.AuditActionDelete,
		ResourceType: "sermons",
		ResourceID:   uuid.New().String(),
		IPAddress:    "127.0.0.1",
	})

	select {
	case <-done:
		// OK
	case <-time.After(2 * time.Second):
		t.Fatal("audit log not persisted in time")
	}
}

func TestAuditService_Log_RepoErrorIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditService(mockRepo, newTestLogger())

	done := make(chan struct{})
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, *domain.AuditLog) error {
			defer close(done)
			return errors.New("database not ready")
		},
	)

	svc.Log(context.Background(), &domain.AuditLog{Action: domain.AuditActionCreate, ResourceType: "events"})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("audit write not attempted")
	}
}

func TestAuditService_Log_NilRepo(t *testing.T) {
	svc := NewAuditService(nil, newTestLogger())

	// Should not panic
	svc.Log(context.Background(), &domain.AuditLog{
		Action:       domain.AuditActionUpload,
		ResourceType: "upload",
		IPAddress:    "127.0.0.1",
	})

	time.Sleep(50 * time.Millisecond) // let goroutine run
}
