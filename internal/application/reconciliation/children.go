package reconciliation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	appshared "github.com/iletigo/mutabakat/internal/application/shared"
	"github.com/iletigo/mutabakat/internal/domain/audit"
	"github.com/iletigo/mutabakat/internal/domain/identity"
	"github.com/iletigo/mutabakat/internal/domain/reconciliation"
	"github.com/iletigo/mutabakat/internal/domain/shared"
	"go.uber.org/zap"
)

// AddDetail appends a line item. A zero line number takes the next free one.
func (s *Service) AddDetail(ctx context.Context, actor identity.Actor, id uuid.UUID, in reconciliation.DetailInput) (*reconciliation.Detail, error) {
	if actor.IsZero() {
		return nil, shared.ErrUnauthorized
	}
	if in.LineNumber < 0 {
		return nil, shared.NewValidationError("line_number must be positive")
	}

	now := s.clock.Now()
	var detail *reconciliation.Detail
	err := s.txScope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		ok, err := repos.Reconciliations().Exists(ctx, id)
		if err != nil {
			return fmt.Errorf("check reconciliation: %w", err)
		}
		if !ok {
			return shared.ErrNotFound
		}

		line := in.LineNumber
		if line == 0 {
			maxLine, err := repos.Details().MaxLineNumber(ctx, id)
			if err != nil {
				return fmt.Errorf("next line number: %w", err)
			}
			line = maxLine + 1
		}

		detail, err = reconciliation.NewDetail(id, line, in, now)
		if err != nil {
			return err
		}
		if err := repos.Details().Create(ctx, detail); err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				return shared.NewValidationError(fmt.Sprintf("line_number %d already exists", line))
			}
			return fmt.Errorf("create detail: %w", err)
		}

		return appendActivity(ctx, repos, actor, audit.ActionAddDetail, id, map[string]any{
			"line_number":  detail.LineNumber,
			"description":  detail.Description,
			"our_amount":   detail.OurAmount.StringFixed(2),
			"their_amount": detail.TheirAmount.StringFixed(2),
		}, now)
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// ListDetails returns the line items in line number order
func (s *Service) ListDetails(ctx context.Context, id uuid.UUID) ([]reconciliation.Detail, error) {
	if err := s.ensureExists(ctx, id); err != nil {
		return nil, err
	}
	details, err := s.repos.Details.ListByReconciliation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list details: %w", err)
	}
	if details == nil {
		details = []reconciliation.Detail{}
	}
	return details, nil
}

// AddAttachment stores an upload and records it. The stored object is
// removed again when the database transaction fails.
func (s *Service) AddAttachment(ctx context.Context, actor identity.Actor, id uuid.UUID, up Upload) (*reconciliation.Attachment, error) {
	if actor.IsZero() {
		return nil, shared.ErrUnauthorized
	}
	if s.storage == nil {
		return nil, errors.New("attachment storage is not configured")
	}
	if err := s.ensureExists(ctx, id); err != nil {
		return nil, err
	}
	if up.Content == nil || strings.TrimSpace(up.FileName) == "" {
		return nil, shared.NewRequiredError("file")
	}
	kind, err := reconciliation.ParseAttachmentKind(up.Kind)
	if err != nil {
		return nil, err
	}
	if err := reconciliation.ValidateUpload(kind, up.FileName, up.Size); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(up.Content, reconciliation.MaxAttachmentSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if err := reconciliation.ValidateUpload(kind, up.FileName, int64(len(data))); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	key := reconciliation.StorageKey(id, kind, now, up.FileName)
	mimeType := detectMimeType(up.MimeType, up.FileName)
	if err := s.storage.Put(ctx, key, data, mimeType); err != nil {
		return nil, fmt.Errorf("store attachment: %w", err)
	}

	att := reconciliation.NewAttachment(id, kind, up.FileName, key, mimeType, int64(len(data)), actor.UserID, now)
	err = s.txScope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		if err := repos.Attachments().Create(ctx, att); err != nil {
			return fmt.Errorf("create attachment: %w", err)
		}
		return appendActivity(ctx, repos, actor, audit.ActionUploadAttachment, id, map[string]any{
			"file_name": att.FileName,
			"file_type": string(att.Kind),
		}, now)
	})
	if err != nil {
		if delErr := s.storage.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			s.logger.Error("Failed to remove orphaned attachment",
				zap.String("key", key),
				zap.Error(delErr),
			)
		}
		return nil, err
	}

	s.metrics.RecordAttachment(ctx, kind, att.FileSize)
	return att, nil
}

func detectMimeType(declared, fileName string) string {
	if declared = strings.TrimSpace(declared); declared != "" {
		return declared
	}
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName))); t != "" {
		return t
	}
	return "application/octet-stream"
}

// ListAttachments returns attachments newest first
func (s *Service) ListAttachments(ctx context.Context, id uuid.UUID) ([]reconciliation.AttachmentView, error) {
	if err := s.ensureExists(ctx, id); err != nil {
		return nil, err
	}
	atts, err := s.repos.Attachments.ListByReconciliation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	if atts == nil {
		atts = []reconciliation.AttachmentView{}
	}
	return atts, nil
}

// OpenAttachment opens the stored bytes of one attachment
func (s *Service) OpenAttachment(ctx context.Context, id, attachmentID uuid.UUID) (*Download, error) {
	if s.storage == nil {
		return nil, errors.New("attachment storage is not configured")
	}
	att, err := s.repos.Attachments.FindByID(ctx, id, attachmentID)
	if err != nil {
		return nil, err
	}
	body, err := s.storage.Open(ctx, att.StorageKey())
	if err != nil {
		return nil, err
	}
	return &Download{Attachment: att, Body: body}, nil
}

// CommentInput is a new comment; IsInternal defaults to true
type CommentInput struct {
	Content    string
	IsInternal *bool
}

// AddComment posts a comment on the thread and returns it with the
// author's display name.
func (s *Service) AddComment(ctx context.Context, actor identity.Actor, id uuid.UUID, in CommentInput) (*reconciliation.CommentView, error) {
	if actor.IsZero() {
		return nil, shared.ErrUnauthorized
	}
	internal := true
	if in.IsInternal != nil {
		internal = *in.IsInternal
	}

	now := s.clock.Now()
	comment, err := reconciliation.NewComment(id, actor.UserID, in.Content, internal, now)
	if err != nil {
		return nil, err
	}

	view := &reconciliation.CommentView{Comment: *comment, UserName: identity.UnknownUserName}
	err = s.txScope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		ok, err := repos.Reconciliations().Exists(ctx, id)
		if err != nil {
			return fmt.Errorf("check reconciliation: %w", err)
		}
		if !ok {
			return shared.ErrNotFound
		}
		if author, err := repos.Users().FindByID(ctx, actor.UserID); err == nil {
			view.UserName = author.DisplayName()
		}
		if err := repos.Comments().Create(ctx, comment); err != nil {
			return fmt.Errorf("create comment: %w", err)
		}
		return appendActivity(ctx, repos, actor, audit.ActionAddComment, id, map[string]any{
			"content":     comment.Content,
			"is_internal": comment.IsInternal,
		}, now)
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// ListComments returns comments newest first
func (s *Service) ListComments(ctx context.Context, id uuid.UUID) ([]reconciliation.CommentView, error) {
	if err := s.ensureExists(ctx, id); err != nil {
		return nil, err
	}
	comments, err := s.repos.Comments.ListByReconciliation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	if comments == nil {
		comments = []reconciliation.CommentView{}
	}
	return comments, nil
}

