package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Action tags the kind of mutation recorded
type Action string

const (
	ActionLogin            Action = "LOGIN"
	ActionLogout           Action = "LOGOUT"
	ActionCreate           Action = "CREATE"
	ActionUpdate           Action = "UPDATE"
	ActionAddDetail        Action = "ADD_DETAIL"
	ActionUploadAttachment Action = "UPLOAD_ATTACHMENT"
	ActionAddComment       Action = "ADD_COMMENT"
	ActionGeneratePDF      Action = "GENERATE_PDF"
	ActionExport           Action = "EXPORT"
)

// Table names recorded in entries
const (
	TableUsers           = "users"
	TableReconciliations = "reconciliations"
)

// Entry is one append-only activity log row
type Entry struct {
	ID        uuid.UUID
	UserID    *uuid.UUID
	Action    Action
	TableName string
	RecordID  *uuid.UUID
	NewValues string
	IPAddress string
	UserAgent string
	CreatedAt time.Time
}

// NewEntry builds an entry. values is serialized to JSON; a json.RawMessage
// is stored as-is so raw request payloads survive unchanged.
func NewEntry(ctx context.Context, userID uuid.UUID, action Action, table string, recordID uuid.UUID, values any, now time.Time) (*Entry, error) {
	e := &Entry{
		ID:        uuid.New(),
		Action:    action,
		TableName: table,
		CreatedAt: now.UTC(),
	}
	if userID != uuid.Nil {
		e.UserID = &userID
	}
	if recordID != uuid.Nil {
		e.RecordID = &recordID
	}
	if values != nil {
		switch v := values.(type) {
		case json.RawMessage:
			e.NewValues = string(v)
		default:
			b, err := json.Marshal(v)
			if err != nil {
				return nil, err
			}
			e.NewValues = string(b)
		}
	}
	origin := OriginFrom(ctx)
	e.IPAddress = origin.IPAddress
	e.UserAgent = origin.UserAgent
	return e, nil
}

// Repository appends entries. There is no update or delete.
type Repository interface {
	Append(ctx context.Context, e *Entry) error
}
