// audit/model.go
package audit

import (
	"encoding/json"
	"time"
)

// Actions recorded in the audit trail
const (
	ActionUserRegistered = "user_registered"
	ActionBookBorrowed   = "book_borrowed"
	ActionBookReturned   = "book_returned"
)

type AuditLog struct {
	Timestamp time.Time       `json:"timestamp"`
	UserID    string          `json:"user_id"`
	Action    string          `json:"action"`
	Resource  string          `json:"resource"`
	Success   bool            `json:"success"`
	Details   json.RawMessage `json:"details,omitempty"`
}
