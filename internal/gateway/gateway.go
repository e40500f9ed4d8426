package gateway

import (
	"context"
	"fmt"
	"time"
)

// Role of a chat member as reported by the chat platform.
type Role string

const (
	RoleMember        Role = "member"
	RoleAdministrator Role = "administrator"
	RoleCreator       Role = "creator"
)

// IsPrivileged reports whether the role is exempt from moderation actions.
func (r Role) IsPrivileged() bool {
	return r == RoleAdministrator || r == RoleCreator
}

// Gateway executes moderation actions on the chat platform.
// All calls are bounded by the passed context.
type Gateway interface {
	GetMemberRole(ctx context.Context, chatID, userID int64) (Role, error)
	Restrict(ctx context.Context, chatID, userID int64, until time.Time) error
	Restore(ctx context.Context, chatID, userID int64) error
	RemoveMember(ctx context.Context, chatID, userID int64) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	Reply(ctx context.Context, chatID int64, messageID int, text string) error
	DirectMessage(ctx context.Context, userID int64, text string) error
}

// ActionError reports a failed gateway call. Moderation actions that fail
// are logged and do not abort message processing.
type ActionError struct {
	Op  string
	Err error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}
