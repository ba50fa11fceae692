package slash

import "errors"

var (
	// ErrUnknownCommand is returned for slash commands that do not exist.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage is returned when a command is called with the wrong arguments.
	ErrUsage = errors.New("usage")
	// ErrUnknownKind is returned by /use for kinds that cannot be resolved.
	ErrUnknownKind = errors.New("unknown kind")
	// ErrUnknownAttachmentType is returned by /attach for unknown types.
	ErrUnknownAttachmentType = errors.New("unknown attachment type")
	// ErrAttachmentNotFound is returned when no attachment matches an id prefix.
	ErrAttachmentNotFound = errors.New("attachment not found")
	// ErrAmbiguousID is returned when an id prefix matches several attachments.
	ErrAmbiguousID = errors.New("attachment id is ambiguous")
	// ErrNoEditPending is returned when finishing an edit that was not started.
	ErrNoEditPending = errors.New("no edit in progress")
)
