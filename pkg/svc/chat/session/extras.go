package session

import (
	"context"
	"fmt"
	"io"

	"github.com/devantler-tech/olschat/pkg/client/ols"
	"github.com/devantler-tech/olschat/pkg/svc/chat/history"
	"github.com/google/uuid"
)

// ImportedCode is a code block taken from a response for the host console to open.
type ImportedCode struct {
	ID       string
	Language string
	Value    string
}

// AuthStatus returns the outcome of the last authorization check.
func (s *Session) AuthStatus() ols.AuthStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.authStatus
}

// PromptingBlocked reports whether the service rejected the user's credentials.
func (s *Session) PromptingBlocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.authStatus == ols.AuthNotAuthenticated || s.authStatus == ols.AuthNotAuthorized
}

// RefreshAuth checks the service authorization and records the outcome.
func (s *Session) RefreshAuth(ctx context.Context) (ols.AuthStatus, error) {
	if s.deps.Auth == nil {
		return ols.AuthUnknown, fmt.Errorf("%w: auth", ErrAdapterMissing)
	}

	status, err := s.deps.Auth.CheckAuth(ctx)

	s.mu.Lock()
	s.authStatus = status
	s.mu.Unlock()

	if err != nil {
		return status, fmt.Errorf("failed to check authorization: %w", err)
	}

	return status, nil
}

// CodeBlocks returns the code blocks of the successful assistant entry at index.
func (s *Session) CodeBlocks(index int) ([]history.CodeBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	response, err := s.responseLocked(index)
	if err != nil {
		return nil, err
	}

	return history.CodeBlocks(response.Text), nil
}

// CodeBlock returns one code block of the assistant entry at index.
func (s *Session) CodeBlock(index, block int) (history.CodeBlock, error) {
	blocks, err := s.CodeBlocks(index)
	if err != nil {
		return history.CodeBlock{}, err
	}

	if block < 0 || block >= len(blocks) {
		return history.CodeBlock{}, fmt.Errorf("%w: %d of entry %d", ErrCodeBlockNotFound, block, index)
	}

	return blocks[block], nil
}

// ImportCodeBlock marks a code block for import, replacing any pending import.
func (s *Session) ImportCodeBlock(index, block int) (ImportedCode, error) {
	code, err := s.CodeBlock(index, block)
	if err != nil {
		return ImportedCode{}, err
	}

	imported := ImportedCode{ID: uuid.NewString(), Language: code.Language, Value: code.Value}

	s.mu.Lock()
	s.imported = &imported
	s.mu.Unlock()

	return imported, nil
}

// TakeImportedCode returns and clears the pending import.
func (s *Session) TakeImportedCode() (ImportedCode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.imported == nil {
		return ImportedCode{}, false
	}

	imported := *s.imported
	s.imported = nil

	return imported, true
}

// Export writes the conversation as a YAML transcript.
func (s *Session) Export(writer io.Writer) error {
	s.mu.Lock()
	conversationID := s.conversationID
	entries := s.history.Entries()
	s.mu.Unlock()

	return history.Export(writer, conversationID, entries)
}
