// Package apperr is the outcome taxonomy of the mutation layer. Every
// failure a handler can surface is one of four kinds; callers branch on
// the kind, never on message text.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
)

type Error struct {
	Kind         Kind
	MessageID    string         // i18n message id shown to the end user
	TemplateData map[string]any // optional data for templated messages
	Err          error          // underlying cause, operator-facing only
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.MessageID, e.Err)
	}
	return e.MessageID
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(messageID string) *Error {
	return &Error{Kind: KindValidation, MessageID: messageID}
}

func ValidationData(messageID string, data map[string]any) *Error {
	return &Error{Kind: KindValidation, MessageID: messageID, TemplateData: data}
}

func Conflict(messageID string) *Error {
	return &Error{Kind: KindConflict, MessageID: messageID}
}

func NotFound(messageID string) *Error {
	return &Error{Kind: KindNotFound, MessageID: messageID}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, MessageID: "error.internal", Err: err}
}

// KindOf classifies any error. Unrecognized errors are internal failures;
// nothing escapes the taxonomy.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageID returns the user-facing message id for err.
func MessageID(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.MessageID
	}
	return "error.internal"
}

// TemplateData returns the message template data for err, if any.
func TemplateData(err error) map[string]any {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.TemplateData
	}
	return nil
}
