package share

import (
	"context"
	"errors"
	"fmt"

	"github.com/bobmcallan/wealth-portal/internal/common"
)

// ErrNoShareTarget is returned when neither a native share target nor a
// clipboard is available.
var ErrNoShareTarget = errors.New("no share target available")

// Native is a platform share sheet.
type Native interface {
	Share(ctx context.Context, p Payload) error
}

// Clipboard accepts plain text.
type Clipboard interface {
	WriteText(text string) error
}

// NativeFunc adapts a function to Native.
type NativeFunc func(ctx context.Context, p Payload) error

func (f NativeFunc) Share(ctx context.Context, p Payload) error { return f(ctx, p) }

// ClipboardFunc adapts a function to Clipboard.
type ClipboardFunc func(text string) error

func (f ClipboardFunc) WriteText(text string) error { return f(text) }

// Method names the target that handled a share.
type Method string

const (
	MethodNative    Method = "native"
	MethodClipboard Method = "clipboard"
)

// Result describes a completed share.
type Result struct {
	Method  Method `json:"method"`
	Message string `json:"message,omitempty"`
}

// Sharer picks a share target: Native when present, otherwise Clipboard.
// Either may be nil.
type Sharer struct {
	Native    Native
	Clipboard Clipboard

	// FallbackOnError copies to the clipboard when the native share fails.
	// Off by default.
	FallbackOnError bool

	logger *common.Logger
}

// NewSharer creates a sharer over the given targets.
func NewSharer(native Native, clipboard Clipboard, logger *common.Logger) *Sharer {
	return &Sharer{Native: native, Clipboard: clipboard, logger: logger}
}

// Share delivers p and reports which target handled it. Nothing is retried.
func (s *Sharer) Share(ctx context.Context, p Payload) (Result, error) {
	if s.Native != nil {
		err := s.Native.Share(ctx, p)
		if err == nil {
			return Result{Method: MethodNative}, nil
		}
		if s.logger != nil {
			s.logger.Warn().Str("title", p.Title).Str("error", err.Error()).Msg("native share failed")
		}
		if !s.FallbackOnError || s.Clipboard == nil {
			return Result{}, fmt.Errorf("native share failed: %w", err)
		}
	}

	if s.Clipboard == nil {
		return Result{}, ErrNoShareTarget
	}
	if err := s.Clipboard.WriteText(p.Text); err != nil {
		if s.logger != nil {
			s.logger.Warn().Str("title", p.Title).Str("error", err.Error()).Msg("clipboard copy failed")
		}
		return Result{}, fmt.Errorf("clipboard copy failed: %w", err)
	}
	return Result{Method: MethodClipboard, Message: ClipboardNotice}, nil
}
