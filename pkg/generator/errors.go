package generator

import (
	"errors"
)

// ErrorKind は生成失敗の分類です。
type ErrorKind int

const (
	KindInvalidRequest ErrorKind = iota + 1
	KindTransport
	KindNoCandidates
	KindNoImageReturned
)

var (
	ErrInvalidRequest  = errors.New("生成リクエストを組み立てられませんでした")
	ErrTransport       = errors.New("生成サービスとの通信に失敗しました")
	ErrNoCandidates    = errors.New("生成サービスから候補が返されませんでした")
	ErrNoImageReturned = errors.New("画像が生成されませんでした。リクエストが拒否されたか、テキストのみが返された可能性があります")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindInvalidRequest:
		return ErrInvalidRequest
	case KindTransport:
		return ErrTransport
	case KindNoCandidates:
		return ErrNoCandidates
	case KindNoImageReturned:
		return ErrNoImageReturned
	}
	return nil
}

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	case KindTransport:
		return "transport"
	case KindNoCandidates:
		return "no_candidates"
	case KindNoImageReturned:
		return "no_image_returned"
	}
	return "unknown"
}

// GenerationError は生成処理のあらゆる失敗をひとつの形にまとめたエラーです。
// errors.Is(err, ErrNoCandidates) のように分類ごとの判定ができます。
type GenerationError struct {
	Kind ErrorKind
	// Diagnostic は画像の代わりに返されたテキストや終了理由です。結果としては扱いません。
	Diagnostic string
	Err        error
}

func (e *GenerationError) Error() string {
	msg := "画像生成に失敗しました"
	if s := e.Kind.sentinel(); s != nil {
		msg = s.Error()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func (e *GenerationError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf は err が GenerationError であればその分類を返します。
func KindOf(err error) (ErrorKind, bool) {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Kind, true
	}
	return 0, false
}
