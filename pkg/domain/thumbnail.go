package domain

import (
	"errors"
	"strings"

	"github.com/shouni/gig-thumbnail-kit/pkg/utils"
)

const (
	// MaxServices はテンプレートの左パネルに並べられるサービス数です。
	MaxServices = 3
	// MaxSkills はテンプレートの右パネルに並べられるスキル数です。
	MaxSkills = 4
)

var (
	ErrIncompleteAssets = errors.New("4枚すべての画像が必要です")
	ErrEmptyHeading     = errors.New("見出しが空です")
)

// TextConfig はユーザーが入力するテキスト項目です。
// 空欄は許容し、送信時に取り除きます。
type TextConfig struct {
	Heading  string
	Services [MaxServices]string
	Skills   [MaxSkills]string
}

// HeadingSet は前後の空白を除いた見出しが空でないかを返します。
func (t TextConfig) HeadingSet() bool {
	return strings.TrimSpace(t.Heading) != ""
}

// GenerationRequest は送信時点の入力を固定したスナップショットです。
// NewGenerationRequest 以外で組み立てないでください。
type GenerationRequest struct {
	assets   Assets
	heading  string
	services []string
	skills   []string
}

// NewGenerationRequest は入力が揃っている場合にのみリクエストを作成します。
func NewGenerationRequest(assets Assets, text TextConfig) (GenerationRequest, error) {
	if !assets.Complete() {
		return GenerationRequest{}, ErrIncompleteAssets
	}
	if !text.HeadingSet() {
		return GenerationRequest{}, ErrEmptyHeading
	}
	return GenerationRequest{
		assets:   assets,
		heading:  text.Heading,
		services: utils.NonBlank(text.Services[:]),
		skills:   utils.NonBlank(text.Skills[:]),
	}, nil
}

// Images は送信順（primary, secondary, aux_first, aux_second）で画像を返します。
func (r GenerationRequest) Images() []ImageAsset {
	images := make([]ImageAsset, 0, SlotCount)
	for _, s := range Slots() {
		images = append(images, r.assets.Get(s))
	}
	return images
}

func (r GenerationRequest) Heading() string { return r.heading }

func (r GenerationRequest) Services() []string { return append([]string(nil), r.services...) }

func (r GenerationRequest) Skills() []string { return append([]string(nil), r.skills...) }

// GenerationResult は1回の生成の結果です。Image と Err のどちらか一方だけが設定されます。
type GenerationResult struct {
	Image ImageAsset
	Err   error
}

// Succeeded は画像が得られたかどうかを返します。
func (r GenerationResult) Succeeded() bool {
	return r.Err == nil && !r.Image.IsZero()
}

// ErrorMessage は表示用のエラーメッセージです。成功時は空文字を返します。
func (r GenerationResult) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// SubmissionStatus は送信の進行状態です。
type SubmissionStatus int

const (
	StatusIdle SubmissionStatus = iota
	StatusInFlight
	StatusComplete
	StatusFailed
)

func (s SubmissionStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusInFlight:
		return "in_flight"
	case StatusComplete:
		return "complete"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CanSubmit は新しい送信を開始できる状態かどうかを返します。
func (s SubmissionStatus) CanSubmit() bool {
	return s != StatusInFlight
}
