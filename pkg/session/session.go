package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shouni/gig-thumbnail-kit/pkg/domain"
	"github.com/shouni/gig-thumbnail-kit/pkg/generator"
)

var (
	ErrNotReady = errors.New("画像4枚と見出しが揃っていません")
	ErrInFlight = errors.New("生成処理が実行中です")
)

// Session は入力状態と送信状態をまとめて保持します。
// すべての操作は単一の mutex で保護され、実行中の送信は常に1件までです。
type Session struct {
	mu        sync.Mutex
	generator generator.ThumbnailGenerator

	assets domain.Assets
	text   domain.TextConfig

	status  domain.SubmissionStatus
	result  domain.ImageAsset
	lastErr error
}

// New は依存関係を注入して Session を初期化します。
func New(gen generator.ThumbnailGenerator) (*Session, error) {
	if gen == nil {
		return nil, fmt.Errorf("generator is required")
	}
	return &Session{generator: gen, status: domain.StatusIdle}, nil
}

// SetAsset は指定した枠の画像を丸ごと差し替えます。
func (s *Session) SetAsset(slot domain.Slot, asset domain.ImageAsset) error {
	if !slot.Valid() {
		return fmt.Errorf("不明な画像枠です: %s", slot)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets = s.assets.With(slot, asset)
	return nil
}

func (s *Session) SetHeading(heading string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text.Heading = heading
}

// SetService は i 番目（0始まり）のサービス欄を更新します。
func (s *Session) SetService(i int, value string) error {
	if i < 0 || i >= domain.MaxServices {
		return fmt.Errorf("サービス欄は %d 個までです: index=%d", domain.MaxServices, i)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text.Services[i] = value
	return nil
}

// SetSkill は i 番目（0始まり）のスキル欄を更新します。
func (s *Session) SetSkill(i int, value string) error {
	if i < 0 || i >= domain.MaxSkills {
		return fmt.Errorf("スキル欄は %d 個までです: index=%d", domain.MaxSkills, i)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text.Skills[i] = value
	return nil
}

// SetText はテキスト項目をまとめて置き換えます。
func (s *Session) SetText(text domain.TextConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
}

// Ready は送信可能な入力が揃っているかを返します。
func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readyLocked()
}

func (s *Session) readyLocked() bool {
	return s.assets.Complete() && s.text.HeadingSet()
}

// AssetCount は設定済みの画像枠の数です。
func (s *Session) AssetCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assets.Count()
}

// MissingSlots は未設定の画像枠を返します。
func (s *Session) MissingSlots() []domain.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assets.Missing()
}

// HeadingSet は見出しが入力済みかどうかを返します。
func (s *Session) HeadingSet() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text.HeadingSet()
}

func (s *Session) Status() domain.SubmissionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Result は直近の成功結果です。失敗時や実行中は空になります。
func (s *Session) Result() domain.ImageAsset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// LastError は直近の失敗理由です。
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Submit は入力のスナップショットを生成処理に渡し、完了まで待ちます。
// 入力が揃っていない場合や実行中の場合は状態を変えずにエラーを返します。
// 生成処理が panic した場合も Failed に遷移し、InFlight のまま残ることはありません。
func (s *Session) Submit(ctx context.Context) (res domain.GenerationResult) {
	req, err := s.begin()
	if err != nil {
		return domain.GenerationResult{Err: err}
	}

	var (
		img    domain.ImageAsset
		genErr error
	)
	defer func() {
		if r := recover(); r != nil {
			img = ""
			genErr = fmt.Errorf("生成処理が異常終了しました: %v", r)
		}
		res = s.finish(ctx, img, genErr)
	}()

	img, genErr = s.generator.GenerateThumbnail(ctx, req)
	if genErr == nil && img.IsZero() {
		genErr = fmt.Errorf("生成結果が空です")
	}
	return res
}

func (s *Session) begin() (domain.GenerationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.status.CanSubmit() {
		return domain.GenerationRequest{}, ErrInFlight
	}
	if !s.readyLocked() {
		return domain.GenerationRequest{}, ErrNotReady
	}

	req, err := domain.NewGenerationRequest(s.assets, s.text)
	if err != nil {
		return domain.GenerationRequest{}, fmt.Errorf("%w: %v", ErrNotReady, err)
	}

	s.status = domain.StatusInFlight
	s.result = ""
	s.lastErr = nil
	return req, nil
}

func (s *Session) finish(ctx context.Context, img domain.ImageAsset, err error) domain.GenerationResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.status = domain.StatusFailed
		s.lastErr = err
		slog.WarnContext(ctx, "サムネイル生成に失敗しました", "status", s.status, "error", err)
		return domain.GenerationResult{Err: err}
	}

	s.status = domain.StatusComplete
	s.result = img
	slog.InfoContext(ctx, "サムネイル生成が完了しました", "status", s.status)
	return domain.GenerationResult{Image: img}
}
