package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/gig-thumbnail-kit/pkg/domain"
	"github.com/shouni/go-gemini-client/pkg/gemini"
)

// GeminiThumbnailGenerator は4枚のスクリーンショットとテキストからサムネイル画像を生成します。
// リトライや並行制御は行わず、呼び出しごとに1回だけ通信します。
type GeminiThumbnailGenerator struct {
	aiClient    GenerativeModel
	prompt      PromptRenderer
	model       string
	aspectRatio string
}

// NewGeminiThumbnailGenerator は依存関係を注入して GeminiThumbnailGenerator を初期化します。
// model と aspectRatio が空の場合は既定値を使います。
func NewGeminiThumbnailGenerator(aiClient GenerativeModel, prompt PromptRenderer, model, aspectRatio string) (*GeminiThumbnailGenerator, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient is required")
	}
	if prompt == nil {
		return nil, fmt.Errorf("prompt renderer is required")
	}
	if model == "" {
		model = DefaultModel
	}
	if aspectRatio == "" {
		aspectRatio = DefaultAspectRatio
	}

	return &GeminiThumbnailGenerator{
		aiClient:    aiClient,
		prompt:      prompt,
		model:       model,
		aspectRatio: aspectRatio,
	}, nil
}

// GenerateThumbnail は指示文と4枚の画像を送信し、最初に見つかった画像を data URI で返します。
func (g *GeminiThumbnailGenerator) GenerateThumbnail(ctx context.Context, req domain.GenerationRequest) (domain.ImageAsset, error) {
	parts, err := g.buildParts(req)
	if err != nil {
		slog.ErrorContext(ctx, "リクエストの組み立てに失敗しました", "error", err)
		return "", &GenerationError{Kind: KindInvalidRequest, Err: err}
	}

	slog.InfoContext(ctx, "Geminiにサムネイル生成をリクエストします",
		"model", g.model, "aspect_ratio", g.aspectRatio, "total_parts", len(parts))

	opts := gemini.GenerateOptions{
		AspectRatio: g.aspectRatio,
	}
	resp, err := g.aiClient.GenerateWithParts(ctx, g.model, parts, opts)
	if err != nil {
		slog.ErrorContext(ctx, "Gemini APIの呼び出しに失敗しました", "model", g.model, "error", err)
		return "", &GenerationError{Kind: KindTransport, Err: err}
	}

	out, err := parseToResponse(resp)
	if err != nil {
		if kind, ok := KindOf(err); ok && kind == KindNoImageReturned {
			slog.WarnContext(ctx, "画像の代わりにテキストが返されました", "diagnostic", diagnosticOf(err))
		} else {
			slog.ErrorContext(ctx, "レスポンスの解析に失敗しました", "error", err)
		}
		return "", err
	}

	slog.InfoContext(ctx, "サムネイル画像を受信しました", "mime_type", out.MimeType, "bytes", len(out.Data))
	return wrapOutput(out), nil
}

var _ ThumbnailGenerator = (*GeminiThumbnailGenerator)(nil)
