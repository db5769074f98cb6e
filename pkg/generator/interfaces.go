package generator

import (
	"context"

	"github.com/shouni/gig-thumbnail-kit/pkg/domain"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// ThumbnailGenerator はビジネスロジック層が利用する統合窓口です。
// 1回の呼び出しで1回だけ生成サービスとやり取りし、画像か失敗のどちらかを返します。
type ThumbnailGenerator interface {
	GenerateThumbnail(ctx context.Context, req domain.GenerationRequest) (domain.ImageAsset, error)
}

// GenerativeModel は生成サービスとの通信部分です。
// 実装は1回の呼び出しで1回だけ通信しなければなりません。
// go-gemini-client の gemini.Client はシグネチャこそ同じですが、内部でリトライし、
// ResponseModalities も指定しないため、ここには渡さず GenAIModel を使います。
type GenerativeModel interface {
	GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
}

// PromptRenderer はリクエストから指示文を組み立てます。
type PromptRenderer interface {
	Render(req domain.GenerationRequest) (string, error)
}

// contentGenerator は genai.Models のうち GenAIModel が使うメソッドです。
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}
