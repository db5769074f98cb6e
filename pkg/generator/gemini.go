package generator

import (
	"context"
	"fmt"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// 画像出力モデルはテキストと画像の両方を返せるように指定する必要がある。
var responseModalities = []string{"TEXT", "IMAGE"}

// GenAIModel は genai SDK を直接使って GenerativeModel を満たす通信クライアントです。
// リトライはせず、終了理由の判定も呼び出し側 (parseToResponse) に任せます。
type GenAIModel struct {
	models contentGenerator
}

// NewGenAIModel は API キーを使って Gemini API 用のクライアントを作成します。
func NewGenAIModel(ctx context.Context, apiKey string) (*GenAIModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("Geminiクライアントの初期化に失敗しました: %w", err)
	}

	return &GenAIModel{models: client.Models}, nil
}

// GenerateWithParts はパーツ群をひとつのユーザーコンテンツとして送信します。
func (m *GenAIModel) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: responseModalities,
	}
	if opts.AspectRatio != "" {
		config.ImageConfig = &genai.ImageConfig{AspectRatio: opts.AspectRatio}
	}
	if opts.SystemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(opts.SystemPrompt, genai.RoleUser)
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := m.models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, err
	}
	return &gemini.Response{RawResponse: resp}, nil
}

var _ GenerativeModel = (*GenAIModel)(nil)
