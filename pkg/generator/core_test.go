package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/shouni/gig-thumbnail-kit/pkg/domain"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func newRequest(t *testing.T) domain.GenerationRequest {
	t.Helper()
	assets := domain.Assets{
		Primary:   "data:image/png;base64,cHJpbWFyeQ==",
		Secondary: "data:image/jpeg;base64,c2Vjb25kYXJ5",
		AuxFirst:  "data:image/webp;base64,YXV4MQ==",
		// プレフィックスなしでも送信できる
		AuxSecond: "YXV4Mg==",
	}
	req, err := domain.NewGenerationRequest(assets, domain.TextConfig{
		Heading:  "Modern React Dashboard",
		Services: [domain.MaxServices]string{"A", "", "B"},
	})
	require.NoError(t, err)
	return req
}

func TestNewGeminiThumbnailGenerator(t *testing.T) {
	t.Run("依存関係が足りない場合はエラーを返す", func(t *testing.T) {
		_, err := NewGeminiThumbnailGenerator(nil, &mockPrompt{}, "", "")
		assert.Error(t, err)

		_, err = NewGeminiThumbnailGenerator(&mockAIClient{}, nil, "", "")
		assert.Error(t, err)
	})

	t.Run("空のモデル名とアスペクト比は既定値になる", func(t *testing.T) {
		gen, err := NewGeminiThumbnailGenerator(&mockAIClient{}, &mockPrompt{}, "", "")
		require.NoError(t, err)
		assert.Equal(t, DefaultModel, gen.model)
		assert.Equal(t, DefaultAspectRatio, gen.aspectRatio)
	})
}

func TestGeminiThumbnailGenerator_GenerateThumbnail(t *testing.T) {
	ctx := context.Background()

	t.Run("成功: 指示文と4枚の画像を固定順で送信する", func(t *testing.T) {
		ai := &mockAIClient{
			generateFunc: func(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
				require.Len(t, parts, 5)
				assert.Equal(t, "rendered prompt", parts[0].Text)

				want := []string{"primary", "secondary", "aux1", "aux2"}
				for i, w := range want {
					blob := parts[i+1].InlineData
					require.NotNil(t, blob)
					assert.Equal(t, w, string(blob.Data))
					assert.Equal(t, InputMimeType, blob.MIMEType)
				}

				assert.Equal(t, "custom-model", model)
				assert.Equal(t, "4:3", opts.AspectRatio)
				return imageResponse("image/png", []byte("XYZ")), nil
			},
		}

		gen, err := NewGeminiThumbnailGenerator(ai, &mockPrompt{text: "rendered prompt"}, "custom-model", "4:3")
		require.NoError(t, err)

		img, err := gen.GenerateThumbnail(ctx, newRequest(t))
		require.NoError(t, err)
		assert.Equal(t, domain.ImageAsset("data:image/png;base64,WFla"), img)
		assert.Equal(t, 1, ai.calls, "通信は1回だけのはず")
	})

	t.Run("失敗: 通信エラーは ErrTransport として返る", func(t *testing.T) {
		expectedErr := errors.New("ai error")
		ai := &mockAIClient{
			generateFunc: func(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
				return nil, expectedErr
			},
		}
		gen, _ := NewGeminiThumbnailGenerator(ai, &mockPrompt{text: "p"}, "", "")

		img, err := gen.GenerateThumbnail(ctx, newRequest(t))
		assert.Empty(t, img)
		assert.ErrorIs(t, err, ErrTransport)
		assert.ErrorIs(t, err, expectedErr)
		assert.Contains(t, err.Error(), "ai error")
		assert.Equal(t, 1, ai.calls, "リトライしないはず")
	})

	t.Run("失敗: 候補なし", func(t *testing.T) {
		ai := &mockAIClient{
			generateFunc: func(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
				return &gemini.Response{RawResponse: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{}}}, nil
			},
		}
		gen, _ := NewGeminiThumbnailGenerator(ai, &mockPrompt{text: "p"}, "", "")

		img, err := gen.GenerateThumbnail(ctx, newRequest(t))
		assert.Empty(t, img)
		assert.ErrorIs(t, err, ErrNoCandidates)
		kind, ok := KindOf(err)
		assert.True(t, ok)
		assert.Equal(t, KindNoCandidates, kind)
	})

	t.Run("失敗: テキストのみの応答", func(t *testing.T) {
		ai := &mockAIClient{
			generateFunc: func(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
				return responseWithParts(&genai.Part{Text: "refused"}), nil
			},
		}
		gen, _ := NewGeminiThumbnailGenerator(ai, &mockPrompt{text: "p"}, "", "")

		img, err := gen.GenerateThumbnail(ctx, newRequest(t))
		assert.Empty(t, img)
		assert.ErrorIs(t, err, ErrNoImageReturned)
		assert.NotContains(t, err.Error(), "refused", "テキストは結果ではなく診断情報として扱う")
	})

	t.Run("成功: テキストの後の画像を返す", func(t *testing.T) {
		ai := &mockAIClient{
			generateFunc: func(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
				return responseWithParts(
					&genai.Part{Text: "here you go"},
					&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("XYZ")}},
				), nil
			},
		}
		gen, _ := NewGeminiThumbnailGenerator(ai, &mockPrompt{text: "p"}, "", "")

		img, err := gen.GenerateThumbnail(ctx, newRequest(t))
		require.NoError(t, err)
		assert.Equal(t, domain.ImageAsset("data:image/png;base64,WFla"), img)
	})

	t.Run("失敗: 指示文の生成エラーでは通信しない", func(t *testing.T) {
		ai := &mockAIClient{}
		gen, _ := NewGeminiThumbnailGenerator(ai, &mockPrompt{err: errors.New("template error")}, "", "")

		_, err := gen.GenerateThumbnail(ctx, newRequest(t))
		assert.ErrorIs(t, err, ErrInvalidRequest)
		assert.Equal(t, 0, ai.calls)
	})
}
