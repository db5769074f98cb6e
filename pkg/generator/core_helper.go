package generator

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/shouni/gig-thumbnail-kit/pkg/domain"
	"github.com/shouni/gig-thumbnail-kit/pkg/imgutil"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// buildParts は [指示文, primary, secondary, aux_first, aux_second] の順でパーツを作ります。
// 画像の順序は生成サービス側の解釈に関わるため、並べ替えや重複除去はしません。
func (g *GeminiThumbnailGenerator) buildParts(req domain.GenerationRequest) ([]*genai.Part, error) {
	text, err := g.prompt.Render(req)
	if err != nil {
		return nil, err
	}

	images := req.Images()
	parts := make([]*genai.Part, 0, len(images)+1)
	parts = append(parts, &genai.Part{Text: text})

	for i, img := range images {
		part, err := toPart(img)
		if err != nil {
			return nil, fmt.Errorf("%s の画像を変換できません: %w", domain.Slots()[i], err)
		}
		parts = append(parts, part)
	}
	return parts, nil
}

// toPart はプレフィックスを取り除いた画像データを InlineData パーツに変換します。
func toPart(img domain.ImageAsset) (*genai.Part, error) {
	raw := imgutil.StripDataURIPrefix(string(img))
	if raw == "" {
		return nil, errors.New("画像データが空です")
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("Base64 のデコードに失敗しました: %w", err)
	}
	return &genai.Part{InlineData: &genai.Blob{MIMEType: InputMimeType, Data: data}}, nil
}

// parseToResponse は最初の候補のパーツを順に調べ、最初の画像データを返します。
func parseToResponse(resp *gemini.Response) (*ImageOutput, error) {
	if resp == nil || resp.RawResponse == nil || len(resp.RawResponse.Candidates) == 0 {
		return nil, &GenerationError{Kind: KindNoCandidates}
	}

	// 複数の候補は扱わず、最初の候補 (Candidate) のみを利用する。
	candidate := resp.RawResponse.Candidates[0]
	if candidate == nil {
		return nil, &GenerationError{Kind: KindNoCandidates}
	}

	var text string
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return &ImageOutput{Data: part.InlineData.Data, MimeType: part.InlineData.MIMEType}, nil
			}
			if text == "" && strings.TrimSpace(part.Text) != "" {
				text = part.Text
			}
		}
	}

	var diag []string
	if text != "" {
		diag = append(diag, text)
	}
	// 安全フィルター等によるブロックの確認
	switch candidate.FinishReason {
	case "", genai.FinishReasonUnspecified, genai.FinishReasonStop:
	default:
		diag = append(diag, fmt.Sprintf("FinishReason: %s", candidate.FinishReason))
	}

	return nil, &GenerationError{Kind: KindNoImageReturned, Diagnostic: strings.Join(diag, " / ")}
}

// wrapOutput は画像データを data URI に包み直します。
func wrapOutput(out *ImageOutput) domain.ImageAsset {
	mimeType := out.MimeType
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = imgutil.DefaultMimeType
	}
	return domain.ImageAsset(imgutil.EncodeDataURI(mimeType, out.Data))
}

func diagnosticOf(err error) string {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Diagnostic
	}
	return ""
}
