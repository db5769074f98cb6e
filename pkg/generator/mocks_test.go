package generator

import (
	"context"

	"github.com/shouni/gig-thumbnail-kit/pkg/domain"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// --- Mocks ---

type mockAIClient struct {
	generateFunc func(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
	calls        int
}

func (m *mockAIClient) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	m.calls++
	if m.generateFunc != nil {
		return m.generateFunc(ctx, model, parts, opts)
	}
	return imageResponse("image/png", []byte("fake")), nil
}

type mockPrompt struct {
	text string
	err  error
}

func (m *mockPrompt) Render(req domain.GenerationRequest) (string, error) {
	return m.text, m.err
}

type mockContentGenerator struct {
	calls        int
	lastModel    string
	lastContents []*genai.Content
	lastConfig   *genai.GenerateContentConfig
	resp         *genai.GenerateContentResponse
	err          error
}

func (m *mockContentGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.calls++
	m.lastModel = model
	m.lastContents = contents
	m.lastConfig = config
	return m.resp, m.err
}

// --- Helpers ---

func responseWithParts(parts ...*genai.Part) *gemini.Response {
	return &gemini.Response{
		RawResponse: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: parts}},
			},
		},
	}
}

func imageResponse(mimeType string, data []byte) *gemini.Response {
	return responseWithParts(&genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}})
}
