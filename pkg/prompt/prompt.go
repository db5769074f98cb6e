package prompt

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/shouni/gig-thumbnail-kit/pkg/domain"
)

//go:embed templates/thumbnail.tmpl
var defaultTemplate string

// Builder は生成サービスに渡す指示文を組み立てます。
// テンプレートの文面はレイアウト仕様そのものなので、差し替え可能な設定として扱います。
type Builder struct {
	tmpl *template.Template
}

// templateData はテンプレートから参照できる値です。
type templateData struct {
	Heading  string
	Services []string
	Skills   []string
}

// New はテンプレート文字列から Builder を作成します。
func New(text string) (*Builder, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("テンプレートが空です")
	}
	tmpl, err := template.New("thumbnail").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("テンプレートの解析に失敗しました: %w", err)
	}
	return &Builder{tmpl: tmpl}, nil
}

// Default は埋め込みテンプレートを使う Builder を返します。
func Default() *Builder {
	b, err := New(defaultTemplate)
	if err != nil {
		panic(err)
	}
	return b
}

// FromFile はファイルのテンプレートを読み込みます。path が空なら Default を返します。
func FromFile(path string) (*Builder, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("テンプレートファイルの読み込みに失敗しました: %w", err)
	}
	return New(string(data))
}

// Render は見出しとラベルをテンプレートに埋め込んだ指示文を返します。
func (b *Builder) Render(req domain.GenerationRequest) (string, error) {
	var sb strings.Builder
	data := templateData{
		Heading:  req.Heading(),
		Services: req.Services(),
		Skills:   req.Skills(),
	}
	if err := b.tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("指示文の生成に失敗しました: %w", err)
	}
	return sb.String(), nil
}
