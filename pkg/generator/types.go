package generator

const (
	// DefaultModel は画像出力に対応した Gemini モデルです。
	DefaultModel = "gemini-2.5-flash-image"
	// DefaultAspectRatio は出力画像のアスペクト比です。
	DefaultAspectRatio = "16:9"
	// InputMimeType は送信するスクリーンショットに付ける MIME タイプです。
	InputMimeType = "image/png"
)

// ImageOutput はレスポンス解析の内部結果
type ImageOutput struct {
	Data     []byte
	MimeType string
}
