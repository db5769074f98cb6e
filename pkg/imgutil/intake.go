package imgutil

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	_ "golang.org/x/image/webp"
)

// EncodeImageFile は読み込んだファイルの内容を検証し、data URI に変換します。
// 画像として判定・デコードできないデータはエラーになります。
func EncodeImageFile(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("画像データが空です")
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("画像ファイルではありません (detected: %s)", mimeType)
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("画像のデコードに失敗しました (%s): %w", mimeType, err)
	}

	return EncodeDataURI(mimeType, data), nil
}
