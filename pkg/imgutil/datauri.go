package imgutil

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DefaultMimeType は MIME タイプが不明な場合に使う画像形式です。
const DefaultMimeType = "image/png"

const (
	dataURIScheme = "data:"
	base64Marker  = ";base64,"
)

// StripDataURIPrefix は "data:image/png;base64," のようなプレフィックスを取り除き、
// Base64 本体だけを返します。プレフィックスがなければそのまま返します。
func StripDataURIPrefix(s string) string {
	if !strings.HasPrefix(s, dataURIScheme) {
		return s
	}
	if i := strings.Index(s, ","); i >= 0 {
		return s[i+1:]
	}
	return s
}

// WrapDataURI は Base64 文字列に data URI のプレフィックスを付けます。
// すでにプレフィックスが付いている場合は付け直します。
func WrapDataURI(mimeType, b64 string) string {
	if mimeType == "" {
		mimeType = DefaultMimeType
	}
	return dataURIScheme + mimeType + base64Marker + StripDataURIPrefix(b64)
}

// EncodeDataURI はバイト列を data URI に変換します。
func EncodeDataURI(mimeType string, data []byte) string {
	return WrapDataURI(mimeType, base64.StdEncoding.EncodeToString(data))
}

// ParseDataURI は data URI を MIME タイプとバイト列に分解します。
// プレフィックスのない Base64 文字列も受け付け、その場合 MIME タイプは空になります。
func ParseDataURI(s string) (string, []byte, error) {
	mimeType := ""
	if strings.HasPrefix(s, dataURIScheme) {
		header, _, found := strings.Cut(s, ",")
		if !found {
			return "", nil, fmt.Errorf("data URI にデータ部がありません")
		}
		meta := strings.TrimPrefix(header, dataURIScheme)
		if !strings.HasSuffix(meta, ";base64") {
			return "", nil, fmt.Errorf("Base64 以外の data URI には対応していません: %s", meta)
		}
		mimeType = strings.TrimSuffix(meta, ";base64")
	}

	data, err := base64.StdEncoding.DecodeString(StripDataURIPrefix(s))
	if err != nil {
		return "", nil, fmt.Errorf("Base64 のデコードに失敗しました: %w", err)
	}
	return mimeType, data, nil
}
