package utils

import "strings"

// NonBlank は空白のみの要素を取り除き、残りを元の順序のまま返します。
// 入力スライスは変更しません。
func NonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
