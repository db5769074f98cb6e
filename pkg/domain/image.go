package domain

import "fmt"

// Slot はサムネイルに配置する4枚のスクリーンショットの入力枠です。
// 値の順序は生成サービスへの送信順と一致します。
type Slot int

const (
	SlotPrimary   Slot = iota // メインのデスクトップ画面（ノートPC #1）
	SlotSecondary             // レスポンシブのモバイル画面（スマートフォン）
	SlotAuxFirst              // コードエディタ（ノートPC #2 左半分）
	SlotAuxSecond             // 出力画面（ノートPC #2 右半分）
)

// SlotCount は入力枠の数です。
const SlotCount = 4

// Slots は送信順に並んだすべての Slot を返します。
func Slots() []Slot {
	return []Slot{SlotPrimary, SlotSecondary, SlotAuxFirst, SlotAuxSecond}
}

func (s Slot) String() string {
	switch s {
	case SlotPrimary:
		return "primary"
	case SlotSecondary:
		return "secondary"
	case SlotAuxFirst:
		return "aux_first"
	case SlotAuxSecond:
		return "aux_second"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// Valid は Slot が既知の入力枠かどうかを返します。
func (s Slot) Valid() bool {
	return s >= SlotPrimary && s <= SlotAuxSecond
}

// ImageAsset はエンコード済みの画像ペイロードです。
// 通常は "data:image/png;base64," のようなプレフィックス付きの文字列を保持します。
type ImageAsset string

// IsZero は画像が未設定かどうかを返します。
func (a ImageAsset) IsZero() bool {
	return a == ""
}

// Assets は4つの入力枠を固定フィールドで保持します。
type Assets struct {
	Primary   ImageAsset
	Secondary ImageAsset
	AuxFirst  ImageAsset
	AuxSecond ImageAsset
}

// Get は指定した枠の画像を返します。
func (a Assets) Get(slot Slot) ImageAsset {
	switch slot {
	case SlotPrimary:
		return a.Primary
	case SlotSecondary:
		return a.Secondary
	case SlotAuxFirst:
		return a.AuxFirst
	case SlotAuxSecond:
		return a.AuxSecond
	}
	return ""
}

// With は指定した枠だけを丸ごと差し替えたコピーを返します。
func (a Assets) With(slot Slot, asset ImageAsset) Assets {
	switch slot {
	case SlotPrimary:
		a.Primary = asset
	case SlotSecondary:
		a.Secondary = asset
	case SlotAuxFirst:
		a.AuxFirst = asset
	case SlotAuxSecond:
		a.AuxSecond = asset
	}
	return a
}

// Count は設定済みの枠の数です。
func (a Assets) Count() int {
	n := 0
	for _, s := range Slots() {
		if !a.Get(s).IsZero() {
			n++
		}
	}
	return n
}

// Complete は4枠すべてが埋まっているかどうかを返します。
func (a Assets) Complete() bool {
	return a.Count() == SlotCount
}

// Missing は未設定の枠を送信順に返します。
func (a Assets) Missing() []Slot {
	var missing []Slot
	for _, s := range Slots() {
		if a.Get(s).IsZero() {
			missing = append(missing, s)
		}
	}
	return missing
}
