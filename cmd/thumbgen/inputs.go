package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/shouni/gig-thumbnail-kit/pkg/domain"
	"github.com/shouni/gig-thumbnail-kit/pkg/imgutil"
	"github.com/shouni/gig-thumbnail-kit/pkg/session"
)

// inputs はコマンドラインから受け取る素材です。
type inputs struct {
	images   map[domain.Slot]*string
	heading  string
	services []string
	skills   []string
	out      string
}

func registerInputFlags(flags *pflag.FlagSet) *inputs {
	in := &inputs{images: make(map[domain.Slot]*string, domain.SlotCount)}
	in.images[domain.SlotPrimary] = flags.String("laptop", "", "メインのデスクトップ画面のスクリーンショット")
	in.images[domain.SlotSecondary] = flags.String("mobile", "", "モバイル画面のスクリーンショット")
	in.images[domain.SlotAuxFirst] = flags.String("code", "", "コードエディタのスクリーンショット")
	in.images[domain.SlotAuxSecond] = flags.String("code-output", "", "コードの出力画面のスクリーンショット")
	flags.StringVar(&in.heading, "heading", "", "サムネイル上部の見出し")
	flags.StringArrayVar(&in.services, "service", nil, fmt.Sprintf("サービス名 (最大%d個、繰り返し指定)", domain.MaxServices))
	flags.StringArrayVar(&in.skills, "skill", nil, fmt.Sprintf("スキル名 (最大%d個、繰り返し指定)", domain.MaxSkills))
	flags.StringVarP(&in.out, "out", "o", "", "出力ファイル (既定: thumbgen-<unixミリ秒>.png)")
	return in
}

// apply は画像ファイルを読み込み、テキストとあわせて Session に設定します。
func (in *inputs) apply(sess *session.Session) error {
	for _, slot := range domain.Slots() {
		path := ""
		if p := in.images[slot]; p != nil {
			path = *p
		}
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%s の画像を読み込めません: %w", slot, err)
		}
		asset, err := imgutil.EncodeImageFile(data)
		if err != nil {
			return fmt.Errorf("%s (%s): %w", slot, path, err)
		}
		if err := sess.SetAsset(slot, domain.ImageAsset(asset)); err != nil {
			return err
		}
	}

	sess.SetHeading(in.heading)
	if len(in.services) > domain.MaxServices {
		return fmt.Errorf("--service は最大%d個です (指定: %d)", domain.MaxServices, len(in.services))
	}
	for i, s := range in.services {
		if err := sess.SetService(i, s); err != nil {
			return err
		}
	}
	if len(in.skills) > domain.MaxSkills {
		return fmt.Errorf("--skill は最大%d個です (指定: %d)", domain.MaxSkills, len(in.skills))
	}
	for i, s := range in.skills {
		if err := sess.SetSkill(i, s); err != nil {
			return err
		}
	}
	return nil
}

func (in *inputs) outPath() string {
	if in.out != "" {
		return in.out
	}
	return fmt.Sprintf("thumbgen-%d.png", time.Now().UnixMilli())
}

func notReadyError(sess *session.Session) error {
	var missing []string
	for _, slot := range sess.MissingSlots() {
		missing = append(missing, slot.String())
	}
	if !sess.HeadingSet() {
		missing = append(missing, "heading")
	}
	return fmt.Errorf("%w (不足: %s, 画像 %d/%d)", session.ErrNotReady,
		strings.Join(missing, ", "), sess.AssetCount(), domain.SlotCount)
}

// writeResult は data URI をデコードしてファイルに保存します。
func writeResult(img domain.ImageAsset, path string) (string, error) {
	_, data, err := imgutil.ParseDataURI(string(img))
	if err != nil {
		return "", fmt.Errorf("生成画像をデコードできません: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("生成画像を保存できません: %w", err)
	}
	return path, nil
}
