package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/shouni/gig-thumbnail-kit/pkg/config"
	"github.com/shouni/gig-thumbnail-kit/pkg/generator"
	"github.com/shouni/gig-thumbnail-kit/pkg/prompt"
	"github.com/shouni/gig-thumbnail-kit/pkg/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, logOut io.Writer) error {
	flags := pflag.NewFlagSet("thumbgen", pflag.ContinueOnError)
	config.RegisterFlags(flags)
	in := registerInputFlags(flags)
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log, logOut)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	model, err := generator.NewGenAIModel(ctx, cfg.Gemini.APIKey)
	if err != nil {
		return err
	}
	builder, err := prompt.FromFile(cfg.Gemini.PromptTemplate)
	if err != nil {
		return err
	}
	gen, err := generator.NewGeminiThumbnailGenerator(model, builder, cfg.Gemini.Model, cfg.Gemini.AspectRatio)
	if err != nil {
		return err
	}

	path, err := generate(ctx, gen, in)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "サムネイルを保存しました", "path", path)
	return nil
}

// generate は入力を Session に積み、1回だけ生成して結果をファイルに書き出します。
func generate(ctx context.Context, gen generator.ThumbnailGenerator, in *inputs) (string, error) {
	sess, err := session.New(gen)
	if err != nil {
		return "", err
	}
	if err := in.apply(sess); err != nil {
		return "", err
	}
	if !sess.Ready() {
		return "", notReadyError(sess)
	}

	res := sess.Submit(ctx)
	if res.Err != nil {
		return "", res.Err
	}
	return writeResult(res.Image, in.outPath())
}

func newLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.JSON {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
