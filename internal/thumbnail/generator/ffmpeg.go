package generator

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/filmroom/media-backend/internal/config"
	"github.com/filmroom/media-backend/pkg/logger"
	"github.com/pkg/errors"
)

const (
	thumbnailWidth  = 320
	thumbnailHeight = 180

	// Grab the frame one tenth into the video, past intros and black leads.
	captureOffset = 0.10
)

// Generator extracts a single jpg frame from a media source and returns the
// local path of the produced file.
type Generator interface {
	Generate(ctx context.Context, sourceURL, name string) (string, error)
}

type ffmpegGenerator struct {
	cfg    *config.Config
	logger logger.Logger
}

func NewFFmpegGenerator(cfg *config.Config, log logger.Logger) Generator {
	return &ffmpegGenerator{
		cfg:    cfg,
		logger: log,
	}
}

func (g *ffmpegGenerator) Generate(ctx context.Context, sourceURL, name string) (string, error) {
	if err := os.MkdirAll(g.cfg.Thumbnail.Dir, 0o755); err != nil {
		return "", errors.Wrap(err, "ffmpegGenerator.Generate.MkdirAll")
	}

	offset := 1.0
	if duration, err := g.probeDuration(ctx, sourceURL); err != nil {
		g.logger.Warnf("could not probe duration for %s, defaulting capture offset: %v", name, err)
	} else if duration > 0 {
		offset = duration * captureOffset
	}

	outPath := filepath.Join(g.cfg.Thumbnail.Dir, name+".jpg")
	ffmpegBin, err := lookupBinary(g.cfg.Thumbnail.FFmpegPath, "ffmpeg")
	if err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, ffmpegBin,
		"-ss", strconv.FormatFloat(offset, 'f', 2, 64),
		"-i", sourceURL,
		"-vframes", "1",
		"-vf", fmt.Sprintf("scale=%d:%d", thumbnailWidth, thumbnailHeight),
		"-y",
		outPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", errors.Wrapf(err, "ffmpegGenerator.Generate.ffmpeg: %s", string(out))
	}

	return normalizeOutput(g.cfg.Thumbnail.Dir, name, outPath)
}

func (g *ffmpegGenerator) probeDuration(ctx context.Context, sourceURL string) (float64, error) {
	ffprobeBin, err := lookupBinary(g.cfg.Thumbnail.FFprobePath, "ffprobe")
	if err != nil {
		return 0, err
	}
	cmd := exec.CommandContext(ctx, ffprobeBin,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		sourceURL,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, errors.Wrap(err, "ffmpegGenerator.probeDuration.ffprobe")
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, errors.Wrap(err, "ffmpegGenerator.probeDuration.ParseFloat")
	}
	return duration, nil
}

// normalizeOutput handles ffmpeg builds that emit sequence-numbered files
// like name.0000001.jpg instead of the requested name.jpg, renaming the
// first match into place.
func normalizeOutput(dir, name, wantPath string) (string, error) {
	if _, err := os.Stat(wantPath); err == nil {
		return wantPath, nil
	}
	matches, err := filepath.Glob(filepath.Join(dir, name+"*.jpg"))
	if err != nil || len(matches) == 0 {
		return "", errors.New("thumbnail file was not produced")
	}
	if err := os.Rename(matches[0], wantPath); err != nil {
		return "", errors.Wrap(err, "normalizeOutput.Rename")
	}
	return wantPath, nil
}

func lookupBinary(configured, fallback string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	bin, err := exec.LookPath(fallback)
	if err != nil {
		return "", errors.Wrapf(err, "%s not found in PATH", fallback)
	}
	return bin, nil
}
