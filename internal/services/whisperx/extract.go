package whisperx

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ExtractAudio converts one audio stream of source to a mono 16kHz WAV file
// suitable for WhisperX. A negative audioIndex selects the first audio stream.
func ExtractAudio(ctx context.Context, ffmpegBinary, source string, audioIndex int, dest string) error {
	cmd := exec.CommandContext(ctx, ffmpegBinary, buildExtractArgs(source, audioIndex, dest)...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg extract: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func buildExtractArgs(source string, audioIndex int, dest string) []string {
	mapping := "0:a:0"
	if audioIndex >= 0 {
		mapping = fmt.Sprintf("0:%d", audioIndex)
	}
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-map", mapping,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
}
