package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// ErrInvalidMedia marks input files that cannot be transcribed.
var ErrInvalidMedia = errors.New("invalid media file")

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index         int               `json:"index"`
	CodecName     string            `json:"codec_name"`
	CodecLong     string            `json:"codec_long_name"`
	CodecType     string            `json:"codec_type"`
	Duration      string            `json:"duration"`
	SampleRate    string            `json:"sample_rate"`
	Channels      int               `json:"channels"`
	ChannelLayout string            `json:"channel_layout"`
	Tags          map[string]string `json:"tags"`
	Disposition   map[string]int    `json:"disposition"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
	FormatName string `json:"format_name"`
}

// Info is a flattened view of a probe result.
type Info struct {
	Format       string  `json:"format"`
	Duration     float64 `json:"duration"`
	HasAudio     bool    `json:"has_audio"`
	HasVideo     bool    `json:"has_video"`
	AudioStreams int     `json:"audio_streams"`
	VideoStreams int     `json:"video_streams"`
	AudioCodec   string  `json:"audio_codec,omitempty"`
	SampleRate   int     `json:"sample_rate,omitempty"`
}

// Inspect executes ffprobe against the provided path and decodes the JSON response.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return Result{}, fmt.Errorf("ffprobe inspect: %w", err)
	}
	return Parse(output)
}

// Parse decodes raw ffprobe JSON.
func Parse(data []byte) (Result, error) {
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// VideoStreamCount returns the number of video streams discovered.
func (r Result) VideoStreamCount() int {
	return r.countStreams("video")
}

// AudioStreamCount returns the number of audio streams discovered.
func (r Result) AudioStreamCount() int {
	return r.countStreams("audio")
}

func (r Result) countStreams(kind string) int {
	count := 0
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, kind) {
			count++
		}
	}
	return count
}

// DurationSeconds returns the container duration in seconds, 0 when absent,
// or NaN when ffprobe reported an unparseable value.
func (r Result) DurationSeconds() float64 {
	return parseFloat(r.Format.Duration)
}

// Summary flattens the result. An unparseable duration is reported as 0.
func (r Result) Summary() Info {
	info := Info{
		Format:       r.Format.FormatName,
		AudioStreams: r.AudioStreamCount(),
		VideoStreams: r.VideoStreamCount(),
	}
	info.HasAudio = info.AudioStreams > 0
	info.HasVideo = info.VideoStreams > 0
	if d := r.DurationSeconds(); !math.IsNaN(d) && d > 0 {
		info.Duration = d
	}
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "audio") {
			info.AudioCodec = stream.CodecName
			if rate, err := strconv.Atoi(strings.TrimSpace(stream.SampleRate)); err == nil {
				info.SampleRate = rate
			}
			break
		}
	}
	return info
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return math.NaN()
}

// ValidateFile checks that path names an existing, non-empty regular file.
// Failures wrap ErrInvalidMedia.
func ValidateFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s does not exist", ErrInvalidMedia, path)
		}
		return fmt.Errorf("%w: %s: %w", ErrInvalidMedia, path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a file", ErrInvalidMedia, path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: %s is empty", ErrInvalidMedia, path)
	}
	return nil
}
