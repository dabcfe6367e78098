package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// pollInterval is how often Follow checks the file for new data.
const pollInterval = 250 * time.Millisecond

const maxLineBytes = 1024 * 1024

// Options selects which lines Tail returns.
type Options struct {
	// Offset is the byte position to resume from. A negative offset returns
	// the last Limit lines of the file instead.
	Offset int64
	// Limit caps the lines returned for a negative Offset; zero returns none
	// and only reports the end offset.
	Limit int
	// Match keeps only lines containing this substring (typically a run id).
	Match string
	// Wait blocks up to this long for new lines when none are available.
	Wait time.Duration
}

// Result holds the lines read and the offset to pass next time.
type Result struct {
	Lines  []string
	Offset int64
}

// Tail reads lines from path according to opts. A missing file yields an
// empty result rather than an error so callers can start before the first
// log line is written.
func Tail(ctx context.Context, path string, opts Options) (Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{}, nil
		}
		return Result{}, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		return Result{}, fmt.Errorf("log path %q is a directory", path)
	}

	if opts.Offset < 0 {
		return lastLines(path, opts.Limit, opts.Match)
	}

	offset := opts.Offset
	if offset > info.Size() {
		// Truncated or rotated; start over.
		offset = 0
	}
	deadline := time.Now().Add(max(opts.Wait, 0))
	for {
		res, err := readFrom(path, offset, opts.Match)
		if err != nil || len(res.Lines) > 0 || !time.Now().Before(deadline) {
			return res, err
		}
		offset = res.Offset
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// Follow prints the last lines of path and then every new matching line
// until ctx is canceled.
func Follow(ctx context.Context, path string, lines int, match string, emit func(string)) error {
	res, err := Tail(ctx, path, Options{Offset: -1, Limit: lines, Match: match})
	if err != nil {
		return err
	}
	for {
		for _, line := range res.Lines {
			emit(line)
		}
		res, err = Tail(ctx, path, Options{Offset: res.Offset, Match: match, Wait: time.Second})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}

func lastLines(path string, limit int, match string) (Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	ring := make([]string, max(limit, 0))
	next, count := 0, 0
	offset, err := scanLines(file, match, func(line string) {
		if limit <= 0 {
			return
		}
		ring[next] = line
		next = (next + 1) % limit
		count = min(count+1, limit)
	})
	if err != nil {
		return Result{}, err
	}

	out := make([]string, 0, count)
	start := (next - count + limit) % max(limit, 1)
	for i := range count {
		out = append(out, ring[(start+i)%limit])
	}
	return Result{Lines: out, Offset: offset}, nil
}

func readFrom(path string, offset int64, match string) (Result, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{}, nil
		}
		return Result{}, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return Result{Offset: offset}, fmt.Errorf("seek log file: %w", err)
	}
	var lines []string
	read, err := scanLines(file, match, func(line string) { lines = append(lines, line) })
	if err != nil {
		return Result{Offset: offset}, err
	}
	return Result{Lines: lines, Offset: offset + read}, nil
}

// scanLines feeds complete lines from r to fn and returns the number of bytes
// consumed. A trailing partial line is left unread so a writer mid-line is
// not split.
func scanLines(r io.Reader, match string, fn func(string)) (int64, error) {
	reader := bufio.NewReaderSize(r, 64*1024)
	var consumed int64
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return consumed, nil
			}
			return consumed, fmt.Errorf("read log file: %w", err)
		}
		consumed += int64(len(line))
		if len(line) > maxLineBytes {
			line = line[:maxLineBytes]
		}
		line = strings.TrimRight(line, "\r\n")
		if match == "" || strings.Contains(line, match) {
			fn(line)
		}
	}
}
