package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	outputDir  string
	binDir     string
}

const ffmpegStub = `#!/bin/sh
if [ "$1" = "-version" ]; then
  echo "ffmpeg version 7.1 stub"
  exit 0
fi
for last; do :; done
printf 'RIFF' > "$last"
`

const ffprobeStub = `#!/bin/sh
if [ "$1" = "-version" ]; then
  echo "ffprobe version 7.1 stub"
  exit 0
fi
cat <<'JSON'
{"streams":[{"index":0,"codec_type":"video","codec_name":"h264"},{"index":1,"codec_type":"audio","codec_name":"aac","channels":2,"tags":{"language":"eng"}}],"format":{"format_name":"mov,mp4,m4a","duration":"9.000000"}}
JSON
`

const uvxStub = `#!/bin/sh
if [ "$1" = "--version" ]; then
  echo "uv 0.5.0"
  exit 0
fi
out=""
while [ $# -gt 0 ]; do
  if [ "$1" = "--output_dir" ]; then
    out="$2"
  fi
  shift
done
echo "Transcript: [0.0 --> 4.5]  Um, welcome to tc pcm."
echo "Transcript: [4.5 --> 9.0]  Today we cover should cost."
cat > "$out/audio.json" <<'JSON'
{"language":"en","segments":[{"start":0.0,"end":4.5,"text":" Um, welcome to tc pcm."},{"start":4.5,"end":9.0,"text":" Today we cover should cost."}]}
JSON
`

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	home := filepath.Join(base, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	t.Setenv("TRANSCRIBER_OUTPUT_DIR", "")
	t.Setenv("TRANSCRIBER_MODEL", "")
	t.Setenv("HF_TOKEN", "")
	t.Setenv("HUGGING_FACE_HUB_TOKEN", "")
	t.Setenv("NO_COLOR", "1")

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		outputDir:  filepath.Join(base, "output"),
		binDir:     filepath.Join(base, "bin"),
	}
	content := fmt.Sprintf(`[paths]
output_dir = %q
log_dir = %q
catalog_path = %q

[logging]
level = "error"
`, env.outputDir, filepath.Join(base, "logs"), filepath.Join(base, "state", "catalog.db"))
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

// installStubs writes fake ffmpeg, ffprobe, and uvx binaries and puts them
// first on PATH. Names listed in skip are left out.
func (e *cliTestEnv) installStubs(t *testing.T, skip ...string) {
	t.Helper()
	if err := os.MkdirAll(e.binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin: %v", err)
	}
	stubs := map[string]string{"ffmpeg": ffmpegStub, "ffprobe": ffprobeStub, "uvx": uvxStub}
	for name, script := range stubs {
		if contains(skip, name) {
			continue
		}
		if err := os.WriteFile(filepath.Join(e.binDir, name), []byte(script), 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}
	t.Setenv("PATH", e.binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func (e *cliTestEnv) writeMedia(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir media dir: %v", err)
	}
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, bytes.Repeat([]byte{0x42}, 512), 0o644); err != nil {
			t.Fatalf("write media: %v", err)
		}
		paths = append(paths, path)
	}
	return paths
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
