package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lari1230/fiml/internal/config"
)

func testConfig(dir string) config.Config {
	return config.Config{
		BaseURL: "http://localhost:1",
		Timeout: time.Second,
		DataDir: filepath.Join(dir, "fiml"),
	}
}

func Test_printJSON_WritesPretty(t *testing.T) {
	t.Parallel()

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	defer func() { os.Stdout = old }()

	printJSON(map[string]any{"a": 1})
	_ = w.Close()
	out, _ := io.ReadAll(r)

	var m map[string]any
	if json.Unmarshal(out, &m) != nil || m["a"] != float64(1) {
		t.Fatalf("printJSON produced invalid json: %s", string(out))
	}
	if !bytes.Contains(out, []byte("\n")) {
		t.Fatalf("printJSON should indent")
	}
}

func Test_readAll_File_And_Stdin(t *testing.T) {
	t.Parallel()

	tmp := filepath.Join(t.TempDir(), "f.json")
	_ = os.WriteFile(tmp, []byte(`{"theme":"dark"}`), 0o600)
	b, err := readAll(tmp)
	if err != nil || string(b) != `{"theme":"dark"}` {
		t.Fatalf("readAll(file): %q %v", b, err)
	}

	r, w, _ := os.Pipe()
	old := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = old }()
	go func() { _, _ = io.WriteString(w, "from-stdin"); _ = w.Close() }()
	b, err = readAll("-")
	if err != nil || string(b) != "from-stdin" {
		t.Fatalf("readAll(stdin): %q %v", b, err)
	}
}

func Test_movieFilterFlags(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("movies", flag.ContinueOnError)
	f := movieFilterFlags(fs)
	if err := fs.Parse([]string{"-page", "3", "-limit", "24", "-sort", "year", "-order", "asc", "-q", "heat"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if f.Page != 3 || f.Limit != 24 || f.SortBy != "year" || f.Order != "asc" || f.Query != "heat" {
		t.Fatalf("filter mismatch: %+v", f)
	}
	if f.YearFrom != 0 || f.YearTo != 0 || f.Genre != "" {
		t.Fatalf("unset flags should stay zero: %+v", f)
	}
}

func Test_movieInputFlags(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("movie-add", flag.ContinueOnError)
	in := movieInputFlags(fs)
	if err := fs.Parse([]string{"-title", "Heat", "-director", "Mann", "-year", "1995", "-duration", "170"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if in.Title != "Heat" || in.Director != "Mann" || in.Year != 1995 || in.Duration != 170 {
		t.Fatalf("input mismatch: %+v", in)
	}
}

func Test_newApp_WiresComponents(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	a, err := newApp(testConfig(dir), nil)
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	if a.gw == nil || a.sess == nil || a.auth == nil || a.movies == nil || a.reviews == nil || a.genres == nil || a.admin == nil {
		t.Fatalf("component left nil: %+v", a)
	}
}
