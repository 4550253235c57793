package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func dbFlags(t *testing.T) []string {
	t.Helper()
	url := "file:" + filepath.Join(t.TempDir(), "menu.db") + "?_pragma=foreign_keys(1)"
	return []string{"--db-driver", "sqlite", "--db-url", url}
}

func TestSeedIsIdempotent(t *testing.T) {
	flags := dbFlags(t)
	for i, want := range []bool{true, false} {
		out, err := run(t, append([]string{"seed"}, flags...)...)
		if err != nil {
			t.Fatalf("seed #%d: %v", i, err)
		}
		var res struct {
			Data struct {
				Written bool `json:"written"`
			} `json:"data"`
		}
		if err := json.Unmarshal([]byte(out), &res); err != nil {
			t.Fatalf("decode %q: %v", out, err)
		}
		if res.Data.Written != want {
			t.Fatalf("seed #%d: written=%v", i, res.Data.Written)
		}
	}

	out, err := run(t, append([]string{"seed", "--force"}, flags...)...)
	if err != nil || !strings.Contains(out, `"written":true`) {
		t.Fatalf("force: %v %s", err, out)
	}
}

func TestTreeText(t *testing.T) {
	flags := dbFlags(t)
	if _, err := run(t, append([]string{"seed"}, flags...)...); err != nil {
		t.Fatalf("seed: %v", err)
	}
	out, err := run(t, append([]string{"tree", "--format", "text"}, flags...)...)
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if !strings.Contains(lines[0], "creme_core-creme") {
		t.Fatalf("creme entry must come first: %q", out)
	}
	if !strings.Contains(out, "  persons-contacts") {
		t.Fatalf("children must be indented: %q", out)
	}
}

func TestEntriesByLevel(t *testing.T) {
	out, err := run(t, "entries", "--level", "0", "--format", "text", "--db-driver", "sqlite")
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if !strings.HasPrefix(line, "0\t") {
			t.Fatalf("unexpected line %q", line)
		}
	}
	if !strings.Contains(out, "creme_core-recent_entities") {
		t.Fatalf("missing level-0 entry: %q", out)
	}
}

func TestDumpAndBadFormat(t *testing.T) {
	flags := dbFlags(t)
	if _, err := run(t, append([]string{"seed"}, flags...)...); err != nil {
		t.Fatalf("seed: %v", err)
	}
	out, err := run(t, append([]string{"dump", "--format", "text"}, flags...)...)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.Contains(out, `<Container: id="creme_core-creme"`) || !strings.Contains(out, "Directory") {
		t.Fatalf("unexpected dump: %q", out)
	}
	if _, err := run(t, append([]string{"tree", "--format", "xml"}, flags...)...); err == nil {
		t.Fatalf("unknown format must fail")
	}
}
