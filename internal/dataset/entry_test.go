package dataset

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/juglab/portfolio/internal/fetch"
)

func md5Hex(data []byte) string {
	h := md5.Sum(data)
	return hex.EncodeToString(h[:])
}

func validSpec() Spec {
	return Spec{
		Name:        "Wikipedia logo",
		URL:         "https://example.org/Wikipedia-logo-v2.svg",
		FileName:    "Wikipedia-logo-v2.svg",
		MD5:         md5Hex([]byte("I would prefer not to")),
		Description: "Wikipedia logo",
		License:     "CC BY-SA 3.0",
		Citation:    "Wikipedia",
		Size:        0.1,
		Files:       Files{".": {"Wikipedia-logo-v2.svg"}},
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Spec)
		ok     bool
	}{
		{"valid", func(s *Spec) {}, true},
		{"uppercase md5 normalized", func(s *Spec) { s.MD5 = strings.ToUpper(s.MD5) }, true},
		{"missing name", func(s *Spec) { s.Name = "" }, false},
		{"missing url", func(s *Spec) { s.URL = "" }, false},
		{"missing file name", func(s *Spec) { s.FileName = "" }, false},
		{"file name with directory", func(s *Spec) { s.FileName = "../x.zip" }, false},
		{"short md5", func(s *Spec) { s.MD5 = "abc" }, false},
		{"non-hex md5", func(s *Spec) { s.MD5 = strings.Repeat("z", 32) }, false},
		{"empty description allowed", func(s *Spec) { s.Description = "" }, true},
		{"nil files allowed", func(s *Spec) { s.Files = nil }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := validSpec()
			tt.mutate(&spec)
			e, err := New(spec)
			if tt.ok {
				if err != nil {
					t.Fatalf("New() error: %v", err)
				}
				if e.MD5() != strings.ToLower(spec.MD5) {
					t.Errorf("MD5() = %q, want lowercase of %q", e.MD5(), spec.MD5)
				}
				return
			}
			if !errors.Is(err, ErrInvalidEntry) {
				t.Errorf("expected ErrInvalidEntry, got %v", err)
			}
		})
	}
}

func TestEntry_Accessors(t *testing.T) {
	spec := validSpec()
	e := MustNew(spec)

	if e.Name() != spec.Name || e.URL() != spec.URL || e.FileName() != spec.FileName {
		t.Errorf("identity accessors do not match spec")
	}
	if e.Description() != spec.Description || e.License() != spec.License || e.Citation() != spec.Citation {
		t.Errorf("descriptive accessors do not match spec")
	}
	if e.Size() != 0.1 {
		t.Errorf("Size() = %v", e.Size())
	}
}

func TestEntry_FilesCannotBeMutated(t *testing.T) {
	spec := validSpec()
	e := MustNew(spec)

	// Mutating the input after construction does not reach the entry.
	spec.Files["."][0] = "changed"
	spec.Files["extra"] = []string{"x"}

	// Nor does mutating what the accessor returns.
	got := e.Files()
	got["."][0] = "changed again"
	delete(got, ".")

	again := e.Files()
	if len(again) != 1 || again["."][0] != "Wikipedia-logo-v2.svg" {
		t.Errorf("Files() = %v, entry state was mutated", again)
	}

	s := e.Spec()
	s.Name = "other"
	s.Files["."][0] = "other"
	if e.Name() != "Wikipedia logo" || e.Files()["."][0] != "Wikipedia-logo-v2.svg" {
		t.Error("Spec() copy leaked into the entry")
	}
}

func TestMustNew_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew should panic on invalid spec")
		}
	}()
	MustNew(Spec{})
}

func TestEntry_Stem(t *testing.T) {
	tests := []struct {
		fileName string
		want     string
	}{
		{"BSD68_reproducibility.zip", "BSD68_reproducibility"},
		{"SEM.ZIP", "SEM"},
		{"DSB2018_n10.tar.gz", "DSB2018_n10"},
		{"flywing.tgz", "flywing"},
		{"Wikipedia-logo-v2.svg", "Wikipedia-logo-v2"},
		{"README", "README"},
		{".zip", ".zip"},
	}
	for _, tt := range tests {
		spec := validSpec()
		spec.FileName = tt.fileName
		e := MustNew(spec)
		if got := e.Stem(); got != tt.want {
			t.Errorf("Stem(%q) = %q, want %q", tt.fileName, got, tt.want)
		}
	}
}

func TestSummary_JSONKeys(t *testing.T) {
	e := MustNew(validSpec())
	data, err := json.Marshal(e.Summary())
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if len(raw) != 2 {
		t.Fatalf("summary has %d keys, want exactly URL and Citation: %s", len(raw), data)
	}
	if raw["URL"] != e.URL() || raw["Citation"] != e.Citation() {
		t.Errorf("summary = %s", data)
	}
}

func TestEntry_String(t *testing.T) {
	out := MustNew(validSpec()).String()
	for _, want := range []string{"Wikipedia logo", "CC BY-SA 3.0", "Wikipedia-logo-v2.svg", "0.1 MB", ".: Wikipedia-logo-v2.svg"} {
		if !strings.Contains(out, want) {
			t.Errorf("String() missing %q:\n%s", want, out)
		}
	}
}

func TestEntry_Fetch(t *testing.T) {
	payload := []byte("<svg/>")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	spec := validSpec()
	spec.URL = server.URL + "/Wikipedia-logo-v2.svg"
	faulty := MustNew(spec)
	f := fetch.New(fetch.WithHTTPClient(server.Client()))
	dir := t.TempDir()

	files, err := faulty.FetchWith(context.Background(), f, dir, fetch.Request{VerifyHash: false, CreateParents: true})
	if err != nil {
		t.Fatalf("unverified fetch failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, faulty.FileName())); err != nil {
		t.Errorf("archive missing after fetch: %v", err)
	}
	if files["."][0] != "Wikipedia-logo-v2.svg" {
		t.Errorf("manifest = %v", files)
	}

	_, err = faulty.FetchWith(context.Background(), f, dir, fetch.DefaultRequest())
	if !errors.Is(err, fetch.ErrIntegrity) {
		t.Fatalf("expected ErrIntegrity, got %v", err)
	}

	spec.MD5 = md5Hex(payload)
	good := MustNew(spec)
	if _, err := good.FetchWith(context.Background(), f, dir, fetch.DefaultRequest()); err != nil {
		t.Fatalf("verified fetch with correct hash failed: %v", err)
	}
}
