package config_test

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creachadair/jpull/bufpool"
	"github.com/creachadair/jpull/cmd/jpull/internal/config"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func writeFile(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(text), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestParse(t *testing.T) {
	cfgFile := writeFile(t, `
pool:
  max_buffers: 8
  max_retained: 4096
select: "$.items[*]"
limit: 5
stats: true
`)
	tests := []struct {
		name string
		args []string
		want config.Config
	}{
		{"Defaults", nil, config.Config{Inputs: []string{"-"}}},
		{"Flags", []string{"-max-buffers", "3", "-select", "$.a", "-n", "2", "x.json", "y.json"}, config.Config{
			Pool:   bufpool.Config{MaxBuffers: 3},
			Select: "$.a",
			Limit:  2,
			Inputs: []string{"x.json", "y.json"},
		}},
		{"File", []string{"-config", cfgFile}, config.Config{
			Pool:   bufpool.Config{MaxBuffers: 8, MaxRetained: 4096},
			Select: "$.items[*]",
			Limit:  5,
			Stats:  true,
			Inputs: []string{"-"},
		}},
		{"FileOverride", []string{"-config", cfgFile, "-n", "0", "-max-retained", "100", "-stats=false", "-"}, config.Config{
			Pool:   bufpool.Config{MaxBuffers: 8, MaxRetained: 100},
			Select: "$.items[*]",
			Stats:  false,
			Inputs: []string{"-"},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := config.Parse(append([]string{"jpull"}, tc.args...))
			if err != nil {
				t.Fatalf("Parse: unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, *got, cmpopts.IgnoreUnexported(config.Config{})); diff != "" {
				t.Errorf("Config (-want, +got):\n%s", diff)
			}
			if got.Expr() == nil && got.Select != "" && got.Select != "$" {
				t.Errorf("Expr: got nil for %q", got.Select)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	badFile := writeFile(t, "pool:\n  max_buffers: 2\nbogus: 1\n")
	tests := []struct {
		name string
		args []string
		want error // if non-nil, checked with errors.Is
	}{
		{"Help", []string{"-help"}, flag.ErrHelp},
		{"UnknownFlag", []string{"-nonesuch"}, nil},
		{"NegativeLimit", []string{"-n", "-1"}, config.ErrNegativeLimit},
		{"NegativePool", []string{"-max-buffers", "-5"}, config.ErrBadPoolConfig},
		{"BadSelect", []string{"-select", "items"}, nil},
		{"NoConfig", []string{"-config", filepath.Join(t.TempDir(), "nonesuch.yaml")}, os.ErrNotExist},
		{"UnknownField", []string{"-config", badFile}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := config.Parse(append([]string{"jpull"}, tc.args...))
			if err == nil {
				t.Fatalf("Parse: got %+v, want error", cfg)
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Errorf("Parse: got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestUsage(t *testing.T) {
	// Every flag is documented in the usage text.
	fs := []string{"-config", "-select", "-n", "-max-buffers", "-max-retained", "-stats"}
	u := config.Usage()
	for _, f := range fs {
		if !strings.Contains(u, f+" ") {
			t.Errorf("Usage does not mention %q", f)
		}
	}
}
