package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const testContract = `
# comment
PORT=5001
export MONGODB_URI=mongodb://localhost
NODE_ENV=
`

func TestFromMapDefaults(t *testing.T) {
	cfg, err := FromMap(testContract, map[string]string{})
	if err != nil {
		t.Fatalf("from map: %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Fatalf("expected port %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.BodyLimit != DefaultBodyLimit {
		t.Fatalf("expected body limit %q, got %q", DefaultBodyLimit, cfg.BodyLimit)
	}
	if cfg.MongodbUri != "" {
		t.Fatalf("expected empty mongo uri, got %q", cfg.MongodbUri)
	}
	want := []string{"MONGODB_URI", "NODE_ENV", "PORT"}
	if !reflect.DeepEqual(cfg.Missing, want) {
		t.Fatalf("expected missing %v, got %v", want, cfg.Missing)
	}
	if cfg.Addr() != ":5001" {
		t.Fatalf("expected :5001, got %s", cfg.Addr())
	}
}

func TestFromMapValues(t *testing.T) {
	cfg, err := FromMap(testContract, map[string]string{
		"PORT":             "8080",
		"MONGODB_URI":      "mongodb://db:27017/app",
		"MONGODB_DATABASE": "articles",
		"NODE_ENV":         "production",
		"BODY_LIMIT":       "1M",
	})
	if err != nil {
		t.Fatalf("from map: %v", err)
	}
	if cfg.Port != 8080 || cfg.MongodbUri != "mongodb://db:27017/app" || cfg.MongodbDatabase != "articles" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.NodeEnv != "production" || cfg.BodyLimit != "1M" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if len(cfg.Missing) != 0 {
		t.Fatalf("expected nothing missing, got %v", cfg.Missing)
	}
}

func TestFromMapRejectsNonIntegerPort(t *testing.T) {
	if _, err := FromMap("", map[string]string{"PORT": "http"}); err == nil {
		t.Fatalf("expected error for non-integer PORT")
	}
}

func TestLoadReadsEnvFileWithoutOverridingProcessEnv(t *testing.T) {
	for _, k := range []string{"PORT", "MONGODB_URI", "MONGODB_DATABASE", "NODE_ENV", "BODY_LIMIT", "GIT_COMMIT_SHA"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("NODE_ENV", "staging")

	path := filepath.Join(t.TempDir(), ".env")
	body := "PORT=6001\nMONGODB_URI=\"mongodb://file-host:27017\"\nNODE_ENV=production\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load("", path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 6001 {
		t.Fatalf("expected port from file, got %d", cfg.Port)
	}
	if cfg.MongodbUri != "mongodb://file-host:27017" {
		t.Fatalf("expected unquoted uri from file, got %q", cfg.MongodbUri)
	}
	if cfg.NodeEnv != "staging" {
		t.Fatalf("expected process env to win, got %q", cfg.NodeEnv)
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	if _, err := Load("", filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
}

func TestCamelToScreamingSnake(t *testing.T) {
	cases := map[string]string{
		"Port":            "PORT",
		"MongodbUri":      "MONGODB_URI",
		"MongodbDatabase": "MONGODB_DATABASE",
		"GitCommitSha":    "GIT_COMMIT_SHA",
	}
	for in, want := range cases {
		if got := camelToScreamingSnake(in); got != want {
			t.Fatalf("%s: expected %s, got %s", in, want, got)
		}
	}
}
