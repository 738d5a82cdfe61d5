package workdir

import (
	"os"
	"path/filepath"
	"testing"
)

func mkdir(t *testing.T, parts ...string) string {
	t.Helper()
	p := filepath.Join(parts...)
	if err := os.MkdirAll(p, 0755); err != nil {
		t.Fatalf("mkdir %s: %v", p, err)
	}
	return p
}

func TestResolveBaseDirFindsParentProject(t *testing.T) {
	root := t.TempDir()
	mkdir(t, root, stateDir)
	sub := mkdir(t, root, "exports", "2024")

	if got := ResolveBaseDir(sub); got != root {
		t.Errorf("ResolveBaseDir(%s) = %s, want %s", sub, got, root)
	}
}

func TestResolveBaseDirWithoutMarkers(t *testing.T) {
	sub := mkdir(t, t.TempDir(), "a", "b")
	if got := ResolveBaseDir(sub); got != sub {
		t.Errorf("ResolveBaseDir = %s, want start dir %s", got, sub)
	}
}

func TestResolveBaseDirFollowsRootFile(t *testing.T) {
	shared := t.TempDir()
	bench := t.TempDir()
	if err := os.WriteFile(filepath.Join(bench, rootFile), []byte(shared+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	sub := mkdir(t, bench, "today")

	if got := ResolveBaseDir(sub); got != shared {
		t.Errorf("ResolveBaseDir = %s, want %s", got, shared)
	}
}

func TestResolveBaseDirRelativeRootFile(t *testing.T) {
	bench := t.TempDir()
	if err := os.WriteFile(filepath.Join(bench, rootFile), []byte("../lab"), 0644); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(filepath.Dir(bench), "lab")
	if got := ResolveBaseDir(bench); got != want {
		t.Errorf("ResolveBaseDir = %s, want %s", got, want)
	}
}

func TestResolveBaseDirIgnoresEmptyRootFile(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, rootFile), []byte("  \n"), 0644)
	if got := ResolveBaseDir(dir); got != dir {
		t.Errorf("ResolveBaseDir = %s, want %s", got, dir)
	}
}
