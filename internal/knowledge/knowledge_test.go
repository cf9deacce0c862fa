package knowledge

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCatalog(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	doc := "Halkidiki has three peninsulas with sandy beaches.\n"
	if err := os.WriteFile(filepath.Join(dir, "halkidiki.md"), []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	catalog := `sources:
  - name: halkidiki_guide
    description: Travel notes for Halkidiki
    file: halkidiki.md
`
	path := filepath.Join(dir, "knowledge.yaml")
	if err := os.WriteFile(path, []byte(catalog), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAndLookup(t *testing.T) {
	c, err := Load(writeCatalog(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	names := c.SourceNames()
	if len(names) != 1 || names[0] != "halkidiki_guide" {
		t.Errorf("SourceNames = %v, want [halkidiki_guide]", names)
	}
	if !c.Has("halkidiki_guide") {
		t.Error("Expected Has to find halkidiki_guide")
	}

	content, err := c.Lookup("halkidiki_guide")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if content == "" {
		t.Error("Expected non-empty content")
	}

	// Cached second read returns the same content.
	again, err := c.Lookup("halkidiki_guide")
	if err != nil || again != content {
		t.Errorf("Cached lookup mismatch: %q vs %q (err %v)", again, content, err)
	}
}

func TestLookupUnknownSource(t *testing.T) {
	c, err := Load(writeCatalog(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := c.Lookup("atlantis_guide"); err == nil {
		t.Error("Expected error for unknown source")
	}
}

func TestLoadRejectsBadCatalog(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "bad.yaml")
	bad := `sources:
  - name: one
    file: one.md
  - name: one
    file: two.md
`
	if err := os.WriteFile(path, []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected error for duplicate source names")
	}

	noFile := filepath.Join(dir, "nofile.yaml")
	if err := os.WriteFile(noFile, []byte("sources:\n  - name: x\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(noFile); err == nil {
		t.Error("Expected error for source without file")
	}
}

func TestEmptyCatalog(t *testing.T) {
	c := Empty()
	if len(c.SourceNames()) != 0 {
		t.Error("Expected no sources")
	}
	if _, err := c.Lookup("anything"); err == nil {
		t.Error("Expected lookup error on empty catalog")
	}
}
