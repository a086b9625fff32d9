package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aidirectory/aidirectory/pkg/entities"
	"github.com/aidirectory/aidirectory/pkg/errors"
)

func sample(slug string) *entities.Entity {
	e := entities.NewEntity(slug, entities.KindCompany)
	e.Fields[entities.FieldName] = "Acme"
	e.Fields[entities.FieldWebsite] = "https://acme.ai"
	e.Provenance[entities.FieldName] = entities.Provenance{
		Source:     "wikidata",
		Tier:       entities.TierAuthoritative,
		Confidence: 0.95,
	}
	return e
}

func TestCommitWritesDocument(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := s.Commit(sample("acme")); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	path := filepath.Join(dir, "acme.yaml")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("entity document not written: %v", err)
	}

	// No temp files may survive a successful commit.
	matches, _ := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestReopenRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Commit(sample("acme")); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}

	got, err := reopened.Entity("acme")
	if err != nil {
		t.Fatalf("Entity: %v", err)
	}
	if got.Fields[entities.FieldName] != "Acme" {
		t.Errorf("name = %v, want Acme", got.Fields[entities.FieldName])
	}

	prov, ok := got.Provenance[entities.FieldName]
	if !ok {
		t.Fatal("provenance lost in round trip")
	}
	if prov.Tier != entities.TierAuthoritative || prov.Source != "wikidata" {
		t.Errorf("provenance = %+v", prov)
	}
}

func TestOpenSkipsCorruptFiles(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, []byte("slug: good\nkind: company\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("slug: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if _, err := s.Entity("good"); err != nil {
		t.Errorf("good entity should load: %v", err)
	}
	if _, err := s.Entity("bad"); !errors.IsNotFound(err) {
		t.Errorf("corrupt entity should be skipped, got %v", err)
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "entities")

	if _, err := Open(dir); err != nil {
		t.Fatalf("Open should create missing directories: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("directory not created: %v", err)
	}
}
