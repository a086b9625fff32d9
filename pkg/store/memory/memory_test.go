package memory

import (
	"testing"

	"github.com/aidirectory/aidirectory/pkg/entities"
	"github.com/aidirectory/aidirectory/pkg/errors"
)

func sample(slug, name string) *entities.Entity {
	e := entities.NewEntity(slug, entities.KindCompany)
	e.Fields[entities.FieldName] = name
	e.Fields[entities.FieldWebsite] = "https://" + slug + ".ai"
	return e
}

func TestCommitAndGet(t *testing.T) {
	s := New()

	if err := s.Commit(sample("acme", "Acme")); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	got, err := s.Entity("acme")
	if err != nil {
		t.Fatalf("Entity: %v", err)
	}
	if got.Fields[entities.FieldName] != "Acme" {
		t.Errorf("name = %v, want Acme", got.Fields[entities.FieldName])
	}

	if _, err := s.Entity("missing"); !errors.IsNotFound(err) {
		t.Errorf("missing slug should return not-found, got %v", err)
	}
}

func TestReadsAreIsolated(t *testing.T) {
	s := New()
	if err := s.Commit(sample("acme", "Acme")); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	got, err := s.Entity("acme")
	if err != nil {
		t.Fatalf("Entity: %v", err)
	}
	got.Fields[entities.FieldName] = "Mutated"

	again, err := s.Entity("acme")
	if err != nil {
		t.Fatalf("Entity: %v", err)
	}
	if again.Fields[entities.FieldName] != "Acme" {
		t.Error("mutating a returned entity leaked into the store")
	}
}

func TestListSorted(t *testing.T) {
	s := New(WithEntities(
		sample("zeta", "Zeta"),
		sample("acme", "Acme"),
		sample("mid", "Mid"),
	))

	list, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	for i, want := range []string{"acme", "mid", "zeta"} {
		if list[i].Slug != want {
			t.Errorf("list[%d] = %q, want %q", i, list[i].Slug, want)
		}
	}
}

func TestReadOnly(t *testing.T) {
	s := New(WithReadOnly(), WithEntities(sample("acme", "Acme")))

	err := s.Commit(sample("acme", "Changed"))
	if !errors.Is(err, errors.ErrReadOnly) {
		t.Errorf("err = %v, want ErrReadOnly", err)
	}
}

func TestSnapshotIndexes(t *testing.T) {
	s := New(WithEntities(sample("acme", "Acme")))

	ix, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	if !ix.Slugs["acme"] {
		t.Error("slug missing from snapshot")
	}
	if ix.Domains["acme.ai"] != "acme" {
		t.Errorf("domain index = %v, want acme.ai -> acme", ix.Domains)
	}
	if ix.Names["acme"] != "acme" {
		t.Errorf("name index = %v, want acme -> acme", ix.Names)
	}
}

func TestCommitRejectsEmptySlug(t *testing.T) {
	s := New()
	if err := s.Commit(entities.NewEntity("", entities.KindCompany)); err == nil {
		t.Error("commit without slug should fail")
	}
}
