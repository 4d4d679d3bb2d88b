package mont_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Sawyer-Powell/mont"
)

func TestInitAndOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".tasks")

	s, err := mont.Init(dir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if s == nil {
		t.Fatal("expected non-nil store")
	}

	s, err = mont.Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if s.Dir() != dir {
		t.Errorf("Dir returned %s, expected %s", s.Dir(), dir)
	}
}

func TestPublicRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".tasks")
	s, err := mont.Init(dir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	id, _, err := s.Insert(mont.Task{ID: "first-step", Title: "First step", Kind: mont.KindTask})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if id != "first-step" {
		t.Errorf("Insert returned id %s, expected first-step", id)
	}
	if _, err := os.Stat(filepath.Join(dir, "first-step.md")); err != nil {
		t.Errorf("expected record file on disk: %v", err)
	}

	g, err := s.Graph()
	if err != nil {
		t.Fatalf("Graph failed: %v", err)
	}
	task, ok := g.Get("first-step")
	if !ok {
		t.Fatal("expected first-step in graph")
	}
	if task.Kind != mont.KindTask {
		t.Errorf("got kind %s, expected %s", task.Kind, mont.KindTask)
	}
}
