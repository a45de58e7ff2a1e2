package metadata

import (
	"testing"

	"github.com/dr-yst/org-x/internal/parser"
)

func TestTagAggregation(t *testing.T) {
	svc := NewService()

	doc, _ := parser.Parse("* A :work:\n* B :work:home:\n", "/tmp/tags.org")
	svc.Register(doc)

	tags := svc.Tags()
	if len(tags) != 2 {
		t.Fatalf("tags = %+v", tags)
	}
	if tags[0].Name != "work" || tags[0].Count != 2 {
		t.Fatalf("most frequent = %+v", tags[0])
	}
	if tags[1].Name != "home" || tags[1].Count != 1 {
		t.Fatalf("tags = %+v", tags)
	}
}

func TestFiletagsApplyToEveryHeadline(t *testing.T) {
	svc := NewService()

	doc, _ := parser.Parse("#+FILETAGS: :shared:\n* A\n* B :shared:\n", "/tmp/ft.org")
	svc.Register(doc)

	tags := svc.Tags()
	// The tag counts once per headline even when a headline repeats it.
	if len(tags) != 1 || tags[0].Name != "shared" || tags[0].Count != 2 {
		t.Fatalf("tags = %+v", tags)
	}
}

func TestReRegisterDoesNotInflate(t *testing.T) {
	svc := NewService()

	for i := 0; i < 3; i++ {
		doc, _ := parser.Parse("* A :x:\n", "/tmp/re.org")
		svc.Register(doc)
	}

	tags := svc.Tags()
	if len(tags) != 1 || tags[0].Count != 1 {
		t.Fatalf("re-registration inflated counts: %+v", tags)
	}
}

func TestCategoryAggregation(t *testing.T) {
	svc := NewService()

	doc, _ := parser.Parse("#+CATEGORY: inbox\n* A\n* B\n:PROPERTIES:\n:CATEGORY: work\n:END:\n", "/tmp/cat.org")
	svc.Register(doc)

	cats := svc.Categories()
	if len(cats) != 2 {
		t.Fatalf("categories = %+v", cats)
	}
	byName := map[string]int{}
	for _, c := range cats {
		byName[c.Name] = c.Count
	}
	if byName["inbox"] != 1 || byName["work"] != 1 {
		t.Fatalf("categories = %+v", cats)
	}
}

func TestRemove(t *testing.T) {
	svc := NewService()

	doc, _ := parser.Parse("* A :x:\n", "/tmp/rm.org")
	svc.Register(doc)
	svc.Remove(doc.ID)
	svc.Remove(doc.ID) // second removal is a no-op

	if tags := svc.Tags(); len(tags) != 0 {
		t.Fatalf("tags after remove = %+v", tags)
	}
}

func TestHeadlinesWithTag(t *testing.T) {
	svc := NewService()

	doc, _ := parser.Parse("* A :x:\n* B\n** C :x:\n", "/tmp/ht.org")
	svc.Register(doc)

	refs := svc.HeadlinesWithTag("x")
	ids := refs[doc.ID]
	if len(ids) != 2 {
		t.Fatalf("refs = %+v", refs)
	}
	if refs := svc.HeadlinesWithTag("absent"); len(refs) != 0 {
		t.Fatalf("absent tag refs = %+v", refs)
	}
}
