package parser

import (
	"strings"
	"testing"

	"github.com/dr-yst/org-x/internal/org"
)

func mustParse(t *testing.T, content string, opts ...Option) *org.Document {
	t.Helper()
	doc, err := Parse(content, "", opts...)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func TestParseTitleKeyword(t *testing.T) {
	doc := mustParse(t, "#+TITLE: T\n* Headline\n")
	if doc.Title != "T" {
		t.Fatalf("title = %q, want %q", doc.Title, "T")
	}
	if len(doc.Headlines) != 1 {
		t.Fatalf("headlines = %d, want 1", len(doc.Headlines))
	}
	if got := doc.Headlines[0].Title.Raw; got != "Headline" {
		t.Fatalf("headline title = %q", got)
	}
}

func TestParseDefaultTitle(t *testing.T) {
	doc := mustParse(t, "* Only a headline\n")
	if doc.Title != org.DefaultTitle {
		t.Fatalf("title = %q, want default", doc.Title)
	}
}

func TestParseFiletags(t *testing.T) {
	doc := mustParse(t, "#+FILETAGS: :work:project:\n")
	want := []string{"work", "project"}
	if len(doc.Filetags) != len(want) {
		t.Fatalf("filetags = %v, want %v", doc.Filetags, want)
	}
	for i, tag := range want {
		if doc.Filetags[i] != tag {
			t.Fatalf("filetags = %v, want %v", doc.Filetags, want)
		}
	}
}

func TestParseFiletagsMissingColon(t *testing.T) {
	for _, value := range []string{":work:project", "work:project:", "work"} {
		doc := mustParse(t, "#+FILETAGS: "+value+"\n")
		if len(doc.Filetags) != 0 {
			t.Fatalf("filetags for %q = %v, want none", value, doc.Filetags)
		}
	}
}

func TestParseCategory(t *testing.T) {
	doc := mustParse(t, "#+CATEGORY: inbox\n* A\n")
	if doc.Category != "inbox" {
		t.Fatalf("category = %q", doc.Category)
	}
	if got := doc.Headlines[0].Category(doc); got != "inbox" {
		t.Fatalf("headline category = %q, want inherited %q", got, "inbox")
	}
}

func TestCategoryPropertyOverridesDocument(t *testing.T) {
	content := "#+CATEGORY: inbox\n" +
		"* A\n" +
		":PROPERTIES:\n" +
		":CATEGORY: projects\n" +
		":END:\n"
	doc := mustParse(t, content)
	if got := doc.Headlines[0].Category(doc); got != "projects" {
		t.Fatalf("headline category = %q, want %q", got, "projects")
	}
}

func TestTodoDeclaration(t *testing.T) {
	content := "#+TODO: TODO(t) NEXT(n) | DONE(d) CANCELLED(c)\n" +
		"* NEXT Do the thing\n" +
		"* CANCELLED Old idea\n" +
		"* WAITING Not a keyword here\n"
	doc := mustParse(t, content)

	if kw := doc.Headlines[0].Title.TodoKeyword; kw != "NEXT" {
		t.Fatalf("keyword = %q, want NEXT", kw)
	}
	if kw := doc.Headlines[1].Title.TodoKeyword; kw != "CANCELLED" {
		t.Fatalf("keyword = %q, want CANCELLED", kw)
	}
	// WAITING was not declared, so it stays part of the title.
	if kw := doc.Headlines[2].Title.TodoKeyword; kw != "" {
		t.Fatalf("keyword = %q, want none", kw)
	}
	if got := doc.Headlines[2].Title.Raw; got != "WAITING Not a keyword here" {
		t.Fatalf("title = %q", got)
	}

	st := doc.Headlines[1].Status(doc.TodoConfig)
	if st == nil || !st.IsClosed() {
		t.Fatalf("CANCELLED should resolve to a closed state, got %+v", st)
	}
}

func TestTodoDeclarationWithoutPipe(t *testing.T) {
	doc := mustParse(t, "#+TODO: TODO NEXT DONE\n* DONE X\n")
	// Without a pipe all declared keywords are active.
	st := doc.Headlines[0].Status(doc.TodoConfig)
	if st == nil || !st.IsActive() {
		t.Fatalf("DONE should be active without a pipe, got %+v", st)
	}
}

func TestTodoKeywordOverrideWins(t *testing.T) {
	content := "#+TODO: FOO | BAR\n* WIP X\n* FOO Y\n"
	doc := mustParse(t, content, WithTodoKeywords([]string{"WIP"}, []string{"SHIPPED"}))
	if kw := doc.Headlines[0].Title.TodoKeyword; kw != "WIP" {
		t.Fatalf("keyword = %q, want WIP", kw)
	}
	if kw := doc.Headlines[1].Title.TodoKeyword; kw != "" {
		t.Fatalf("in-file declaration should be ignored under override, got %q", kw)
	}
}

func TestDefaultKeywords(t *testing.T) {
	doc := mustParse(t, "* TODO A\n* DONE B\n* Plain C\n")
	if !doc.Headlines[0].IsTask() {
		t.Fatal("TODO headline should be a task")
	}
	if !doc.Headlines[1].IsTask() {
		t.Fatal("DONE headline should be a task")
	}
	if !doc.Headlines[2].IsNote() {
		t.Fatal("plain headline should be a note")
	}
}

func TestPriorityAndTags(t *testing.T) {
	doc := mustParse(t, "* TODO [#A] Ship it :urgent:release:\n")
	title := doc.Headlines[0].Title
	if title.TodoKeyword != "TODO" {
		t.Fatalf("keyword = %q", title.TodoKeyword)
	}
	if title.Priority != 'A' {
		t.Fatalf("priority = %q", title.Priority)
	}
	if title.Raw != "Ship it" {
		t.Fatalf("raw = %q", title.Raw)
	}
	if len(title.Tags) != 2 || title.Tags[0] != "urgent" || title.Tags[1] != "release" {
		t.Fatalf("tags = %v", title.Tags)
	}
}

func TestPlanningLine(t *testing.T) {
	content := "* TODO Review\n" +
		"DEADLINE: <2026-09-01 Tue> SCHEDULED: <2026-08-30 Sun 09:00>\n" +
		"Body text.\n"
	doc := mustParse(t, content)
	p := doc.Headlines[0].Title.Planning
	if p == nil {
		t.Fatal("planning not parsed")
	}
	if p.Deadline == nil || p.Deadline.Start.Day != 1 {
		t.Fatalf("deadline = %+v", p.Deadline)
	}
	if p.Scheduled == nil || !p.Scheduled.Start.HasTime || p.Scheduled.Start.Hour != 9 {
		t.Fatalf("scheduled = %+v", p.Scheduled)
	}
	if !strings.Contains(doc.Headlines[0].Content, "Body text.") {
		t.Fatalf("content = %q", doc.Headlines[0].Content)
	}
	if strings.Contains(doc.Headlines[0].Content, "DEADLINE") {
		t.Fatalf("planning leaked into content: %q", doc.Headlines[0].Content)
	}
}

func TestHierarchySequence(t *testing.T) {
	content := "* A\n** B\n*** C\n** D\n* E\n"
	doc := mustParse(t, content)

	if len(doc.Headlines) != 2 {
		t.Fatalf("roots = %d, want 2", len(doc.Headlines))
	}
	a, e := doc.Headlines[0], doc.Headlines[1]
	if a.Title.Raw != "A" || e.Title.Raw != "E" {
		t.Fatalf("roots = %q, %q", a.Title.Raw, e.Title.Raw)
	}
	if len(a.Children) != 2 {
		t.Fatalf("A children = %d, want 2", len(a.Children))
	}
	if a.Children[0].Title.Raw != "B" || a.Children[1].Title.Raw != "D" {
		t.Fatalf("A children = %q, %q", a.Children[0].Title.Raw, a.Children[1].Title.Raw)
	}
	if len(a.Children[0].Children) != 1 || a.Children[0].Children[0].Title.Raw != "C" {
		t.Fatalf("B children wrong")
	}
}

func TestHierarchyNonContiguousLevels(t *testing.T) {
	doc := mustParse(t, "* A\n*** B\n")
	if len(doc.Headlines) != 1 {
		t.Fatalf("roots = %d, want 1", len(doc.Headlines))
	}
	a := doc.Headlines[0]
	if len(a.Children) != 1 || a.Children[0].Title.Raw != "B" {
		t.Fatalf("level-3 headline should nest under level-1 parent")
	}
}

func TestHeadlineIDsPositional(t *testing.T) {
	doc, err := Parse("* A\n** B\n** C\n* D\n", "/tmp/pos.org")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	wantSuffixes := map[string]string{
		"A": "#0",
		"B": "#0.0",
		"C": "#0.1",
		"D": "#1",
	}
	doc.Walk(func(h *org.Headline) {
		want := doc.ID + wantSuffixes[h.Title.Raw]
		if h.ID != want {
			t.Fatalf("%s id = %q, want %q", h.Title.Raw, h.ID, want)
		}
		if h.DocumentID != doc.ID {
			t.Fatalf("%s document id = %q", h.Title.Raw, h.DocumentID)
		}
	})
}

func TestDocumentIDStable(t *testing.T) {
	a := DocumentID("/tmp/x/notes.org")
	b := DocumentID("/tmp/x/notes.org")
	if a != b {
		t.Fatalf("ids differ: %q vs %q", a, b)
	}
	if c := DocumentID("/tmp/x/other.org"); c == a {
		t.Fatal("different paths should yield different ids")
	}
}

func TestReparseIdempotent(t *testing.T) {
	content := "#+TITLE: Stable\n* A\n** B\nbody\n"
	first, err := Parse(content, "/tmp/stable.org")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	second, err := Parse(content, "/tmp/stable.org")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("document ids differ: %q vs %q", first.ID, second.ID)
	}
	if first.Etag != second.Etag {
		t.Fatalf("document etags differ")
	}
	if first.Headlines[0].Etag != second.Headlines[0].Etag {
		t.Fatalf("headline etags differ")
	}
}

func TestEtagPropagatesFromDescendants(t *testing.T) {
	base := "* Root\n** Child\n*** Grandchild\noriginal\n* Other\n"
	changed := "* Root\n** Child\n*** Grandchild\nmodified\n* Other\n"

	before := mustParse(t, base)
	after := mustParse(t, changed)

	if before.Headlines[0].Etag == after.Headlines[0].Etag {
		t.Fatal("root etag should change when grandchild content changes")
	}
	if before.Headlines[0].Children[0].Etag == after.Headlines[0].Children[0].Etag {
		t.Fatal("child etag should change when its subtree changes")
	}
	if before.Headlines[1].Etag != after.Headlines[1].Etag {
		t.Fatal("untouched sibling etag should be stable")
	}
}

func TestPropertyDrawer(t *testing.T) {
	content := "* A\n" +
		":PROPERTIES:\n" +
		":ID: abc-123\n" +
		":EFFORT: 2h\n" +
		":END:\n" +
		"body\n"
	doc := mustParse(t, content)
	h := doc.Headlines[0]
	if h.Property("ID") != "abc-123" || h.Property("EFFORT") != "2h" {
		t.Fatalf("properties = %v", h.Properties)
	}
	if strings.Contains(h.Content, "PROPERTIES") {
		t.Fatalf("drawer leaked into content: %q", h.Content)
	}
}

func TestCustomPropertiesPromoted(t *testing.T) {
	content := "* A\n:PROPERTIES:\n:ASSIGNEE: kim\n:END:\n"
	plain := mustParse(t, content)
	promoted := mustParse(t, content, WithCustomProperties([]string{"ASSIGNEE"}))

	if plain.Headlines[0].Etag == promoted.Headlines[0].Etag {
		// Promotion adds the property to the title fingerprint.
		t.Fatal("promoted property should alter the headline etag")
	}
	if got := promoted.Headlines[0].Title.Property("ASSIGNEE"); got != "kim" {
		t.Fatalf("title property = %q", got)
	}
}

func TestPathlessDocumentsGetUniqueIDs(t *testing.T) {
	a := mustParse(t, "* A\n")
	b := mustParse(t, "* A\n")
	if a.ID == b.ID {
		t.Fatal("pathless documents should get distinct generated ids")
	}
}

func TestParsePermissive(t *testing.T) {
	// Unterminated drawer, stray keywords, raw gibberish: never an error.
	content := "#+TITLE\n* A\n:PROPERTIES:\n:KEY: v\nno end marker\n"
	doc := mustParse(t, content)
	if len(doc.Headlines) != 1 {
		t.Fatalf("headlines = %d", len(doc.Headlines))
	}
}
