package docservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/starford/rowlight/internal/apperr"
	"github.com/starford/rowlight/internal/checksum"
	"github.com/starford/rowlight/internal/docservice"
	"github.com/starford/rowlight/internal/highlighter"
	"github.com/starford/rowlight/internal/testutil"
)

func TestNewService_CacheSizes(t *testing.T) {
	_, store := testutil.TestDocs(t)
	db := testutil.TestDB(t)
	hl := highlighter.New(highlighter.Options{}, nil)

	for _, size := range []int{-1, 0, 1, 256} {
		svc, err := docservice.NewService(store, db, hl, size)
		if err != nil {
			t.Fatalf("NewService(%d): %v", size, err)
		}
		if svc.Highlighter() != hl {
			t.Errorf("NewService(%d): highlighter not kept", size)
		}
	}
}

func TestCreateGetDocument(t *testing.T) {
	svc, _ := testutil.TestService(t, 0)
	ctx := context.Background()

	created, err := svc.CreateDocument(ctx, "people.html", []byte(testutil.PeopleTable))
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	if created.Title != "People" || created.Tables != 1 || created.Rows != 2 {
		t.Errorf("created = %+v", created)
	}

	got, err := svc.GetDocument(ctx, "people.html")
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if got.Checksum != checksum.Sum([]byte(testutil.PeopleTable)) {
		t.Errorf("checksum = %q", got.Checksum)
	}

	if _, err := svc.CreateDocument(ctx, "people.html", []byte("x")); !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Errorf("duplicate create: err = %v, want ErrAlreadyExists", err)
	}
	if _, err := svc.CreateDocument(ctx, "notes.txt", []byte("x")); !errors.Is(err, apperr.ErrInvalidRequest) {
		t.Errorf("non-document create: err = %v, want ErrInvalidRequest", err)
	}
	if _, err := svc.GetDocument(ctx, "missing.html"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing get: err = %v, want ErrNotFound", err)
	}
}

func TestUpdateDocument_OptimisticConcurrency(t *testing.T) {
	svc, _ := testutil.TestService(t, 0)
	ctx := context.Background()
	v1 := []byte(testutil.PeopleTable)
	_, _ = svc.CreateDocument(ctx, "p.html", v1)

	if _, err := svc.UpdateDocument(ctx, "p.html", []byte("<table></table>"), "stale"); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("stale update: err = %v, want ErrConflict", err)
	}
	updated, err := svc.UpdateDocument(ctx, "p.html", []byte("<title>v2</title>"), checksum.Sum(v1))
	if err != nil {
		t.Fatalf("UpdateDocument: %v", err)
	}
	if updated.Title != "v2" {
		t.Errorf("title = %q, want v2", updated.Title)
	}
	if _, err := svc.UpdateDocument(ctx, "missing.html", []byte("x"), ""); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing update: err = %v, want ErrNotFound", err)
	}
}

func TestListSearchDelete(t *testing.T) {
	svc, _ := testutil.TestService(t, 0)
	ctx := context.Background()
	_, _ = svc.CreateDocument(ctx, "people.html", []byte(testutil.PeopleTable))

	items, total, err := svc.ListDocuments(ctx, 10, 0, "")
	if err != nil || total != 1 || len(items) != 1 {
		t.Fatalf("ListDocuments = %+v, %d, %v", items, total, err)
	}

	results, err := svc.Search(ctx, "catherine", 10)
	if err != nil || len(results) != 1 {
		t.Fatalf("Search = %+v, %v", results, err)
	}

	if err := svc.DeleteDocument(ctx, "people.html"); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	results, _ = svc.Search(ctx, "catherine", 10)
	if len(results) != 0 {
		t.Errorf("deleted document still searchable: %+v", results)
	}
}

func TestHighlightDocument(t *testing.T) {
	svc, _ := testutil.TestService(t, 8)
	ctx := context.Background()
	_, _ = svc.CreateDocument(ctx, "people.html", []byte(testutil.PeopleTable))

	res, err := svc.HighlightDocument(ctx, "people.html", highlighter.Request{Query: "cat"})
	if err != nil {
		t.Fatalf("HighlightDocument: %v", err)
	}
	if res.MatchedRows != 1 || res.MatchedCells != 1 {
		t.Errorf("result = %+v", res)
	}

	again, _ := svc.HighlightDocument(ctx, "people.html", highlighter.Request{Query: " cat "})
	if again != res {
		t.Error("expected cached result for equivalent request")
	}

	other, _ := svc.HighlightDocument(ctx, "people.html", highlighter.Request{Query: "smith"})
	if other == res || other.MatchedCells != 1 {
		t.Errorf("different query should not hit the cache: %+v", other)
	}

	if _, err := svc.HighlightDocument(ctx, "missing.html", highlighter.Request{Query: "cat"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing: err = %v, want ErrNotFound", err)
	}
}

func TestHighlightDocument_CacheFollowsContent(t *testing.T) {
	svc, _ := testutil.TestService(t, 8)
	ctx := context.Background()
	_, _ = svc.CreateDocument(ctx, "p.html", []byte(testutil.PeopleTable))

	first, _ := svc.HighlightDocument(ctx, "p.html", highlighter.Request{Query: "cat"})
	_, _ = svc.UpdateDocument(ctx, "p.html", []byte(`<table><tr><td>no match</td></tr></table>`), "")
	second, err := svc.HighlightDocument(ctx, "p.html", highlighter.Request{Query: "cat"})
	if err != nil {
		t.Fatalf("HighlightDocument: %v", err)
	}
	if second == first || second.MatchedRows != 0 {
		t.Errorf("stale cached result after update: %+v", second)
	}
}

func TestHighlightHTML(t *testing.T) {
	svc, _ := testutil.TestService(t, 0)

	res, err := svc.HighlightHTML(context.Background(), `<table><tr><td>Catherine</td></tr></table>`, highlighter.Request{Query: "cat"})
	if err != nil {
		t.Fatalf("HighlightHTML: %v", err)
	}
	if res.MatchedRows != 1 {
		t.Errorf("result = %+v", res)
	}

	if _, err := svc.HighlightHTML(context.Background(), "  ", highlighter.Request{Query: "cat"}); !errors.Is(err, apperr.ErrInvalidRequest) {
		t.Errorf("empty html: err = %v, want ErrInvalidRequest", err)
	}
}
