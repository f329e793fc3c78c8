package pagination

import (
	"testing"
	"time"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page := Paginate(items, &PaginationParams{Page: 2, PerPage: 2})
	if len(page.Items) != 2 || page.Items[0] != 3 {
		t.Fatalf("unexpected page %v", page.Items)
	}
	if page.Pagination.TotalPages != 3 || !page.Pagination.HasNext || !page.Pagination.HasPrev {
		t.Fatalf("unexpected pagination %+v", page.Pagination)
	}

	past := Paginate(items, &PaginationParams{Page: 9, PerPage: 2})
	if len(past.Items) != 0 || past.Pagination.Total != 5 {
		t.Fatalf("page past the end should be empty, got %v", past.Items)
	}

	def := Paginate(items, nil)
	if len(def.Items) != 5 || def.Pagination.PerPage != 15 {
		t.Fatalf("default pagination %+v", def.Pagination)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	p := &CursorParams{Cursor: EncodeCursor("abc", at)}
	c, err := p.DecodeCursor()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.ID != "abc" || !c.CreatedAt.Equal(at) {
		t.Fatalf("cursor = %+v", c)
	}

	if _, err := (&CursorParams{Cursor: "%%%"}).DecodeCursor(); err == nil {
		t.Fatal("expected invalid cursor error")
	}
}

func TestNewCursorPagination(t *testing.T) {
	type item struct{ id string }
	id := func(i item) string { return i.id }
	at := func(item) time.Time { return time.Time{} }

	page, trimmed := NewCursorPagination([]item{{"e"}, {"d"}, {"c"}}, 2, CursorDirectionNext, false, id, at)
	if len(trimmed) != 2 || !page.HasNext || page.NextCursor == nil {
		t.Fatalf("unexpected cursor page %+v", page)
	}
	if page.HasPrev || page.PrevCursor != nil {
		t.Fatal("the first page has no previous page")
	}

	page, trimmed = NewCursorPagination([]item{{"b"}, {"a"}}, 2, CursorDirectionNext, true, id, at)
	if page.HasNext || page.NextCursor != nil || !page.HasPrev || page.PrevCursor == nil {
		t.Fatalf("last page %+v", page)
	}
	if c, _ := (&CursorParams{Cursor: *page.PrevCursor}).DecodeCursor(); c.ID != "b" {
		t.Fatalf("prev cursor should point at the first item, got %+v", c)
	}
}

func TestNewCursorPaginationPrev(t *testing.T) {
	type item struct{ id string }
	id := func(i item) string { return i.id }
	at := func(item) time.Time { return time.Time{} }

	// The reverse query returns the rows after the cursor oldest first.
	page, trimmed := NewCursorPagination([]item{{"c"}, {"d"}, {"e"}}, 2, CursorDirectionPrev, true, id, at)
	if len(trimmed) != 2 || trimmed[0].id != "d" || trimmed[1].id != "c" {
		t.Fatalf("expected newest first, got %v", trimmed)
	}
	if !page.HasPrev || !page.HasNext || page.PrevCursor == nil || page.NextCursor == nil {
		t.Fatalf("unexpected page %+v", page)
	}

	page, trimmed = NewCursorPagination([]item{{"c"}}, 2, CursorDirectionPrev, true, id, at)
	if len(trimmed) != 1 || page.HasPrev || page.PrevCursor != nil {
		t.Fatalf("reaching the newest item should end prev paging, got %+v", page)
	}
}

func TestCursorParamsDirection(t *testing.T) {
	p := &CursorParams{Direction: "sideways"}
	p.Validate()
	if p.Direction != CursorDirectionNext || p.Limit != 15 {
		t.Fatalf("validate = %+v", p)
	}
}
