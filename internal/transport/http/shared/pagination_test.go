package shared

import (
	"net/http/httptest"
	"testing"
)

func TestParsePaginationDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/employees", nil)

	p := ParsePagination(r, 10, 100)
	if p.Page != 1 || p.Limit != 10 {
		t.Fatalf("unexpected defaults: %+v", p)
	}
	if p.Offset() != 0 {
		t.Fatalf("expected offset 0, got %d", p.Offset())
	}
}

func TestParsePagination(t *testing.T) {
	r := httptest.NewRequest("GET", "/employees?page=3&limit=20", nil)

	p := ParsePagination(r, 10, 100)
	if p.Page != 3 || p.Limit != 20 {
		t.Fatalf("unexpected pagination: %+v", p)
	}
	if p.Offset() != 40 {
		t.Fatalf("expected offset 40, got %d", p.Offset())
	}
}

func TestParsePaginationClampsAndIgnoresGarbage(t *testing.T) {
	r := httptest.NewRequest("GET", "/employees?page=-2&limit=9999", nil)

	p := ParsePagination(r, 10, 100)
	if p.Page != 1 {
		t.Fatalf("expected page 1, got %d", p.Page)
	}
	if p.Limit != 100 {
		t.Fatalf("expected limit clamped to 100, got %d", p.Limit)
	}
}

func TestPageMeta(t *testing.T) {
	p := Pagination{Page: 2, Limit: 10}

	meta := p.Meta(25)
	if meta.Total != 25 || meta.Pages != 3 {
		t.Fatalf("unexpected meta: %+v", meta)
	}

	meta = p.Meta(0)
	if meta.Pages != 0 {
		t.Fatalf("expected 0 pages for empty result, got %d", meta.Pages)
	}

	meta = p.Meta(30)
	if meta.Pages != 3 {
		t.Fatalf("expected 3 pages, got %d", meta.Pages)
	}
}
