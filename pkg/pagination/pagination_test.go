package pagination

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		in   PaginationParams
		want PaginationParams
	}{
		{"zero values", PaginationParams{}, PaginationParams{Page: 1, PerPage: DefaultPerPage}},
		{"negative page", PaginationParams{Page: -3, PerPage: 10}, PaginationParams{Page: 1, PerPage: 10}},
		{"too large", PaginationParams{Page: 2, PerPage: 500}, PaginationParams{Page: 2, PerPage: MaxPerPage}},
		{"valid", PaginationParams{Page: 4, PerPage: 25}, PaginationParams{Page: 4, PerPage: 25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Validate()
			if p != tt.want {
				t.Errorf("Validate() = %+v, want %+v", p, tt.want)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := &PaginationParams{Page: 3, PerPage: 20}
	if got := p.Offset(); got != 40 {
		t.Errorf("Offset() = %d, want 40", got)
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 25)
	if p.TotalPages != 3 || !p.HasNext || !p.HasPrev {
		t.Errorf("unexpected pagination %+v", p)
	}

	last := NewPagination(3, 10, 25)
	if last.HasNext {
		t.Error("last page should not have a next page")
	}

	empty := NewPagination(1, 0, 0)
	if empty.TotalPages != 0 || empty.HasNext || empty.PerPage != DefaultPerPage {
		t.Errorf("unexpected empty pagination %+v", empty)
	}
}

func TestNewPaginatedResultNilItems(t *testing.T) {
	r := NewPaginatedResult[int](nil, NewPagination(1, 10, 0))
	if r.Items == nil || len(r.Items) != 0 {
		t.Errorf("expected an empty non-nil slice, got %#v", r.Items)
	}
}
