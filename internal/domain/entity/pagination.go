package entity

// SortOrder is the ordering of list endpoints.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// DefaultBatchSize is the page size used when fetching every page of a list.
// Blockfrost does not serve more than 100 items per page.
const DefaultBatchSize = 100

// Pagination selects a single page of a list endpoint. Zero fields are omitted.
type Pagination struct {
	Count int
	Page  int
	Order SortOrder
}

// Query returns the pagination as flat query parameters.
func (p *Pagination) Query() map[string]any {
	if p == nil {
		return nil
	}
	q := make(map[string]any, 3)
	if p.Count > 0 {
		q["count"] = p.Count
	}
	if p.Page > 0 {
		q["page"] = p.Page
	}
	if p.Order != "" {
		q["order"] = string(p.Order)
	}
	return q
}

// AllPagesOptions drives exhaustive retrieval of a list endpoint.
type AllPagesOptions struct {
	// BatchSize is the page size; DefaultBatchSize when zero.
	BatchSize int
	Order     SortOrder
	// MaxPages stops iteration after that many pages; 0 means no limit.
	MaxPages int
}

// WithDefaults returns a copy with unset fields filled in.
func (o *AllPagesOptions) WithDefaults() AllPagesOptions {
	var out AllPagesOptions
	if o != nil {
		out = *o
	}
	if out.BatchSize <= 0 {
		out.BatchSize = DefaultBatchSize
	}
	if out.Order == "" {
		out.Order = OrderAsc
	}
	return out
}

// PageRequest returns the pagination of the n-th page (1-based).
func (o AllPagesOptions) PageRequest(n int) Pagination {
	return Pagination{Count: o.BatchSize, Page: n, Order: o.Order}
}
