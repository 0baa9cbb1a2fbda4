package params

// QueryParams carries common pagination query parameters.
type QueryParams struct {
	PageNumber int `query:"page_number"`
	PageSize   int `query:"page_size"`
}

// Normalize clamps pagination values to sane bounds.
func (p *QueryParams) Normalize() {
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
}
