package request

import (
	"math"
	"net/url"
	"strconv"

	"planetarium-booking/pkg/utils"
)

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"page_size" validate:"min=1"`
}

func (p PaginatedRequest) Offset() int {
	return utils.CalculateOffset(p.Page, p.Limit())
}

func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return 5
	}
	return p.PerPage
}

// ParsePagination reads ?page= and ?page_size=. A malformed page is an error,
// a malformed or oversized page_size falls back to the defaults.
func ParsePagination(query url.Values, cfg utils.PaginationConfig) (PaginatedRequest, map[string]string) {
	req := PaginatedRequest{Page: 1, PerPage: cfg.PageSize}

	requested := utils.ParseInt(query.Get("page_size"), cfg.PageSize)
	req.PerPage = utils.ClampPageSize(requested, cfg.PageSize, cfg.MaxPageSize)

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		// the offset (page-1)*limit must stay representable
		if err != nil || page < 1 || page > math.MaxInt/req.Limit() {
			return req, map[string]string{"page": "Must be a positive integer"}
		}
		req.Page = page
	}

	return req, nil
}
