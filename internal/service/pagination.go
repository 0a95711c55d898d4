package service

import "github.com/carson-networks/ledger-server/internal/apperror"

// PageSize is the fixed number of items per page.
const PageSize = 10

// PageMeta describes where a page sits in the full result set.
type PageMeta struct {
	TotalPage   int
	CurrentPage int
}

// pageOffset converts a 1-indexed page number into a row offset.
func pageOffset(page int) (int, error) {
	if page < 1 {
		return 0, apperror.Validation("page must be a positive number",
			apperror.FieldError{Field: "page", Message: "page must be greater than or equal to 1"})
	}
	return (page - 1) * PageSize, nil
}

func newPageMeta(count int64, page int) PageMeta {
	return PageMeta{
		TotalPage:   int((count + PageSize - 1) / PageSize),
		CurrentPage: page,
	}
}
