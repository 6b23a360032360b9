package shared

import "strconv"

// PageInfo describes one page of an ordered result set. Pages are 1-based.
type PageInfo struct {
	Number     int `json:"number"`
	NumPages   int `json:"numPages"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
}

func (p PageInfo) HasNext() bool {
	return p.Number < p.NumPages
}

func (p PageInfo) HasPrev() bool {
	return p.Number > 1
}

// Offset is the index of the page's first item in the full result set.
func (p PageInfo) Offset() int {
	return (p.Number - 1) * p.PageSize
}

// Paginate resolves a requested page number against a total count.
// Out-of-range numbers clamp to the nearest valid page. An empty result set
// still yields a single (empty) page.
func Paginate(totalCount, pageSize, number int) PageInfo {
	numPages := (totalCount + pageSize - 1) / pageSize
	if numPages < 1 {
		numPages = 1
	}

	if number < 1 {
		number = 1
	} else if number > numPages {
		number = numPages
	}

	return PageInfo{
		Number:     number,
		NumPages:   numPages,
		PageSize:   pageSize,
		TotalCount: totalCount,
	}
}

// ParsePageNumber reads a page query parameter. Missing or malformed values
// fall back to the first page.
func ParsePageNumber(raw string) int {
	if raw == "" {
		return 1
	}

	number, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}

	return number
}
