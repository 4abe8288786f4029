package listing

// windowSize is the maximum number of page buttons shown at once.
const windowSize = 5

// Page describes one rendered page of a list.
type Page struct {
	Number     int
	TotalPages int
	TotalItems int
	Start      int // 1-based index of the first visible item
	End        int // 1-based index of the last visible item
	Window     []int
}

func (p Page) HasPrev() bool { return p.Number > 1 }
func (p Page) HasNext() bool { return p.Number < p.TotalPages }
func (p Page) Prev() int     { return p.Number - 1 }
func (p Page) Next() int     { return p.Number + 1 }

// Normalize clamps a requested page number against the item count. Any
// out-of-range request falls back to page 1: changing the search or filter
// resets pagination even when the old page index no longer exists.
func Normalize(requested, totalItems int) int {
	totalPages := pageCount(totalItems)
	if requested < 1 || requested > totalPages {
		return 1
	}
	return requested
}

// Slice returns the items for the page plus its display metadata. bounds are
// computed on the already filtered and sorted input.
func Slice[T any](items []T, page int) ([]T, Page) {
	page = Normalize(page, len(items))
	totalPages := pageCount(len(items))

	start := (page - 1) * PageSize
	end := start + PageSize
	if end > len(items) {
		end = len(items)
	}

	meta := Page{
		Number:     page,
		TotalPages: totalPages,
		TotalItems: len(items),
		Start:      start + 1,
		End:        end,
		Window:     Window(page, totalPages),
	}
	if len(items) == 0 {
		meta.Start = 0
	}
	return items[start:end], meta
}

// Window computes the sliding run of visible page buttons. With five or
// fewer pages all are shown; otherwise a five-wide window is centered on
// the current page and clamped so it never starts before the first page or
// runs past the last.
func Window(current, totalPages int) []int {
	if totalPages < 1 {
		return nil
	}
	size := windowSize
	if totalPages < size {
		size = totalPages
	}

	start := current - size/2
	if start < 1 {
		start = 1
	}
	if start+size-1 > totalPages {
		start = totalPages - size + 1
	}

	window := make([]int, size)
	for i := range window {
		window[i] = start + i
	}
	return window
}

func pageCount(totalItems int) int {
	if totalItems == 0 {
		return 1
	}
	return (totalItems + PageSize - 1) / PageSize
}
