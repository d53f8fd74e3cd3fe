package repository

// Paginate returns the 1-based page of items with the given page size.
// An out-of-range page clamps to the last valid page instead of coming
// back empty; a non-positive pageSize disables paging and returns the
// whole slice. The dataset sizes here are dozens of rows, so slicing an
// already-loaded list is deliberate.
func Paginate[T any](items []T, pageSize, page int) []T {
	if pageSize <= 0 || len(items) == 0 {
		return items
	}
	last := (len(items) + pageSize - 1) / pageSize
	if page < 1 {
		page = 1
	}
	if page > last {
		page = last
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
