package shared

// Pagination defaults applied when a list request omits page or limit.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Sort directions accepted by the list query builder.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)
