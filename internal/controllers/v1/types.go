package v1

type URIID struct {
	ID uint64 `uri:"id" binding:"required"` // ID of the resource
}

// Pagination contains information about the pagination of list responses.
type Pagination struct {
	Count  int   `json:"count"`  // The amount of records returned in this response
	Offset uint  `json:"offset"` // The offset for the first record returned
	Limit  int   `json:"limit"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total"`  // The total number of resources matching the query
}
