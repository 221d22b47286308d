package domain

// SearchResponse represents the aggregated response from a multi-supplier search.
type SearchResponse struct {
	// Request echoes the normalized search parameters
	Request SearchRequest `json:"request"`

	// Metadata contains information about the search execution
	Metadata SearchMetadata `json:"metadata"`

	// Offers contains the merged offers after filtering and sorting
	Offers []NormalizedOffer `json:"offers"`
}

// SearchMetadata contains metadata about the search execution.
type SearchMetadata struct {
	// TotalResults is the total number of offers returned
	TotalResults int `json:"totalResults"`

	// SearchTimeMs is the total search duration in milliseconds
	SearchTimeMs int64 `json:"searchTimeMs"`

	// SuppliersQueried lists the suppliers that were asked
	SuppliersQueried []string `json:"suppliersQueried"`

	// SuppliersSucceeded lists the suppliers that answered, even with zero offers
	SuppliersSucceeded []string `json:"suppliersSucceeded"`

	// SuppliersFailed lists the suppliers that failed or timed out
	SuppliersFailed []string `json:"suppliersFailed"`

	// SuppliersSkipped lists the suppliers skipped because they were unavailable
	SuppliersSkipped []string `json:"suppliersSkipped"`

	// Shared is true when the result was shared with an identical in-flight search
	Shared bool `json:"shared"`
}

// SupplierResult is the outcome of one supplier's search.
type SupplierResult struct {
	Supplier   string
	Offers     []NormalizedOffer
	Error      error
	DurationMs int64
}

// IsSuccess returns true if the supplier search succeeded.
func (r *SupplierResult) IsSuccess() bool {
	return r.Error == nil
}
