package dto

// MaxBulkItems bounds the status/archive endpoints; CSV import is only
// limited by the upload size at the transport boundary.
const MaxBulkItems = 50

// Ids travel as strings on the wire; an unparseable id becomes a skip
// entry, never a request failure.
type BulkStatusRequest struct {
	IDs    []string `json:"ids" validate:"required,max=50"`
	Status string   `json:"status" validate:"required"`
	Note   *string  `json:"note,omitempty"`
}

type BulkArchiveRequest struct {
	IDs []string `json:"ids" validate:"required,max=50"`
}
