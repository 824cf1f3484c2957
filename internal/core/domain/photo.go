package domain

import "strconv"

// BatchOutcome summarises a photo batch.
type BatchOutcome string

// Batch outcomes.
const (
	// BatchComplete means every candidate was attached.
	BatchComplete BatchOutcome = "complete"

	// BatchPartial means some candidates were attached and some were not.
	BatchPartial BatchOutcome = "partial"

	// BatchFailed means nothing was attached.
	BatchFailed BatchOutcome = "failed"
)

// String returns the string representation.
func (o BatchOutcome) String() string {
	return string(o)
}

// PhotoRejection records why one candidate was not attached.
type PhotoRejection struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// PhotoBatchResult reports what happened to each candidate of a batch.
type PhotoBatchResult struct {
	ItemID   string           `json:"item_id"`
	Outcome  BatchOutcome     `json:"outcome"`
	Selected int              `json:"selected"`
	Added    int              `json:"added"`
	Total    int              `json:"total"`
	Rejected []PhotoRejection `json:"rejected,omitempty"`
	Failed   []PhotoRejection `json:"failed,omitempty"`
	Warnings []string         `json:"warnings,omitempty"`
}

// Summary returns a one-line description such as "2 of 3 photos added".
func (r *PhotoBatchResult) Summary() string {
	switch r.Outcome {
	case BatchComplete:
		if r.Added == 1 {
			return "1 photo added"
		}
		return strconv.Itoa(r.Added) + " photos added"
	case BatchPartial:
		return strconv.Itoa(r.Added) + " of " + strconv.Itoa(r.Selected) + " photos added"
	default:
		return "no photos added"
	}
}
