package incident

import "context"

// Ledger tracks which incidents were already alerted on. Claim must be
// atomic: exactly one caller wins a given incident id.
type Ledger interface {
	// Claim records the incident as processed. Returns false when another
	// run already claimed it.
	Claim(ctx context.Context, incidentID int64) (bool, error)

	// Release undoes a claim after a failed delivery so the incident is
	// retried on the next poll.
	Release(ctx context.Context, incidentID int64) error
}
