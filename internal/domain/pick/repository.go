package pick

import "context"

// Repository persists picks. SubmitBatch runs the start-time lookup, the lock
// check, the profile upsert and every pick upsert inside a single transaction;
// a LockedError or any write failure leaves the stored pick set untouched.
type Repository interface {
	SubmitBatch(ctx context.Context, sub Submission) error
	ListByUser(ctx context.Context, userID int64) ([]Pick, error)
}
