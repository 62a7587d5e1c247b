package seed

import (
	"context"

	documentsRepo "bookingdesk/database/repository/documents"
)

// IsEmpty reports whether collection currently holds zero documents.
// It relies on the store's limit-1 existence check rather than a full read.
func IsEmpty(ctx context.Context, store documentsRepo.Store, collection string) (bool, error) {
	exists, err := store.Exists(ctx, collection)
	if err != nil {
		return false, &StoreQueryError{Collection: collection, Op: "probe", Err: err}
	}
	return !exists, nil
}
