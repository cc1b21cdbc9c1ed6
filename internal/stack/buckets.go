package stack

import (
	"fmt"

	"github.com/lakeup/lakeup/internal/provisioning"
)

// markerObject is placed in every provisioned bucket so an empty bucket
// still lists one key, which keeps downstream listing-based health
// checks simple.
const markerObject = ".lakeup-keep"

// bucketsStep provisions the fixed bucket set. Each bucket is
// check-then-act by name; a connectivity failure during the existence
// check aborts instead of being misread as "already exists".
func bucketsStep() provisioning.Step {
	return provisioning.Step{
		ID:       StepBuckets,
		Critical: true,
		Needs:    objectStoreKeys,
		Check: func(pctx *provisioning.Context) (provisioning.Presence, error) {
			store, err := pctx.ObjectStore()
			if err != nil {
				return provisioning.PresenceUnknown, err
			}
			for _, bucket := range pctx.Config.Buckets {
				presence, err := store.BucketPresence(pctx.Context, bucket)
				if presence != provisioning.PresenceExists {
					return presence, err
				}
			}
			return provisioning.PresenceExists, nil
		},
		Run: func(pctx *provisioning.Context) error {
			store, err := pctx.ObjectStore()
			if err != nil {
				return err
			}

			for _, bucket := range pctx.Config.Buckets {
				if err := ensureBucket(pctx, store, bucket); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// ensureBucket creates one bucket and its marker object if absent.
func ensureBucket(pctx *provisioning.Context, store provisioning.ObjectStore, bucket string) error {
	presence, err := store.BucketPresence(pctx.Context, bucket)
	switch presence {
	case provisioning.PresenceExists:
		provisioning.LogResourceExists(pctx.Observer, string(StepBuckets), "bucket", bucket)
		return nil
	case provisioning.PresenceUnknown:
		return fmt.Errorf("could not determine state of bucket %s: %w", bucket, err)
	}

	if err := store.CreateBucket(pctx.Context, bucket); err != nil {
		return err
	}
	if err := store.PutObject(pctx.Context, bucket, markerObject, nil); err != nil {
		return err
	}
	provisioning.LogResourceCreated(pctx.Observer, string(StepBuckets), "bucket", bucket)
	return nil
}
