// Package quota enforces per-identity call-frequency limits in front of
// the ingestion pipeline.
//
// The pipeline itself never enforces quotas; it receives work only after
// the caller-facing layer has consulted a Gate. The provided gate is a
// token bucket over a pluggable Store: MemoryStore for single-node
// deployments, RedisStore when several nodes must share bucket state.
//
// A denied check is not an error - Allow returns a Result whose Allowed
// method reports the decision and whose RetryAfter method tells the caller
// how long to back off.
//
// # Usage
//
//	store := quota.NewMemoryStore()
//	defer store.Close()
//
//	gate, err := quota.NewTokenBucket(store, quota.Config{
//	    Capacity:       30,
//	    RefillRate:     30,
//	    RefillInterval: time.Minute,
//	})
//
//	res, err := gate.Allow(ctx, identityToken)
//	if err != nil {
//	    return err
//	}
//	if !res.Allowed() {
//	    // tell the caller to retry after res.RetryAfter()
//	}
package quota
