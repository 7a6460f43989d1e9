package geo

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/carecompass/carecompass-api/schema"
)

// ErrStaleResolution marks a resolution that finished after a newer one was
// issued. Callers must drop the result instead of applying it.
var ErrStaleResolution = fmt.Errorf("location resolution superseded by a newer request")

// LatestResolver serializes resolutions for a single input surface. Every
// Resolve call takes a monotonically increasing sequence number; if another
// call was issued while a resolution was in flight, the older result comes
// back as ErrStaleResolution. This keeps a slow resolution for an edited
// location string from overwriting the latest one.
type LatestResolver struct {
	resolver LocationResolver
	seq      uint64
}

func NewLatestResolver(resolver LocationResolver) *LatestResolver {
	return &LatestResolver{
		resolver: resolver,
	}
}

func (r *LatestResolver) Resolve(ctx context.Context, location string) (schema.Location, error) {
	seq := atomic.AddUint64(&r.seq, 1)

	result, err := r.resolver.Resolve(ctx, location)

	if atomic.LoadUint64(&r.seq) != seq {
		return schema.Location{}, ErrStaleResolution
	}

	if err != nil {
		return schema.Location{}, err
	}
	return result, nil
}
