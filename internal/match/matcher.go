// Package match decides whether a trip destination refers to one of the
// known contact cities.
package match

import (
	"context"
	"errors"
	"sort"

	"tripcheck/internal/geo"
)

// Kind says how a destination was matched.
type Kind string

const (
	KindExact  Kind = "exact"
	KindRadius Kind = "radius"
)

// distanceToleranceKM treats candidates within a meter of each other as
// equidistant, letting the lexicographic tie-break keep runs deterministic.
const distanceToleranceKM = 1e-3

// Result is a successful match of a trip destination to a contact city key.
type Result struct {
	CityKey    string
	Kind       Kind
	DistanceKM float64 // meaningful only for KindRadius
}

// Resolver is the coordinate source for the radius pass.
type Resolver interface {
	Resolve(ctx context.Context, key string) (geo.Point, error)
}

type Matcher struct {
	resolver Resolver
	radiusKM float64
}

func New(resolver Resolver, radiusKM float64) *Matcher {
	return &Matcher{resolver: resolver, radiusKM: radiusKM}
}

// Match returns the contact city key the raw destination refers to, or
// ok=false when none qualifies. Keys must be pre-normalized.
//
// The exact pass compares normalized strings and never touches the resolver.
// The radius pass resolves the destination (a failure there means no match,
// not an error) and then every key, keeping the closest one within the
// radius; equidistant candidates fall back to the smallest key. A non-
// resolution error from the resolver is a store failure and is returned.
func (m *Matcher) Match(ctx context.Context, destinationRaw string, keys []string) (Result, bool, error) {
	dest := geo.Normalize(destinationRaw)
	if dest == "" {
		return Result{}, false, nil
	}

	for _, k := range keys {
		if k == dest {
			return Result{CityKey: k, Kind: KindExact}, true, nil
		}
	}

	destPt, err := m.resolver.Resolve(ctx, dest)
	if err != nil {
		if errors.Is(err, geo.ErrResolutionFailed) {
			return Result{}, false, nil
		}
		return Result{}, false, err
	}

	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	var best Result
	found := false
	for _, k := range sorted {
		pt, err := m.resolver.Resolve(ctx, k)
		if err != nil {
			if errors.Is(err, geo.ErrResolutionFailed) {
				continue
			}
			return Result{}, false, err
		}

		d := geo.DistanceKM(destPt, pt)
		if d > m.radiusKM {
			continue
		}
		if !found || d < best.DistanceKM-distanceToleranceKM {
			best = Result{CityKey: k, Kind: KindRadius, DistanceKM: d}
			found = true
		}
	}

	if !found {
		return Result{}, false, nil
	}
	return best, true, nil
}
