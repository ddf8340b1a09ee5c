// Package collections holds the small generic slice/set/queue helpers the
// ingestion pipeline shares across the Dependency Graph, Dependency
// Resolver, and Diagnostic Parser stages: a filter-map slice helper, a
// Set for membership tracking (blacklist, include dirs, deferred files),
// and a priority queue for fix-priority diagnostic dispatch.
package collections

// FilterMapSlice applies fn to each element of s, keeping the transformed
// value wherever fn reports success and dropping the element otherwise.
// internal/graph.FromTable uses it to turn a Unit Table's recorded
// instantiations into the Dependency Graph's edge list in one pass,
// skipping instantiations whose child name never resolved to a unit.
//
// Example:
//
//	FilterMapSlice([]int{1, -1, 2}, func(x int) (int, bool) {
//		if x < 0 {
//			return 0, false
//		}
//		return x * 2, true
//	})
//	=> []int{2, 4}
func FilterMapSlice[TSlice ~[]T, T, V any](s TSlice, fn func(T) (V, bool)) []V {
	out := make([]V, 0, len(s))
	for _, t := range s {
		if v, ok := fn(t); ok {
			out = append(out, v)
		}
	}
	return out
}
