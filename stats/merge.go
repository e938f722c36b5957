package stats

// Merge combines per-chunk maps into one. The first map is reused as the
// result and aggregates from later maps may be adopted as-is, so callers
// must not touch the inputs afterwards.
func Merge(maps ...Map) Map {
	if len(maps) == 0 {
		return make(Map)
	}

	result := maps[0]
	if result == nil {
		result = make(Map)
	}
	for _, m := range maps[1:] {
		for key, other := range m {
			existing, ok := result[key]
			if !ok {
				result[key] = other
				continue
			}
			existing.Merge(other)
		}
	}
	return result
}
