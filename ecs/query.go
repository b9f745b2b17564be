package ecs

// intersect returns the ids present in every set, ordered by the smallest
// set's dense order.
func intersect(sets ...*SparseSet) []entityID {
	if len(sets) == 0 {
		return nil
	}
	smallest := sets[0]
	for _, s := range sets {
		if s == nil {
			return nil
		}
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}
	out := make([]entityID, 0, smallest.Len())
	for _, id := range smallest.ids() {
		all := true
		for _, s := range sets {
			if !s.Has(id) {
				all = false
				break
			}
		}
		if all {
			out = append(out, id)
		}
	}
	return out
}
