package services

import "iter"

// Yield every k-element subset of items in lexicographic order of positions.
// The yielded slice is reused between iterations and must not be retained.
func combinations(items []int, k int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		n := len(items)
		if k <= 0 || k > n {
			return
		}

		idx := make([]int, k)
		for i := range idx {
			idx[i] = i
		}
		out := make([]int, k)

		for {
			for i, p := range idx {
				out[i] = items[p]
			}
			if !yield(out) {
				return
			}

			// Advance the rightmost position that still has room.
			i := k - 1
			for i >= 0 && idx[i] == n-k+i {
				i--
			}
			if i < 0 {
				return
			}
			idx[i]++
			for j := i + 1; j < k; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
}
