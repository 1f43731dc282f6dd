package algo

import "github.com/roach88/sortvis/internal/trace"

// mergeSort is bottom-up: each doubling of the run width is one pass.
func mergeSort(row []int) trace.Trace {
	rec := trace.NewSnapshotRecorder()
	n := len(row)
	src := append([]int(nil), row...)
	dst := make([]int, n)

	for width := 1; width < n; width *= 2 {
		for lo := 0; lo < n; lo += 2 * width {
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRuns(dst[lo:hi], src[lo:mid], src[mid:hi])
		}
		src, dst = dst, src
		rec.Pass(src)
	}

	copy(row, src)
	return rec.Trace()
}

func mergeRuns(dst, left, right []int) {
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if left[i] <= right[j] {
			dst[k] = left[i]
			i++
		} else {
			dst[k] = right[j]
			j++
		}
		k++
	}
	k += copy(dst[k:], left[i:])
	copy(dst[k:], right[j:])
}

// radixSortLSD sorts by decimal digit, least significant first. One pass per
// digit of the largest rank.
func radixSortLSD(row []int) trace.Trace {
	rec := trace.NewSnapshotRecorder()
	largest := 0
	for _, v := range row {
		largest = max(largest, v)
	}

	out := make([]int, len(row))
	for exp := 1; largest/exp > 0; exp *= 10 {
		var count [10]int
		for _, v := range row {
			count[(v/exp)%10]++
		}
		for d := 1; d < len(count); d++ {
			count[d] += count[d-1]
		}
		for i := len(row) - 1; i >= 0; i-- {
			d := (row[i] / exp) % 10
			count[d]--
			out[count[d]] = row[i]
		}
		copy(row, out)
		rec.Pass(row)
	}
	return rec.Trace()
}

// countingSort builds the sorted row in a single pass.
func countingSort(row []int) trace.Trace {
	rec := trace.NewSnapshotRecorder()
	if len(row) == 0 {
		return rec.Trace()
	}

	largest := 0
	for _, v := range row {
		largest = max(largest, v)
	}
	counts := make([]int, largest+1)
	for _, v := range row {
		counts[v]++
	}

	out := make([]int, 0, len(row))
	for v, c := range counts {
		for ; c > 0; c-- {
			out = append(out, v)
		}
	}
	copy(row, out)
	rec.Pass(row)
	return rec.Trace()
}
