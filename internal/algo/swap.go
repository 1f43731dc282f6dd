package algo

import "github.com/roach88/sortvis/internal/trace"

func bubbleSort(row []int) trace.Trace {
	rec := trace.NewSwapRecorder(row)
	n := len(row)
	for i := 0; i < n-1; i++ {
		swapped := false
		for j := 0; j < n-1-i; j++ {
			if row[j] > row[j+1] {
				rec.Swap(j, j+1)
				swapped = true
			}
		}
		if !swapped {
			break
		}
	}
	return rec.Trace()
}

func cocktailSort(row []int) trace.Trace {
	rec := trace.NewSwapRecorder(row)
	lo, hi := 0, len(row)-1
	for lo < hi {
		swapped := false
		for j := lo; j < hi; j++ {
			if row[j] > row[j+1] {
				rec.Swap(j, j+1)
				swapped = true
			}
		}
		if !swapped {
			break
		}
		hi--
		for j := hi; j > lo; j-- {
			if row[j-1] > row[j] {
				rec.Swap(j-1, j)
			}
		}
		lo++
	}
	return rec.Trace()
}

func selectionSort(row []int) trace.Trace {
	rec := trace.NewSwapRecorder(row)
	for i := range row {
		least := i
		for j := i + 1; j < len(row); j++ {
			if row[j] < row[least] {
				least = j
			}
		}
		rec.Swap(i, least)
	}
	return rec.Trace()
}

func insertionSort(row []int) trace.Trace {
	rec := trace.NewSwapRecorder(row)
	for i := 1; i < len(row); i++ {
		for j := i; j > 0 && row[j-1] > row[j]; j-- {
			rec.Swap(j-1, j)
		}
	}
	return rec.Trace()
}

// quickSort uses Lomuto partitioning around the last element. It recurses
// into the smaller side and loops on the larger so depth stays logarithmic.
func quickSort(row []int) trace.Trace {
	rec := trace.NewSwapRecorder(row)

	partition := func(lo, hi int) int {
		pivot := row[hi]
		i := lo
		for j := lo; j < hi; j++ {
			if row[j] < pivot {
				rec.Swap(i, j)
				i++
			}
		}
		rec.Swap(i, hi)
		return i
	}

	var sortRange func(lo, hi int)
	sortRange = func(lo, hi int) {
		for lo < hi {
			p := partition(lo, hi)
			if p-lo < hi-p {
				sortRange(lo, p-1)
				lo = p + 1
			} else {
				sortRange(p+1, hi)
				hi = p - 1
			}
		}
	}

	sortRange(0, len(row)-1)
	return rec.Trace()
}

func heapSort(row []int) trace.Trace {
	rec := trace.NewSwapRecorder(row)
	n := len(row)

	siftDown := func(root, end int) {
		for {
			child := 2*root + 1
			if child >= end {
				return
			}
			if child+1 < end && row[child] < row[child+1] {
				child++
			}
			if row[root] >= row[child] {
				return
			}
			rec.Swap(root, child)
			root = child
		}
	}

	for start := n/2 - 1; start >= 0; start-- {
		siftDown(start, n)
	}
	for end := n - 1; end > 0; end-- {
		rec.Swap(0, end)
		siftDown(0, end)
	}
	return rec.Trace()
}
