package engine

import "fmt"

// Chunk is the half-open trace range [Start, End) consumed for one frame.
type Chunk struct {
	Start int
	End   int
}

// Len returns the number of trace steps in the chunk.
func (c Chunk) Len() int {
	return c.End - c.Start
}

// Partition splits total trace steps into numFrames-1 contiguous chunks.
//
// With base = total / (numFrames-1) and rem = total % (numFrames-1), the first
// rem chunks hold base+1 steps and the rest hold base. Sizes therefore sum to
// total exactly and differ by at most one. When total is smaller than the
// chunk count the trailing chunks are empty.
func Partition(total, numFrames int) ([]Chunk, error) {
	if numFrames < 2 {
		return nil, NewFrameCountError(numFrames)
	}
	if total < 0 {
		return nil, fmt.Errorf("trace length must not be negative, got %d", total)
	}

	n := numFrames - 1
	base, rem := total/n, total%n

	chunks := make([]Chunk, n)
	start := 0
	for i := range chunks {
		size := base
		if i < rem {
			size++
		}
		chunks[i] = Chunk{Start: start, End: start + size}
		start += size
	}
	return chunks, nil
}
