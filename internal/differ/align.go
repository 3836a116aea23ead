package differ

import "github.com/felipesere/everdiff/internal/value"

// alignment pairs left sequence indices to right sequence indices, greedily
// minimizing total distance.
type alignment struct {
	leftToRight map[int]int
	rightToLeft map[int]int
	dist        [][]int
}

// align builds the distance matrix for left×right and greedily pairs
// indices, smallest distance first, ties broken by smallest |i-j| then
// smallest i then smallest j.
func align(left, right []value.Value) alignment {
	m, n := len(left), len(right)

	dist := make([][]int, m)
	for i := range dist {
		dist[i] = make([]int, n)

		for j := range dist[i] {
			cap := left[i].Size() + right[j].Size()
			dist[i][j] = distance(left[i], right[j], cap)
		}
	}

	matchedL := make([]bool, m)
	matchedR := make([]bool, n)
	a := alignment{
		leftToRight: make(map[int]int),
		rightToLeft: make(map[int]int),
		dist:        dist,
	}

	rounds := m
	if n < rounds {
		rounds = n
	}

	for round := 0; round < rounds; round++ {
		bestI, bestJ, bestD := -1, -1, 0

		for i := 0; i < m; i++ {
			if matchedL[i] {
				continue
			}

			for j := 0; j < n; j++ {
				if matchedR[j] {
					continue
				}

				if bestI == -1 || betterCandidate(dist[i][j], i, j, bestD, bestI, bestJ) {
					bestD, bestI, bestJ = dist[i][j], i, j
				}
			}
		}

		matchedL[bestI] = true
		matchedR[bestJ] = true
		a.leftToRight[bestI] = bestJ
		a.rightToLeft[bestJ] = bestI
	}

	return a
}

// betterCandidate reports whether (d, i, j) should replace the current best
// candidate under the tie-break discipline: smallest distance, then
// smallest |i-j|, then smallest i, then smallest j.
func betterCandidate(d, i, j, bestD, bestI, bestJ int) bool {
	if d != bestD {
		return d < bestD
	}

	delta := absInt(i - j)
	bestDelta := absInt(bestI - bestJ)

	if delta != bestDelta {
		return delta < bestDelta
	}

	if i != bestI {
		return i < bestI
	}

	return j < bestJ
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}

	return n
}

// distance measures how different a and b are, recursively. Scalars are 0
// (equal) or 1 (differ). Containers cost 1 plus the sum of child distances
// for positionally- or key-paired children, plus 1 for each child present on
// only one side. The result is capped so a large subtree never makes the
// matrix expensive to compare; distance short-circuits to cap as soon as
// the running total would exceed it.
func distance(a, b value.Value, cap int) int {
	if a.Kind != b.Kind {
		if cap < 1 {
			return cap
		}

		return 1
	}

	switch a.Kind {
	case value.KindEmpty:
		return 0
	case value.KindScalar:
		if value.Equal(a, b) {
			return 0
		}

		return 1
	case value.KindSequence:
		return sequenceDistance(a.Sequence, b.Sequence, cap)
	case value.KindMapping:
		return mappingDistance(a, b, cap)
	}

	return 0
}

func sequenceDistance(a, b []value.Value, cap int) int {
	total := 1

	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	for i := 0; i < minLen; i++ {
		total += distance(a[i], b[i], cap)

		if total >= cap {
			return cap
		}
	}

	total += absInt(len(a) - len(b))
	if total >= cap {
		return cap
	}

	return total
}

func mappingDistance(a, b value.Value, cap int) int {
	total := 1

	bByKey := make(map[string]value.Value, len(b.Mapping))
	for _, e := range b.Mapping {
		bByKey[value.CanonicalKey(e.Key)] = e.Value
	}

	seen := make(map[string]bool, len(a.Mapping))

	for _, e := range a.Mapping {
		k := value.CanonicalKey(e.Key)
		seen[k] = true

		if bv, ok := bByKey[k]; ok {
			total += distance(e.Value, bv, cap)
		} else {
			total++
		}

		if total >= cap {
			return cap
		}
	}

	for _, e := range b.Mapping {
		if !seen[value.CanonicalKey(e.Key)] {
			total++
		}
	}

	if total >= cap {
		return cap
	}

	return total
}
