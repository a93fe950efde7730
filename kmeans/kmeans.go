// Package kmeans implements an iterative k-means style refinement over an
// arbitrary element type. The element specific behavior (seeding, centroid
// computation, distance and early exit) is supplied by a Context.
package kmeans

import (
	"math"
	"sort"
)

// Context supplies the element specific operations used by Optimize.
type Context[T any] interface {
	// InitializeCentroid seeds the centroid of cluster k.
	InitializeCentroid(k int) T

	// DetermineCentroid computes a centroid for a non-empty set of members.
	DetermineCentroid(elements []T) T

	// Diff returns the dissimilarity of two elements. 0 means equal.
	Diff(a, b T) int

	// Stop is called after every iteration. Returning true ends the
	// optimization with the current clusters.
	Stop(iteration int, clusters []Cluster[T]) bool
}

// Assignment records that the element at Index belongs to a cluster and
// how far it was from the cluster centroid when it was assigned.
type Assignment struct {
	Index int
	Diff  int
}

// Cluster is one group of elements and the centroid representing them.
type Cluster[T any] struct {
	Centroid T
	Elements []Assignment
}

// Result is the outcome of Optimize.
type Result[T any] struct {
	Clusters []Cluster[T]
	// Iterations is the number of iterations that were run.
	Iterations int
	// Converged is set when every element matched its centroid exactly.
	Converged bool
	// Stopped is set when the context requested an early exit.
	Stopped bool
}

// Optimize partitions elements into k clusters. Every repairInterval
// iterations (starting with the first) clusters that ended up empty are
// reseeded with the worst approximated element of another cluster. A
// repairInterval <= 0 disables the repair step.
//
// Optimize returns early when the repair step finds that every element is
// represented exactly, or when ctx.Stop returns true. Otherwise the clusters
// after maxIterations iterations are returned as they are.
func Optimize[T any](
	ctx Context[T],
	k int,
	elements []T,
	maxIterations int,
	repairInterval int,
) Result[T] {
	clusters := initializeClusters(ctx, k)
	for i := 0; i < maxIterations; i++ {
		resetAssignments(clusters)
		reassignElements(ctx, clusters, elements)
		recalculateCentroids(ctx, clusters, elements)
		if repairInterval > 0 && i%repairInterval == 0 {
			if fillEmptyClusters(ctx, clusters, elements) {
				return Result[T]{Clusters: clusters, Iterations: i + 1, Converged: true}
			}
		}
		if ctx.Stop(i, clusters) {
			return Result[T]{Clusters: clusters, Iterations: i + 1, Stopped: true}
		}
	}
	return Result[T]{Clusters: clusters, Iterations: maxIterations}
}

func initializeClusters[T any](ctx Context[T], k int) []Cluster[T] {
	clusters := make([]Cluster[T], k)
	for i := range clusters {
		clusters[i].Centroid = ctx.InitializeCentroid(i)
	}
	return clusters
}

func resetAssignments[T any](clusters []Cluster[T]) {
	for i := range clusters {
		clusters[i].Elements = clusters[i].Elements[:0]
	}
}

// reassignElements moves every element into the cluster with the closest
// centroid. On ties the cluster with the lowest index wins.
func reassignElements[T any](ctx Context[T], clusters []Cluster[T], elements []T) {
	for index, element := range elements {
		best := -1
		bestDiff := math.MaxInt
		for j := range clusters {
			diff := ctx.Diff(clusters[j].Centroid, element)
			if diff < bestDiff {
				best = j
				bestDiff = diff
			}
		}
		if best < 0 {
			panic("kmeans: no cluster found for element")
		}
		clusters[best].Elements = append(clusters[best].Elements,
			Assignment{Index: index, Diff: bestDiff})
	}
}

// recalculateCentroids recenters every non-empty cluster. Empty clusters
// keep their previous centroid.
func recalculateCentroids[T any](ctx Context[T], clusters []Cluster[T], elements []T) {
	for i := range clusters {
		if len(clusters[i].Elements) > 0 {
			clusters[i].Centroid = recalculateCentroid(ctx, clusters[i].Elements, elements)
		}
	}
}

func recalculateCentroid[T any](ctx Context[T], assignments []Assignment, elements []T) T {
	if len(assignments) == 0 {
		panic("kmeans: centroid of empty cluster requested")
	}
	members := make([]T, len(assignments))
	for i, a := range assignments {
		members[i] = elements[a.Index]
	}
	return ctx.DetermineCentroid(members)
}

// fillEmptyClusters reseeds empty clusters with the worst approximated
// element of clusters that have at least two members. Donors are handed out
// from the end of the descending list, so the smallest deviations are used
// first; if there are more empty clusters than donors the rest stay as they
// are. It returns true when the largest deviation is 0, which means every
// element is represented exactly.
func fillEmptyClusters[T any](ctx Context[T], clusters []Cluster[T], elements []T) bool {
	maxDiffs := highestDeviations(clusters)
	if len(maxDiffs) > 0 && maxDiffs[0].Diff == 0 {
		return true
	}

	for i := range clusters {
		if len(maxDiffs) == 0 {
			break
		}
		if len(clusters[i].Elements) > 0 {
			continue
		}
		donor := maxDiffs[len(maxDiffs)-1]
		maxDiffs = maxDiffs[:len(maxDiffs)-1]
		clusters[i].Elements = append(clusters[i].Elements,
			Assignment{Index: donor.Index, Diff: 0})
		clusters[i].Centroid = recalculateCentroid(ctx, clusters[i].Elements, elements)
	}
	return false
}

// highestDeviations collects, per cluster with two or more members, the
// member farthest from the centroid (the last one on ties) and returns
// them sorted by deviation, largest first.
func highestDeviations[T any](clusters []Cluster[T]) []Assignment {
	var maxDiffs []Assignment
	for _, c := range clusters {
		if len(c.Elements) < 2 {
			continue
		}
		worst := c.Elements[0]
		for _, a := range c.Elements[1:] {
			if a.Diff >= worst.Diff {
				worst = a
			}
		}
		maxDiffs = append(maxDiffs, worst)
	}
	sort.SliceStable(maxDiffs, func(i, j int) bool {
		return maxDiffs[i].Diff > maxDiffs[j].Diff
	})
	return maxDiffs
}

// MaxDeviation returns the largest recorded distance between any element
// and its cluster centroid.
func MaxDeviation[T any](clusters []Cluster[T]) int {
	deviation := 0
	for _, c := range clusters {
		for _, a := range c.Elements {
			if a.Diff > deviation {
				deviation = a.Diff
			}
		}
	}
	return deviation
}
