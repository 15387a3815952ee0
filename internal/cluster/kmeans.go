// Package cluster partitions fog devices spatially with Lloyd's k-means
// and elects one master per non-empty cell, grounded on the reference
// KMeansClustering algorithm.
package cluster

import (
	"math"
	"math/rand"
	"sort"

	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/device"
)

const (
	maxIterations   = 100
	convergenceTol  = 1e-3
)

// Cell is an immutable grouping produced by Cluster: a spatial partition,
// a master id, and the full member id set (including the master).
type Cell struct {
	ID        int
	CentroidX float64
	CentroidY float64
	MasterID  string
	MemberIDs []string
}

type centroid struct{ x, y float64 }

// Cluster assigns each device a CellID, designates masters, and populates
// CellMembers, using a fixed-seed RNG so repeated calls over the same
// device list and k produce identical partitions.
func Cluster(devices []*device.FogDevice, k int, seed int64) []Cell {
	if len(devices) == 0 || k <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(seed))
	centroids := initCentroids(devices, k, rng)

	var assignment []int
	for iter := 0; iter < maxIterations; iter++ {
		assignment = assignNearest(devices, centroids)
		newCentroids, moved := recompute(devices, assignment, centroids)
		centroids = newCentroids
		if !moved {
			break
		}
	}

	cells := make([]Cell, 0, k)
	byCell := make(map[int][]*device.FogDevice)
	for i, d := range devices {
		cid := assignment[i]
		d.CellID = cid
		byCell[cid] = append(byCell[cid], d)
	}

	for cid := 0; cid < k; cid++ {
		members := byCell[cid]
		if len(members) == 0 {
			continue
		}
		c := centroids[cid]
		master := closestToCentroid(members, c)
		ids := make([]string, 0, len(members))
		for _, m := range members {
			ids = append(ids, m.ID)
			if m.ID == master.ID {
				m.RoleV = device.Master
			} else {
				m.RoleV = device.Member
			}
		}
		sort.Strings(ids)
		for _, m := range members {
			m.CellMembers = make(map[string]struct{}, len(ids)-1)
			for _, id := range ids {
				if id != m.ID {
					m.CellMembers[id] = struct{}{}
				}
			}
		}
		cells = append(cells, Cell{
			ID:        cid,
			CentroidX: c.x,
			CentroidY: c.y,
			MasterID:  master.ID,
			MemberIDs: ids,
		})
	}
	return cells
}

func initCentroids(devices []*device.FogDevice, k int, rng *rand.Rand) []centroid {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, d := range devices {
		minX, minY = math.Min(minX, d.X), math.Min(minY, d.Y)
		maxX, maxY = math.Max(maxX, d.X), math.Max(maxY, d.Y)
	}
	out := make([]centroid, k)
	for i := 0; i < k; i++ {
		out[i] = centroid{
			x: minX + rng.Float64()*(maxX-minX),
			y: minY + rng.Float64()*(maxY-minY),
		}
	}
	return out
}

func assignNearest(devices []*device.FogDevice, centroids []centroid) []int {
	assignment := make([]int, len(devices))
	for i, d := range devices {
		best, bestDist := 0, math.Inf(1)
		for ci, c := range centroids {
			dist := euclid(d.X, d.Y, c.x, c.y)
			if dist < bestDist {
				bestDist, best = dist, ci
			}
		}
		assignment[i] = best
	}
	return assignment
}

func recompute(devices []*device.FogDevice, assignment []int, prev []centroid) ([]centroid, bool) {
	sumX := make([]float64, len(prev))
	sumY := make([]float64, len(prev))
	count := make([]int, len(prev))
	for i, d := range devices {
		c := assignment[i]
		sumX[c] += d.X
		sumY[c] += d.Y
		count[c]++
	}
	moved := false
	next := make([]centroid, len(prev))
	for i, c := range prev {
		if count[i] == 0 {
			next[i] = c
			continue
		}
		nx, ny := sumX[i]/float64(count[i]), sumY[i]/float64(count[i])
		if math.Abs(nx-c.x) > convergenceTol || math.Abs(ny-c.y) > convergenceTol {
			moved = true
		}
		next[i] = centroid{x: nx, y: ny}
	}
	return next, moved
}

func closestToCentroid(members []*device.FogDevice, c centroid) *device.FogDevice {
	best, bestDist := members[0], math.Inf(1)
	for _, m := range members {
		dist := euclid(m.X, m.Y, c.x, c.y)
		if dist < bestDist {
			bestDist, best = dist, m
		}
	}
	return best
}

func euclid(x1, y1, x2, y2 float64) float64 {
	dx, dy := x2-x1, y2-y1
	return math.Sqrt(dx*dx + dy*dy)
}
