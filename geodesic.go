// Copyright 2022  Il Sub Bang
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package h3go

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/golang/geo/r3"
)

// aabbEpsilon floors degenerate rtree rectangle dimensions; rtreego rejects
// zero-length sides.
const aabbEpsilon = 1e-12

// aabb3 is an axis-aligned bounding box in 3-space, used to bound great
// circle arcs more tightly than their chords.
type aabb3 struct {
	min, max r3.Vector
}

func pointAABB(v r3.Vector) aabb3 {
	return aabb3{min: v, max: v}
}

func (b aabb3) extend(v r3.Vector) aabb3 {
	return aabb3{
		min: r3.Vector{X: math.Min(b.min.X, v.X), Y: math.Min(b.min.Y, v.Y), Z: math.Min(b.min.Z, v.Z)},
		max: r3.Vector{X: math.Max(b.max.X, v.X), Y: math.Max(b.max.Y, v.Y), Z: math.Max(b.max.Z, v.Z)},
	}
}

func unionAABB(a, b aabb3) aabb3 {
	return a.extend(b.min).extend(b.max)
}

func aabbOverlaps(a, b aabb3) bool {
	return a.min.X <= b.max.X && a.max.X >= b.min.X &&
		a.min.Y <= b.max.Y && a.max.Y >= b.min.Y &&
		a.min.Z <= b.max.Z && a.max.Z >= b.min.Z
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// aabbIntersectsCap is a conservative AABB-vs-sphere-cap test: the cap's
// angular radius corresponds to a chord-distance sphere around its center,
// since cap/arc points are unit vectors.
func aabbIntersectsCap(box aabb3, cap SphereCap) bool {
	chordRadius2 := 2 - 2*cap.cosRadius
	if chordRadius2 < 0 {
		chordRadius2 = 0
	}
	closest := r3.Vector{
		X: clampF(cap.center.X, box.min.X, box.max.X),
		Y: clampF(cap.center.Y, box.min.Y, box.max.Y),
		Z: clampF(cap.center.Z, box.min.Z, box.max.Z),
	}
	d := closest.Sub(cap.center)
	return d.Dot(d) <= chordRadius2
}

// arcAABB computes the 3-space AABB of the great-circle arc from v to w
// (the shorter arc), extending the chord's AABB by probing the six cardinal
// axis directions for extrema that fall on the arc.
func arcAABB(v, w r3.Vector) aabb3 {
	box := pointAABB(v).extend(w)

	n := v.Cross(w)
	nNorm := n.Norm()
	if nNorm < 1e-15 {
		// v and w (anti)parallel: chord AABB is already tight enough.
		return box
	}
	n = n.Mul(1 / nNorm)
	u := n.Cross(v).Normalize()

	angle := math.Atan2(w.Dot(u), w.Dot(v))
	if angle < 0 {
		angle += 2 * math.Pi
	}

	comps := func(vec r3.Vector) [3]float64 { return [3]float64{vec.X, vec.Y, vec.Z} }
	vc := comps(v)
	uc := comps(u)

	for k := 0; k < 3; k++ {
		denom := math.Hypot(vc[k], uc[k])
		if denom < 1e-15 {
			continue
		}
		phi := math.Atan2(uc[k], vc[k])
		for _, t := range [2]float64{phi, phi + math.Pi} {
			tn := math.Mod(t, 2*math.Pi)
			if tn < 0 {
				tn += 2 * math.Pi
			}
			if tn < 0 || tn > angle {
				continue
			}
			extreme := v.Mul(math.Cos(tn)).Add(u.Mul(math.Sin(tn)))
			box = box.extend(extreme)
		}
	}

	return box
}

// GeodesicEdge is a cached loop edge expressed in unit-sphere form.
type GeodesicEdge struct {
	vert      r3.Vector
	next      r3.Vector
	edgeCross r3.Vector // normalize(vert x next)
	edgeDot   float64   // dot(vert, next)
	aabb      aabb3
}

type edgeSpatial struct {
	idx  int
	rect *rtreego.Rect
}

func (e *edgeSpatial) Bounds() *rtreego.Rect { return e.rect }

func aabbToRect(box aabb3) *rtreego.Rect {
	lengths := []float64{
		math.Max(box.max.X-box.min.X, aabbEpsilon),
		math.Max(box.max.Y-box.min.Y, aabbEpsilon),
		math.Max(box.max.Z-box.min.Z, aabbEpsilon),
	}
	rect, err := rtreego.NewRect(rtreego.Point{box.min.X, box.min.Y, box.min.Z}, lengths)
	if err != nil {
		// Degenerate input rect; fall back to an epsilon cube at the point.
		rect, _ = rtreego.NewRect(rtreego.Point{box.min.X, box.min.Y, box.min.Z}, []float64{aabbEpsilon, aabbEpsilon, aabbEpsilon})
	}
	return rect
}

// GeodesicLoop is a loop expressed as geodesic edges, indexed by an R-tree
// over their arc AABBs so boundary-intersection queries only touch
// candidate edges.
type GeodesicLoop struct {
	edges    []GeodesicEdge
	centroid r3.Vector
	aabb     aabb3
	rtree    *rtreego.Rtree
}

func newGeodesicLoop(loop *GeoLoop) (*GeodesicLoop, H3Error) {
	if loop.numVerts == 0 {
		return nil, E_DOMAIN
	}

	verts := make([]r3.Vector, loop.numVerts)
	var centroidSum r3.Vector
	for i, gc := range loop.verts[:loop.numVerts] {
		v := geoToUnitVector(&gc)
		verts[i] = v
		centroidSum = centroidSum.Add(v)
	}

	gl := &GeodesicLoop{
		edges: make([]GeodesicEdge, loop.numVerts),
		rtree: rtreego.NewTree(3, 4, 16),
	}
	if centroidSum.Norm() > 1e-15 {
		gl.centroid = centroidSum.Normalize()
	} else {
		gl.centroid = r3.Vector{X: 1}
	}

	for i := 0; i < loop.numVerts; i++ {
		v := verts[i]
		w := verts[(i+1)%loop.numVerts]

		cross := v.Cross(w)
		edgeCross := cross
		if n := cross.Norm(); n > 1e-15 {
			edgeCross = cross.Mul(1 / n)
		}

		box := arcAABB(v, w)
		gl.edges[i] = GeodesicEdge{
			vert:      v,
			next:      w,
			edgeCross: edgeCross,
			edgeDot:   v.Dot(w),
			aabb:      box,
		}

		if i == 0 {
			gl.aabb = box
		} else {
			gl.aabb = unionAABB(gl.aabb, box)
		}
		gl.rtree.Insert(&edgeSpatial{idx: i, rect: aabbToRect(box)})
	}

	return gl, E_SUCCESS
}

// candidateEdges returns the indices of edges whose AABB may intersect box,
// via an R-tree range query.
func (gl *GeodesicLoop) candidateEdges(box aabb3) []int {
	results := gl.rtree.SearchIntersect(aabbToRect(box))
	idxs := make([]int, len(results))
	for i, r := range results {
		idxs[i] = r.(*edgeSpatial).idx
	}
	return idxs
}

// GeodesicPolygon is a polygon expressed in geodesic form: an exterior loop,
// hole loops oriented oppositely, and a polygon-wide AABB.
type GeodesicPolygon struct {
	exterior *GeodesicLoop
	holes    []*GeodesicLoop
	aabb     aabb3
}

// NewGeodesicPolygon builds the geodesic acceleration structure for a
// polygon. Fails with E_DOMAIN if the outer loop or any hole has no
// vertices.
func NewGeodesicPolygon(polygon *GeoPolygon) (*GeodesicPolygon, H3Error) {
	exterior, err := newGeodesicLoop(&polygon.geoloop)
	if err != E_SUCCESS {
		return nil, err
	}

	gp := &GeodesicPolygon{exterior: exterior, aabb: exterior.aabb}
	for i := range polygon.holes {
		hole, err := newGeodesicLoop(&polygon.holes[i])
		if err != E_SUCCESS {
			return nil, err
		}
		gp.holes = append(gp.holes, hole)
		gp.aabb = unionAABB(gp.aabb, hole.aabb)
	}
	return gp, E_SUCCESS
}

// capIntersectsPolygon is a conservative cap/polygon overlap test: it
// rejects only when the polygon's AABB cannot possibly meet the cap.
func (gp *GeodesicPolygon) capIntersectsPolygon(cap SphereCap) bool {
	return aabbIntersectsCap(gp.aabb, cap)
}

// greatCircleArcsIntersect tests whether great-circle arcs (v1,w1) and
// (v2,w2) cross, per the plane-normal intersection construction.
func greatCircleArcsIntersect(v1, w1, v2, w2 r3.Vector) bool {
	n1 := v1.Cross(w1)
	n2 := v2.Cross(w2)
	n1n, n2n := n1.Norm(), n2.Norm()
	if n1n < 1e-15 || n2n < 1e-15 {
		return false
	}
	n1 = n1.Mul(1 / n1n)
	n2 = n2.Mul(1 / n2n)

	onArc := func(p, a, b r3.Vector) bool {
		// p lies on the arc a->b iff it is on the same side of both
		// endpoint-bounding planes through the great circle's normal.
		abn := a.Cross(b)
		return abn.Dot(a.Cross(p)) >= -1e-12 && abn.Dot(p.Cross(b)) >= -1e-12
	}

	if math.Abs(n1.Dot(n2)) > 1-1e-12 {
		// Nearly coplanar great circles; treat overlapping arcs as
		// intersecting, disjoint ones as not.
		return onArc(v2, v1, w1) || onArc(w2, v1, w1) ||
			onArc(v1, v2, w2) || onArc(w1, v2, w2)
	}

	c := n1.Cross(n2)
	if c.Norm() < 1e-15 {
		return false
	}
	c = c.Normalize()

	for _, cand := range [2]r3.Vector{c, c.Mul(-1)} {
		if onArc(cand, v1, w1) && onArc(cand, v2, w2) {
			return true
		}
	}
	return false
}

// boundaryIntersectsPolygon reports whether any segment of the cell
// boundary crosses any edge of the polygon (outer loop or holes).
func (gp *GeodesicPolygon) boundaryIntersectsPolygon(boundary []r3.Vector) bool {
	loops := append([]*GeodesicLoop{gp.exterior}, gp.holes...)
	n := len(boundary)
	for i := 0; i < n; i++ {
		v := boundary[i]
		w := boundary[(i+1)%n]
		box := arcAABB(v, w)
		for _, loop := range loops {
			for _, idx := range loop.candidateEdges(box) {
				e := loop.edges[idx]
				if greatCircleArcsIntersect(v, w, e.vert, e.next) {
					return true
				}
			}
		}
	}
	return false
}

// pointInGeodesicLoop tests point-in-loop on the sphere by great-circle
// ray casting from p to the loop's centroid antipode, counting crossings.
func pointInGeodesicLoop(loop *GeodesicLoop, p r3.Vector) bool {
	if loop.centroid.Dot(p) < -1+1e-9 {
		// p is essentially antipodal to the loop's centroid: treat the
		// degenerate great-circle ray as a miss (outside).
		return false
	}

	antipode := loop.centroid.Mul(-1)
	target := antipode
	if p.Cross(antipode).Norm() < 1e-12 {
		// p sits on the centroid, so every great circle through p reaches
		// the antipode; aim slightly off it to fix the ray's plane.
		target = antipode.Add(antipode.Ortho().Mul(1e-6)).Normalize()
	}
	box := arcAABB(p, target)
	crossings := 0
	for _, idx := range loop.candidateEdges(box) {
		e := loop.edges[idx]
		if greatCircleArcsIntersect(p, target, e.vert, e.next) {
			crossings++
		}
	}
	return crossings%2 == 1
}

// pointInGeodesicPolygon reports whether p is inside the polygon's exterior
// loop and outside every hole.
func (gp *GeodesicPolygon) pointInGeodesicPolygon(p r3.Vector) bool {
	if !pointInGeodesicLoop(gp.exterior, p) {
		return false
	}
	for _, hole := range gp.holes {
		if pointInGeodesicLoop(hole, p) {
			return false
		}
	}
	return true
}

// boundaryInsideGeodesicPolygon reports whether every vertex of boundary is
// inside the geodesic polygon and no polygon edge crosses the boundary.
func (gp *GeodesicPolygon) boundaryInsideGeodesicPolygon(boundary []r3.Vector) bool {
	for _, v := range boundary {
		if !gp.pointInGeodesicPolygon(v) {
			return false
		}
	}
	return !gp.boundaryIntersectsPolygon(boundary)
}
