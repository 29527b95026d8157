package ctrk

// gpsHistory holds the current and previous valid GPS fixes, used by the
// finish-line crossing test (§3, §4.7).
type gpsHistory struct {
	haveCurrent bool
	curX, curY  float64

	havePrevious bool
	prevX, prevY float64
}

// update records a new valid fix as current, demoting the old current to
// previous.
func (g *gpsHistory) update(x, y float64) {
	if g.haveCurrent {
		g.prevX, g.prevY = g.curX, g.curY
		g.havePrevious = true
	}
	g.curX, g.curY = x, y
	g.haveCurrent = true
}

// crossesFinishLine tests whether the segment from the previous fix to the
// current fix crosses the finish-line segment P1P2, using the standard
// four-sign orientation-triangle predicate with colinear degenerate cases
// resolved to "no crossing" (§4.7).
func (fl finishLine) crossesFinishLine(g gpsHistory) bool {
	if !fl.enabled || !g.haveCurrent || !g.havePrevious {
		return false
	}
	if isGPSSentinel(g.curX, g.curY) || isGPSSentinel(g.prevX, g.prevY) {
		return false
	}

	return segmentsIntersect(
		g.prevX, g.prevY, g.curX, g.curY,
		fl.p1x, fl.p1y, fl.p2x, fl.p2y,
	)
}

func isGPSSentinel(x, y float64) bool {
	return x == gpsUnset && y == gpsUnset
}

// orientation returns the sign of the cross product (b-a) x (c-a): positive
// for counter-clockwise, negative for clockwise, zero for colinear.
func orientation(ax, ay, bx, by, cx, cy float64) int {
	v := (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// segmentsIntersect is the standard orientation-based segment intersection
// test. Colinear (degenerate) overlap cases are resolved to "no crossing",
// so only the general four-sign case reports a crossing.
func segmentsIntersect(p1x, p1y, p2x, p2y, q1x, q1y, q2x, q2y float64) bool {
	o1 := orientation(p1x, p1y, p2x, p2y, q1x, q1y)
	o2 := orientation(p1x, p1y, p2x, p2y, q2x, q2y)
	o3 := orientation(q1x, q1y, q2x, q2y, p1x, p1y)
	o4 := orientation(q1x, q1y, q2x, q2y, p2x, p2y)

	if o1 != 0 && o2 != 0 && o3 != 0 && o4 != 0 {
		return o1 != o2 && o3 != o4
	}
	return false
}
