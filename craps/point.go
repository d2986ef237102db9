package craps

import "strconv"

// Point is the established point number, or PointOff during come-out.
type Point int

// PointOff means no point is established.
const PointOff Point = 0

// On reports whether a point is established.
func (p Point) On() bool {
	return p != PointOff
}

func (p Point) String() string {
	if p == PointOff {
		return "off"
	}
	return strconv.Itoa(int(p))
}

// Advance returns the point after a roll totalling sum:
//
//	Off    --(4,5,6,8,9,10)--> PointN
//	PointN --(N or 7)--------> Off
//
// All other sums leave the point unchanged.
func (p Point) Advance(sum int) Point {
	if p == PointOff {
		if IsPointNumber(sum) {
			return Point(sum)
		}
		return PointOff
	}
	if sum == int(p) || sum == 7 {
		return PointOff
	}
	return p
}
