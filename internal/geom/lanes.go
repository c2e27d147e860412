package geom

// laneWidth is the slider-units of conduit width consumed per lane. With
// width parameters ranging 10..100 this yields 1 to 5 lanes.
const laneWidth = 20.0

// Lanes returns the number of parallel lanes for a conduit width parameter.
func Lanes(width float64) int {
	n := int(width / laneWidth)
	if n < 1 {
		n = 1
	}
	return n
}

// LaneOffset returns the signed perpendicular offset from the centerline for
// entity id among count entities, on a conduit rendered stroke units wide.
// Entities fan out across the lanes by id modulo the lane count, centered so
// the middle lane sits on the path. A single entity always rides the
// centerline.
func LaneOffset(id, count int, width, stroke float64) float64 {
	if count <= 1 {
		return 0
	}
	n := Lanes(width)
	if n == 1 {
		return 0
	}
	lane := id % n
	spacing := stroke / float64(n+1)
	return (float64(lane) - float64(n-1)/2) * spacing
}
