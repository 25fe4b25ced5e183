package chart

// Window computes the index range [start, end) of the visible tail of a
// buffered stream: the most recent displayPoints entries, or the whole
// stream when fewer are buffered. displayPoints <= 0 yields an empty window.
func Window(total, displayPoints int) (start, end int) {
	if total < 0 {
		total = 0
	}
	if displayPoints <= 0 {
		return total, total
	}
	start = total - displayPoints
	if start < 0 {
		start = 0
	}
	return start, total
}
