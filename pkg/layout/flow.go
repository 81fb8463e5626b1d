package layout

import "github.com/matzehuels/oldglory/pkg/geom"

// FloatLeft positions boxes the way CSS float:left positions siblings.
//
// Each box keeps its size. The first box goes to (0,0); every following box
// goes immediately right of its predecessor, level with the predecessor's
// top. When that would push its right edge past containerWidth the box
// starts a new line at x=0 and y = line*height, where line counts the wraps
// so far. Placement depends only on the predecessor, so boxes are never
// reordered or reflowed. Origins are rewritten in place.
func FloatLeft(boxes []geom.Rect, containerWidth float64) {
	var line float64
	for i := range boxes {
		boxes[i].Origin = geom.Point{}
		if i == 0 {
			continue
		}

		prev := boxes[i-1]
		floated := boxes[i].Offset(prev.MaxX(), prev.MinY())
		if floated.MaxX() > containerWidth {
			line++
			floated.Origin = geom.Pt(0, line*floated.Height())
		}
		boxes[i] = floated
	}
}
