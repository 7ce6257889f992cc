package types

// PositionRequest is the body of a programmatic reposition
type PositionRequest struct {
	X *int `json:"x" binding:"required"`
	Y *int `json:"y" binding:"required"`
}

// Point returns the requested position
func (r PositionRequest) Point() Point {
	return Point{X: *r.X, Y: *r.Y}
}

// SizeRequest is the body of a programmatic resize
type SizeRequest struct {
	Width  int `json:"width" binding:"required"`
	Height int `json:"height" binding:"required"`
}

// Size returns the requested size
func (r SizeRequest) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}
