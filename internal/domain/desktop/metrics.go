package desktop

// Metrics receives desktop activity counters
type Metrics interface {
	WindowOpened(kind string)
	WindowClosed(kind string)
	WindowOp(op string)
	DragUpdate()
	ScenePublished()
}

type nopMetrics struct{}

func (nopMetrics) WindowOpened(string) {}
func (nopMetrics) WindowClosed(string) {}
func (nopMetrics) WindowOp(string)     {}
func (nopMetrics) DragUpdate()         {}
func (nopMetrics) ScenePublished()     {}
