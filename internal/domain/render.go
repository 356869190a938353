package domain

// RenderOptions are the page settings handed to a PDF renderer.
type RenderOptions struct {
	PageSize        string
	Scale           float64
	PrintBackground bool
}

// DefaultRenderOptions is a one-page A4 print with backgrounds.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{PageSize: "A4", Scale: 1.0, PrintBackground: true}
}
