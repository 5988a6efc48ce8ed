package window

// WindowBuilderOption is a functional option for configuring a window before
// it opens.
type WindowBuilderOption func(w *vizWindow)

// WithTitle sets the window title.
//
// Parameters:
//   - title: the title bar text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *vizWindow) {
		w.title = title
	}
}

// WithWidth sets the initial window width.
//
// Parameters:
//   - width: initial width in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width int) WindowBuilderOption {
	return func(w *vizWindow) {
		if width > 0 {
			w.width = width
		}
	}
}

// WithHeight sets the initial window height.
//
// Parameters:
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height int) WindowBuilderOption {
	return func(w *vizWindow) {
		if height > 0 {
			w.height = height
		}
	}
}

// WithSizeLimits bounds interactive resizing. Both pairs must be positive and
// ordered min <= max; invalid pairs are ignored.
//
// Parameters:
//   - minWidth: minimum width in pixels
//   - minHeight: minimum height in pixels
//   - maxWidth: maximum width in pixels
//   - maxHeight: maximum height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *vizWindow) {
		if minWidth > 0 && maxWidth >= minWidth {
			w.minWidth, w.maxWidth = minWidth, maxWidth
		}
		if minHeight > 0 && maxHeight >= minHeight {
			w.minHeight, w.maxHeight = minHeight, maxHeight
		}
	}
}
