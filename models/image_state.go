package models

// ImageState is the load state of a proxied bean image.
// A single value replaces independent loading/error flags so that
// "loading and failed at the same time" cannot be represented.
type ImageState int

const (
	ImageLoading ImageState = iota
	ImageLoaded
	ImageFailed
)

func (s ImageState) String() string {
	switch s {
	case ImageLoading:
		return "loading"
	case ImageLoaded:
		return "loaded"
	case ImageFailed:
		return "failed"
	default:
		return "unknown"
	}
}
