package models

// ImageRefKind tags the state of a menu item's picture. Admin edits either
// keep the remote URL, stage a freshly picked file for upload, or carry no
// image at all.
type ImageRefKind int

const (
	ImageAbsent ImageRefKind = iota
	ImageRemote
	ImagePendingUpload
)

// ImageRef is the tagged variant for the optional menu picture. Exactly one
// of URL / LocalPath is meaningful, selected by Kind.
type ImageRef struct {
	Kind      ImageRefKind
	URL       string // ImageRemote: path served by the backend, e.g. /images/menu/12.jpg
	LocalPath string // ImagePendingUpload: processed file staged on disk
}

func RemoteImage(url string) ImageRef {
	if url == "" {
		return ImageRef{Kind: ImageAbsent}
	}
	return ImageRef{Kind: ImageRemote, URL: url}
}

func PendingImage(path string) ImageRef {
	return ImageRef{Kind: ImagePendingUpload, LocalPath: path}
}
