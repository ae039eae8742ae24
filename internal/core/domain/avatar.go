package domain

// AvatarUpload is an uploaded file already spooled to a temporary path.
type AvatarUpload struct {
	TempPath     string
	OriginalName string
	Size         int64
}

// StoredObject identifies an object written to object storage.
type StoredObject struct {
	URL string
	Ref string
}
