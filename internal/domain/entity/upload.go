package entity

// FileUpload is a file received from a client, held in memory until stored.
type FileUpload struct {
	Filename string
	Content  []byte
}

// IsEmpty reports whether no file was provided.
func (f *FileUpload) IsEmpty() bool {
	return f == nil || len(f.Content) == 0
}
