package model

// Upload is an incoming file before it becomes a Document.
type Upload struct {
	Data         []byte
	OriginalName string
	ContentType  string
}
