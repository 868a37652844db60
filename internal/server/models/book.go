package models

// Book is an e-book known to the platform. Path points at the stored epub;
// serving the bytes is outside this service.
type Book struct {
	ID   string
	Name string
	Path string
}
