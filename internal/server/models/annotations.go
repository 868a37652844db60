package models

// AnnotationSet is one membership's private annotation container for one
// book. The pair (ClassUserID, BookID) is unique.
type AnnotationSet struct {
	ID          string
	ClassUserID string
	BookID      string
}

// Note is a single annotation anchored into book content by an epub CFI
// range expression.
type Note struct {
	ID              string
	AnnotationSetID string
	CfiRange        string
	Text            string
}
