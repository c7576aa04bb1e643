package activity

// ListOptions provides filtering options for listing activity. Entries are
// always returned newest first.
type ListOptions struct {
	ProjectID string
	Type      *Type
	Limit     int
}
