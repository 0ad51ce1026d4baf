package activity

// ListOptions provides filtering options for listing activity.
type ListOptions struct {
	EntityType string
	EntityID   string
	Limit      int
}
