package submission

// ListOptions filters report and review listings. Nil week/year fields
// match any value; week numbers outside 1-53 can legitimately occur at
// year boundaries, hence pointers instead of zero sentinels.
type ListOptions struct {
	ProjectID  string
	WeekNumber *int
	Year       *int
	Limit      int
}
