package country

// Country is an upstream category: a nation or a pseudo-country such as the
// international groupings.
type Country struct {
	ID   int64
	Name string
}
