package order

// Direction is the sort direction.
type Direction string

// Direction constants.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Default is used when the caller does not choose a direction.
const Default = Asc

// IsValid checks if the direction is one of the supported values.
func (d Direction) IsValid() bool {
	return d == Asc || d == Desc
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}
