package sortkey

// Key selects the attribute catalog results are ordered by.
type Key string

// Sort key constants.
const (
	// Name orders by lower-cased listing name.
	Name      Key = "name"
	Downloads Key = "downloads"
	// Date orders by creation time.
	Date Key = "date"
	// Size orders by file size, unknown sizes counting as 0.
	Size Key = "size"
)

// Default is used when the caller does not choose a key.
const Default = Name

// IsValid checks if the key is one of the supported values.
func (k Key) IsValid() bool {
	return k == Name || k == Downloads || k == Date || k == Size
}

// All returns the supported keys in display order.
func All() []Key {
	return []Key{Name, Downloads, Date, Size}
}
