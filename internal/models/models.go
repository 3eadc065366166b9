// package models defines the data model for the movie catalog and its users
package models

// Model defines the base interface for the entities kept by the stores.
type Model interface {
	Key() string     // Key returns the identity used for uniqueness checks
	Validate() error // Validate checks if the model's data is valid and returns an error if not
}

var (
	_ Model = (*Movie)(nil)
	_ Model = (*Credential)(nil)
	_ Model = (*MirroredMovie)(nil)
)
