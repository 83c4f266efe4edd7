package code

// apiserver: user errors.
const (
	// ErrUserNotFound - 404: User not found.
	ErrUserNotFound int = iota + 110001

	// ErrUserAlreadyExist - 409: User already exist.
	ErrUserAlreadyExist
)

// apiserver: product errors.
const (
	// ErrProductNotFound - 404: Product not found.
	ErrProductNotFound int = iota + 110101

	// ErrInvalidInventory - 400: Inventory quantity must not be negative.
	ErrInvalidInventory
)
