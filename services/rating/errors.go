package rating

import "tillpoint/utils"

// Error types shared across the service layer.
type (
	ValidationError = utils.ValidationError
	NotFoundError   = utils.NotFoundError
	ConflictError   = utils.ConflictError
)
