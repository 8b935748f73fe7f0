package service

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// parseID converts a hex id from the api layer, naming what it identifies on failure.
func parseID(hex, what string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid %s id %q", ErrInvalidInput, what, hex)
	}
	return id, nil
}
