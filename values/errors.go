// File: values/errors.go
// Author: momentics <momentics@gmail.com>
package values

import "github.com/momentics/bolt-core/api"

func errInvalidArgument(msg string) error {
	return api.NewError(api.ErrCodeInvalidArgument, msg)
}

func errInvalidMapKeyType() error {
	return api.NewError(api.ErrCodeInvalidMapKeyType, "map keys must be String values")
}

func errInvalidLabelType() error {
	return api.NewError(api.ErrCodeInvalidLabelType, "node labels must be String values")
}

func errInvalidPathNodeType() error {
	return api.NewError(api.ErrCodeInvalidPathNodeType, "path nodes must be Node values")
}

func errInvalidPathRelationshipType() error {
	return api.NewError(api.ErrCodeInvalidPathRelationshipType, "path relationships must be Relationship values")
}

func errInvalidPathSequenceLength() error {
	return api.NewError(api.ErrCodeInvalidPathSequenceLength, "path sequence must have even length")
}

func errInvalidPathSequenceIdxType() error {
	return api.NewError(api.ErrCodeInvalidPathSequenceIdxType, "path sequence indices must be Integer values")
}

func errInvalidPathSequenceIdxRange() error {
	return api.NewError(api.ErrCodeInvalidPathSequenceIdxRange, "path sequence index out of range")
}
