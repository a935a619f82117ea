package grpcserver

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oksasatya/go-blog-platform/internal/domain/entity"
)

// statusFromError translates domain errors into gRPC statuses. Anything
// unrecognized collapses to INTERNAL with a generic message so storage
// details never reach the wire.
func statusFromError(err error) error {
	switch {
	case errors.Is(err, entity.ErrUserNotFound), errors.Is(err, entity.ErrPostNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, entity.ErrUserAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, entity.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, entity.ErrForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, entity.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
