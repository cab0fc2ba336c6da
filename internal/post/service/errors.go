package service

import (
	"net/http"

	commonerrors "github.com/asafonov/blog-backend/internal/common/errors"
)

var (
	ErrInvalidPostID = commonerrors.NewDomainError(
		"INVALID_POST_ID",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"invalid post id",
	)

	// ErrInvalidCallerID should not occur on the happy path: the caller
	// identity always originates from a previously valid user id. Seeing it
	// means the token subject and the storage id type disagree.
	ErrInvalidCallerID = commonerrors.NewDomainError(
		"INVALID_CALLER_ID",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"invalid user id",
	)

	ErrPostNotFound = commonerrors.NewDomainError(
		"POST_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"post not found",
	)

	ErrPostNotFoundAfterUpdate = commonerrors.NewDomainError(
		"POST_NOT_FOUND_AFTER_UPDATE",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"post not found after update",
	)

	ErrNotOwnerUpdate = commonerrors.NewDomainError(
		"NOT_POST_OWNER",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"not authorized to update this post",
	)

	ErrNotOwnerDelete = commonerrors.NewDomainError(
		"NOT_POST_OWNER",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"not authorized to delete this post",
	)

	ErrPostStorageFailed = commonerrors.NewDomainError(
		"POST_STORAGE_FAILED",
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		"post storage operation failed",
	)
)
