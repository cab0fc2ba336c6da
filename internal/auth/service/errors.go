package service

import (
	"net/http"

	commonerrors "github.com/asafonov/blog-backend/internal/common/errors"
)

var (
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid credentials",
	)

	// ErrEmailTaken is returned both by the pre-check and by the translated
	// unique-index rejection, so concurrent registrations surface the same
	// error either way.
	ErrEmailTaken = commonerrors.NewDomainError(
		"EMAIL_ALREADY_IN_USE",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"email already in use",
	)

	ErrPasswordHashFailed = commonerrors.NewDomainError(
		"PASSWORD_HASH_FAILED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"failed to hash password",
	)

	ErrUserLookupFailed = commonerrors.NewDomainError(
		"USER_LOOKUP_FAILED",
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		"failed to fetch user",
	)

	ErrUserCreateFailed = commonerrors.NewDomainError(
		"USER_CREATE_FAILED",
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		"failed to create user",
	)

	ErrTokenIssueFailed = commonerrors.NewDomainError(
		"TOKEN_ISSUE_FAILED",
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		"failed to issue token",
	)
)
