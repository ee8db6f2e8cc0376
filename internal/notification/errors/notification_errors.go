package notificationerrors

import (
	"net/http"

	"github.com/jyhens/Layer2-Application/internal/shared/apperror"
)

var (
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrOtherUserForbidden = apperror.New(
		apperror.CodeForbidden,
		"only admins may read notifications of other users",
		http.StatusForbidden,
	)
	ErrIDsRequired = apperror.New(
		apperror.CodeInvalidInput,
		"ids must not be empty",
		http.StatusBadRequest,
	)
	ErrInvalidNotificationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid notification id",
		http.StatusBadRequest,
	)
	ErrMarkOthersForbidden = apperror.New(
		apperror.CodeForbidden,
		"you can only mark your own notifications as read",
		http.StatusForbidden,
	)
)
