package recruitmenterrors

import (
	"net/http"

	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/shared/apperror"
)

var (
	ErrInvalidCandidateID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid candidate id",
		http.StatusBadRequest,
	)
	ErrCandidateNotFound = apperror.New(
		apperror.CodeNotFound,
		"candidate not found",
		http.StatusNotFound,
	)
	ErrInvalidStage = apperror.New(
		apperror.CodeInvalidInput,
		"invalid pipeline stage",
		http.StatusBadRequest,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"candidate cannot move to this stage",
		http.StatusUnprocessableEntity,
	)
	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"a candidate with this email already exists",
		http.StatusConflict,
	)
	ErrNotHired = apperror.New(
		apperror.CodeInvalidState,
		"only hired candidates can be converted to employees",
		http.StatusUnprocessableEntity,
	)
)
