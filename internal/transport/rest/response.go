package rest

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/heartmarshall/conduit-backend/internal/domain"
)

// errorEnvelope is the error body shape: {"errors": {field: [messages]}}.
// Non-field errors use the "body" key.
type errorEnvelope struct {
	Errors map[string][]string `json:"errors"`
}

func bodyError(message string) errorEnvelope {
	return errorEnvelope{Errors: map[string][]string{"body": {message}}}
}

// writeError renders a domain error as the envelope with the matching
// status code. Unrecognized errors become an opaque 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		fields := make(map[string][]string, len(vErr.Errors))
		for _, fe := range vErr.Errors {
			fields[fe.Field] = append(fields[fe.Field], fe.Message)
		}
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, errorEnvelope{Errors: fields})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, bodyError("not found"))
	case errors.Is(err, domain.ErrUnauthorized):
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, bodyError("unauthorized"))
	case errors.Is(err, domain.ErrForbidden):
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, bodyError("forbidden"))
	case errors.Is(err, domain.ErrAlreadyExists):
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, bodyError("already exists"))
	case errors.Is(err, domain.ErrInvalidOperation), errors.Is(err, domain.ErrValidation):
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, bodyError(err.Error()))
	default:
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, bodyError("internal server error"))
	}
}

// writeMalformed rejects an unparsable request body.
func writeMalformed(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusUnprocessableEntity)
	render.JSON(w, r, bodyError("unable to parse request"))
}
