package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/api-sage/mortgage-quote-service/src/internal/commons"
	"github.com/api-sage/mortgage-quote-service/src/internal/domain"
	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

const (
	msgInvalidBody   = "Cuerpo de solicitud inválido"
	msgInvalidID     = "Identificador inválido"
	msgUnexpected    = "Ocurrió un error inesperado, intente nuevamente"
	msgNotFound      = "Recurso no encontrado"
	msgMethodBlocked = "Método no permitido"
	msgMalformedJSON = "El cuerpo debe ser un JSON válido"
	msgEmptyBody     = "El cuerpo de la solicitud está vacío"
	msgBodyTooLarge  = "El cuerpo de la solicitud es demasiado grande"
)

var errEmptyBody = errors.New("empty request body")

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusFor classifies service errors. Anything unclassified is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// failurePayload replaces the message of unexpected failures so internal
// error text never reaches the client.
func failurePayload[T any](status int, response commons.Response[T]) commons.Response[T] {
	if status == http.StatusInternalServerError || response.Message == "" {
		return commons.ErrorResponse[T](msgUnexpected)
	}
	return response
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	return nil
}

// decodeErrors describes a decode failure in client terms. The decoder's own
// text names Go types and stays in the logs.
func decodeErrors(err error) []string {
	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, errEmptyBody):
		return []string{msgEmptyBody}
	case errors.As(err, &maxErr):
		return []string{msgBodyTooLarge}
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return []string{fmt.Sprintf("El campo %s tiene un formato inválido", typeErr.Field)}
	default:
		return []string{msgMalformedJSON}
	}
}

func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// MethodNotAllowed and NotFound keep router level failures in the
// response envelope.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	response := commons.ErrorResponse[any](msgMethodBlocked)
	writeJSON(w, http.StatusMethodNotAllowed, response)
	logResponse(r, http.StatusMethodNotAllowed, response, start)
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	response := commons.ErrorResponse[any](msgNotFound)
	writeJSON(w, http.StatusNotFound, response)
	logResponse(r, http.StatusNotFound, response, start)
}
