package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"purse/internal/client"
	"purse/internal/model"
	"purse/wallet"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps a failure to the local API's JSON error shape. Classified
// ledger errors keep their kind in the code field so the UI can branch.
func writeError(w http.ResponseWriter, err error) {
	var ce *client.Error
	if errors.As(err, &ce) {
		writeJSON(w, statusFor(ce.Kind), model.ErrorResponse{
			Error: ce.Message,
			Code:  codeFor(ce.Kind),
		})
		return
	}
	if errors.Is(err, wallet.ErrInvalidSecret) || errors.Is(err, wallet.ErrNoWallet) {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: err.Error()})
}

func statusFor(k client.Kind) int {
	switch k {
	case client.KindInvalidRequest:
		return http.StatusBadRequest
	case client.KindAuthExpired:
		return http.StatusUnauthorized
	case client.KindNotFound:
		return http.StatusNotFound
	case client.KindUnsupportedMedia:
		return http.StatusUnsupportedMediaType
	case client.KindNetwork, client.KindServer:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func codeFor(k client.Kind) string {
	switch k {
	case client.KindNetwork:
		return "NETWORK_ERROR"
	case client.KindInvalidRequest:
		return "INVALID_REQUEST"
	case client.KindAuthExpired:
		return "AUTH_EXPIRED"
	case client.KindNotFound:
		return "NOT_FOUND"
	case client.KindUnsupportedMedia:
		return "UNSUPPORTED_MEDIA_TYPE"
	case client.KindServer:
		return "SERVER_ERROR"
	default:
		return "REQUEST_ERROR"
	}
}
