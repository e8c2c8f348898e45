package handlers

import (
	"net/http"

	"github.com/dom/qna-service/internal/api/apierror"
	"github.com/dom/qna-service/internal/domain"
	"github.com/dom/qna-service/internal/service"
	"github.com/samber/oops"
	"github.com/sirupsen/logrus"
)

type AccountHandler struct {
	accounts *service.AccountService
	log      logrus.FieldLogger
}

func NewAccountHandler(accounts *service.AccountService, log logrus.FieldLogger) *AccountHandler {
	return &AccountHandler{accounts: accounts, log: log}
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	creds, err := readCredentials(r)
	if err != nil {
		apierror.Write(w, r, h.log, err)
		return
	}

	if err := h.accounts.Register(r.Context(), creds); err != nil {
		apierror.Write(w, r, h.log, err)
		return
	}

	writeText(w, http.StatusOK, "Success")
}

// Login responds with the bare token as the body.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	creds, err := readCredentials(r)
	if err != nil {
		apierror.Write(w, r, h.log, err)
		return
	}

	token, err := h.accounts.Login(r.Context(), creds)
	if err != nil {
		apierror.Write(w, r, h.log, err)
		return
	}

	writeText(w, http.StatusOK, token)
}

func readCredentials(r *http.Request) (domain.Credentials, error) {
	var creds domain.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		return creds, err
	}
	if creds.Email == "" || creds.Password == "" {
		return creds, oops.Code("MISSING_PARAMETERS").
			With("required", []string{"email", "password"}).
			Wrap(domain.ErrMissingParameters)
	}
	return creds, nil
}
