package handlers

import (
	"net/http"

	"github.com/dom/qna-service/internal/api/apierror"
	"github.com/dom/qna-service/internal/api/middleware"
	"github.com/dom/qna-service/internal/domain"
	"github.com/dom/qna-service/internal/service"
	"github.com/sirupsen/logrus"
)

type AnswerHandler struct {
	answers *service.AnswerService
	log     logrus.FieldLogger
}

func NewAnswerHandler(answers *service.AnswerService, log logrus.FieldLogger) *AnswerHandler {
	return &AnswerHandler{answers: answers, log: log}
}

func (h *AnswerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.NewAnswer
	if err := decodeJSON(r, &req); err != nil {
		apierror.Write(w, r, h.log, err)
		return
	}

	answer, err := h.answers.Add(r.Context(), req)
	if err != nil {
		apierror.Write(w, r, h.log, err)
		return
	}

	if session, ok := middleware.GetSession(r.Context()); ok {
		h.log.WithFields(logrus.Fields{
			"account_id":  session.AccountID,
			"question_id": answer.QuestionID,
			"answer_id":   answer.ID,
		}).Debug("answer added")
	}

	writeJSON(w, http.StatusOK, answer)
}
