package handlers

import (
	"net/http"

	"github.com/dom/qna-service/internal/api/apierror"
	"github.com/dom/qna-service/internal/domain"
	"github.com/dom/qna-service/internal/service"
	"github.com/sirupsen/logrus"
)

type QuestionHandler struct {
	questions *service.QuestionService
	answers   *service.AnswerService
	log       logrus.FieldLogger
}

func NewQuestionHandler(questions *service.QuestionService, answers *service.AnswerService, log logrus.FieldLogger) *QuestionHandler {
	return &QuestionHandler{questions: questions, answers: answers, log: log}
}

func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.NewQuestion
	if err := decodeJSON(r, &req); err != nil {
		apierror.Write(w, r, h.log, err)
		return
	}

	question, err := h.questions.Add(r.Context(), req)
	if err != nil {
		apierror.Write(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, question)
}

func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := pagination(r)
	if err != nil {
		apierror.Write(w, r, h.log, err)
		return
	}

	questions, err := h.questions.List(r.Context(), page)
	if err != nil {
		apierror.Write(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, questions)
}

func (h *QuestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := questionIDParam(r)
	if err != nil {
		apierror.Write(w, r, h.log, err)
		return
	}

	question, err := h.questions.Get(r.Context(), id)
	if err != nil {
		apierror.Write(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, question)
}

func (h *QuestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := questionIDParam(r)
	if err != nil {
		apierror.Write(w, r, h.log, err)
		return
	}

	var req domain.Question
	if err := decodeJSON(r, &req); err != nil {
		apierror.Write(w, r, h.log, err)
		return
	}

	question, err := h.questions.Update(r.Context(), id, req)
	if err != nil {
		apierror.Write(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, question)
}

func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := questionIDParam(r)
	if err != nil {
		apierror.Write(w, r, h.log, err)
		return
	}

	if err := h.questions.Delete(r.Context(), id); err != nil {
		apierror.Write(w, r, h.log, err)
		return
	}

	writeText(w, http.StatusOK, "Question Deleted")
}

func (h *QuestionHandler) Answers(w http.ResponseWriter, r *http.Request) {
	id, err := questionIDParam(r)
	if err != nil {
		apierror.Write(w, r, h.log, err)
		return
	}

	answers, err := h.answers.ListByQuestion(r.Context(), id)
	if err != nil {
		apierror.Write(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, answers)
}
