package controllerImp

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"placement/pkg/question/controller"
	"placement/pkg/question/service"
)

type QuestionCtrl struct {
	svc    service.QuestionService
	logger *slog.Logger
}

func New(svc service.QuestionService, logger *slog.Logger) controller.QuestionController {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuestionCtrl{svc: svc, logger: logger}
}

type addQuestionsReq struct {
	Questions []service.CandidateQuestion `json:"questions"`
}

func (h *QuestionCtrl) AddQuestions(c echo.Context) error {
	var req addQuestionsReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Request body must contain a non-empty 'questions' array.")
	}

	res, err := h.svc.AddQuestions(c.Request().Context(), req.Questions)
	if errors.Is(err, service.ErrEmptyBatch) {
		return fail(c, http.StatusBadRequest, "Request body must contain a non-empty 'questions' array.")
	}
	if err != nil {
		h.logger.Error("add questions", "err", err)
		return fail(c, http.StatusInternalServerError,
			"Some unexpected problem happened while adding questions: "+err.Error())
	}

	if res.Partial() {
		return c.JSON(http.StatusMultiStatus, echo.Map{
			"success":         true,
			"message":         "Some questions were added successfully, but others failed or were duplicates.",
			"successCount":    len(res.Created),
			"failedCount":     len(res.Failures),
			"failedQuestions": res.Failures,
			"data":            res.Created,
		})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "All questions added successfully.",
		"data":    res.Created,
	})
}

type companyWiseReq struct {
	Company service.StringList `json:"company"`
}

func (h *QuestionCtrl) RetrieveQuestionsCompanyWise(c echo.Context) error {
	var req companyWiseReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "'company' (id or name) is required.")
	}

	out, err := h.svc.RetrieveByCompanies(c.Request().Context(), req.Company)
	switch {
	case errors.Is(err, service.ErrCompanyLookupRequired):
		return fail(c, http.StatusBadRequest, "'company' (id or name) is required.")
	case errors.Is(err, service.ErrNoCompanies):
		return fail(c, http.StatusNotFound, "No matching companies found.")
	case err != nil:
		h.logger.Error("retrieve company-wise questions", "err", err)
		return fail(c, http.StatusInternalServerError, "Error retrieving company-wise questions: "+err.Error())
	}

	if len(out.Questions) == 0 {
		return c.JSON(http.StatusOK, echo.Map{
			"success":   true,
			"message":   "Company found but has no questions.",
			"companies": out.Companies,
			"data":      out.Questions,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":        true,
		"companyCount":   len(out.Companies),
		"totalQuestions": len(out.Questions),
		"companies":      out.Companies,
		"data":           out.Questions,
	})
}

func (h *QuestionCtrl) GetAllCompanyNames(c echo.Context) error {
	names, err := h.svc.CompanyNames(c.Request().Context())
	if err != nil {
		h.logger.Error("list company names", "err", err)
		return fail(c, http.StatusInternalServerError, "Error retrieving company names: "+err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "total": len(names), "data": names})
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "message": msg})
}
