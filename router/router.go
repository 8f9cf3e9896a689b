package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func New(
	e *echo.Echo,
	questionCtrl interface {
		AddQuestions(echo.Context) error
		RetrieveQuestionsCompanyWise(echo.Context) error
		GetAllCompanyNames(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "Backend is running...") })
	e.GET("/health", healthCtrl.Health)

	q := e.Group("/api/v1/question")
	q.POST("/addQuestions", questionCtrl.AddQuestions)
	q.POST("/retrieveQuestionsCompanyWise", questionCtrl.RetrieveQuestionsCompanyWise)
	q.POST("/getAllCompanyNames", questionCtrl.GetAllCompanyNames)
	q.GET("/getAllCompanyNames", questionCtrl.GetAllCompanyNames)
	return e
}
