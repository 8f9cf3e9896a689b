package controller

import "github.com/labstack/echo/v4"

type QuestionController interface {
	AddQuestions(c echo.Context) error
	RetrieveQuestionsCompanyWise(c echo.Context) error
	GetAllCompanyNames(c echo.Context) error
}
