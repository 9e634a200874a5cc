package handler

import (
	"net/http"

	"github.com/Eursukkul/doctor-booking/internal/service"
	"github.com/labstack/echo/v4"
)

type MasterHandler struct {
	svc service.MasterService
}

func NewMasterHandler(svc service.MasterService) *MasterHandler {
	return &MasterHandler{svc: svc}
}

func (h *MasterHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/master", h.FetchMasterData)
}

func (h *MasterHandler) FetchMasterData(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.FetchMasterData())
}
