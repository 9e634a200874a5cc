package handler

import (
	"net/http"

	"github.com/Eursukkul/doctor-booking/internal/dto"
	"github.com/Eursukkul/doctor-booking/internal/service"
	"github.com/labstack/echo/v4"
)

type DoctorHandler struct {
	svc service.DoctorService
}

func NewDoctorHandler(svc service.DoctorService) *DoctorHandler {
	return &DoctorHandler{svc: svc}
}

func (h *DoctorHandler) RegisterRoutes(e *echo.Echo) {
	doctors := e.Group("/api/v1/doctor")
	doctors.GET("", h.ListDoctors)
	doctors.GET("/:id", h.GetDoctor)
}

func (h *DoctorHandler) ListDoctors(c echo.Context) error {
	doctors, err := h.svc.ListDoctors(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		resp[i] = dto.ToDoctorResponse(&doctors[i])
	}
	return c.JSON(http.StatusOK, resp)
}

// GetDoctor answers 200 with an empty doctor when the id is unknown.
func (h *DoctorHandler) GetDoctor(c echo.Context) error {
	doctor, err := h.svc.GetDoctor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToDoctorResponse(&doctor))
}
