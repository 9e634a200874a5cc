package handler

import (
	"net/http"

	"github.com/Eursukkul/doctor-booking/internal/dto"
	"github.com/Eursukkul/doctor-booking/internal/middleware"
	"github.com/Eursukkul/doctor-booking/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// RegisterRoutes mounts the booking routes; mw must begin with the auth
// middleware that establishes the caller.
func (h *BookingHandler) RegisterRoutes(e *echo.Echo, mw ...echo.MiddlewareFunc) {
	bookings := e.Group("/api/v1/booking", mw...)
	bookings.GET("/myBookings", h.MyBookings)
	bookings.POST("", h.CreateBooking)
	bookings.PUT("/:id", h.UpdateBooking)
	bookings.DELETE("/:id", h.CancelBooking)
}

func (h *BookingHandler) MyBookings(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	bookings, err := h.svc.ListActiveBookings(c.Request().Context(), caller)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = dto.ToBookingResponse(&bookings[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	out := h.svc.CreateBooking(c.Request().Context(), service.CreateBookingInput{
		DoctorID:        req.DoctorID,
		Price:           req.Price,
		BookingClass:    req.BookingClass,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
	}, caller)

	return c.JSON(http.StatusCreated, dto.ToOutcomeResponse(out))
}

func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	var req dto.UpdateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	out := h.svc.UpdateBooking(c.Request().Context(), c.Param("id"), service.BookingPatch{
		Price:        req.Price,
		BookingClass: req.BookingClass,
	}, caller)

	return c.JSON(http.StatusOK, dto.ToOutcomeResponse(out))
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	out := h.svc.CancelBooking(c.Request().Context(), c.Param("id"), caller)
	return c.JSON(http.StatusOK, dto.ToOutcomeResponse(out))
}

func requireCaller(c echo.Context) (string, error) {
	caller := middleware.CallerFromContext(c)
	if caller == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	return caller, nil
}
