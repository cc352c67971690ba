// Mock API HTTP handlers.
//
// This file exposes the HIS mock endpoints:
//   - POST /login               (fixed credential check)
//   - GET  /getDoctorSchedule   (random doctor profile)
//   - GET  /getAppointment      (memoized per-patient appointments)
//   - GET  /getPatient          (fixture lookup)
//
// Handlers are transport-thin: they read parameters, call services, and map
// results and sentinel errors to the response envelope.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/his-mockup-api/internal/domain"
	"github.com/tbourn/his-mockup-api/internal/http/middleware"
	"github.com/tbourn/his-mockup-api/internal/services"
)

//
// Service contracts (context-aware)
//

// AppointmentService lists memoized appointments for a date.
type AppointmentService interface {
	// List validates rawDate (YYYY-MM-DD) and returns the appointments of all
	// patients that have one, in patient table order.
	List(ctx context.Context, rawDate string) ([]domain.Appointment, error)
}

// DoctorService builds random doctor profiles.
type DoctorService interface {
	Schedule(ctx context.Context) domain.DoctorProfile
}

// PatientService resolves fixture patients.
type PatientService interface {
	Find(ctx context.Context, id string) (domain.Patient, error)
}

// AuthService checks login credentials.
type AuthService interface {
	Login(ctx context.Context, username string, password *string) (domain.StaffProfile, error)
}

//
// Handler wiring
//

// Handlers groups the mock API endpoints. It depends on abstract service
// interfaces to keep transport concerns separate from mock data logic.
type Handlers struct {
	apptSvc    AppointmentService
	doctorSvc  DoctorService
	patientSvc PatientService
	authSvc    AuthService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(appt AppointmentService, doctor DoctorService, patient PatientService, auth AuthService) *Handlers {
	return &Handlers{apptSvc: appt, doctorSvc: doctor, patientSvc: patient, authSvc: auth}
}

//
// DTOs
//

// LoginRequest is the JSON payload for POST /login. Password is a pointer so
// an explicit empty password can be told apart from a missing one.
type LoginRequest struct {
	Username string  `json:"username" example:"admin"`
	Password *string `json:"password" example:"admin1234"`
}

// HealthResponse is the static liveness payload.
type HealthResponse struct {
	Status  string `json:"status"  example:"ok"`
	Message string `json:"message" example:"HIS Mockup API is running"`
}

//
// Handlers
//

// Health godoc
// @ID          health
// @Summary     Liveness probe
// @Tags        System
// @Produce     json
// @Success     200  {object}  handlers.HealthResponse
// @Router      /health [get]
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Message: "HIS Mockup API is running"})
}

// Login godoc
// @ID          login
// @Summary     Log in
// @Description สิทธิ์การเข้าสู่ระบบผู้ใช้งาน. Accepts only admin / admin1234.
// @Tags        Authentication
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.LoginRequest  true  "Credentials"
// @Success     200   {object}  handlers.Envelope{data=domain.StaffProfile}
// @Failure     400   {object}  handlers.Envelope  "Missing username or password"
// @Failure     401   {object}  handlers.Envelope  "Unauthorized"
// @Failure     500   {object}  handlers.Envelope  "Undecodable body or internal error"
// @Router      /login [post]
func (h *Handlers) Login(c *gin.Context) {
	// Decoded loosely so a non-string credential is a mismatch, not a bind error.
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusInternalServerError, err.Error(), emptyObject())
		return
	}
	if body == nil {
		fail(c, http.StatusInternalServerError, errBodyNotObject.Error(), emptyObject())
		return
	}

	username, _ := credential(body, "username")
	var password *string
	if v, present := credential(body, "password"); present {
		password = &v
	}

	profile, err := h.authSvc.Login(c.Request.Context(), username, password)
	switch {
	case err == nil:
		ok(c, profile)
	case errors.Is(err, services.ErrMissingCredentials):
		fail(c, http.StatusBadRequest, DescMissingCredentials, emptyObject())
	case errors.Is(err, services.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, "", emptyObject())
	default:
		fail(c, http.StatusInternalServerError, err.Error(), emptyObject())
	}
}

// credential returns body[key] as a string. Absent and null values report
// false; other non-string values are rendered with fmt.Sprint.
func credential(body map[string]any, key string) (string, bool) {
	switch v := body[key].(type) {
	case nil:
		return "", false
	case string:
		return v, true
	default:
		return fmt.Sprint(v), true
	}
}

// GetDoctorSchedule godoc
// @ID          getDoctorSchedule
// @Summary     Random doctor with schedule
// @Description ข้อมูลแพทย์และข้อมูลการออกตรวจของแพทย์. Every call returns a new random doctor.
// @Tags        Doctor
// @Produce     json
// @Success     200  {object}  handlers.Envelope{data=domain.DoctorProfile}
// @Router      /getDoctorSchedule [get]
func (h *Handlers) GetDoctorSchedule(c *gin.Context) {
	ok(c, h.doctorSvc.Schedule(c.Request.Context()))
}

// GetAppointment godoc
// @ID          getAppointment
// @Summary     Appointments by date
// @Description ข้อมูลการนัดหมาย. Each patient's appointment is generated on first request and then stays the same for the life of the process, whatever date is asked for later.
// @Tags        Appointment
// @Produce     json
// @Param       appointmentDatetime  query     string  true  "Appointment date (YYYY-MM-DD)"  example(2025-01-10)
// @Success     200                  {object}  handlers.Envelope{data=[]domain.Appointment}
// @Failure     400                  {object}  handlers.Envelope  "Missing or malformed date"
// @Router      /getAppointment [get]
func (h *Handlers) GetAppointment(c *gin.Context) {
	appts, err := h.apptSvc.List(c.Request.Context(), c.Query("appointmentDatetime"))
	switch {
	case err == nil:
		lg := middleware.LoggerFrom(c)
		lg.Debug().Int("count", len(appts)).Msg("appointments listed")
		ok(c, appts)
	case errors.Is(err, services.ErrMissingDate):
		fail(c, http.StatusBadRequest, DescMissingDate, emptyList())
	case errors.Is(err, services.ErrInvalidDate):
		fail(c, http.StatusBadRequest, DescInvalidDate, emptyList())
	default:
		fail(c, http.StatusInternalServerError, err.Error(), emptyList())
	}
}

// GetPatient godoc
// @ID          getPatient
// @Summary     Patient lookup
// @Description Finds a patient by national id, passport number, or HN.
// @Tags        Patient
// @Produce     json
// @Param       id   query     string  true  "National id, passport number, or HN"  example(00-00-00001)
// @Success     200  {object}  handlers.Envelope{data=domain.Patient}
// @Failure     400  {object}  handlers.Envelope  "Missing id parameter"
// @Failure     404  {object}  handlers.Envelope  "Patient does not exist"
// @Router      /getPatient [get]
func (h *Handlers) GetPatient(c *gin.Context) {
	p, err := h.patientSvc.Find(c.Request.Context(), c.Query("id"))
	switch {
	case err == nil:
		ok(c, p)
	case errors.Is(err, services.ErrMissingPatientID):
		fail(c, http.StatusBadRequest, DescMissingPatientID, emptyObject())
	case errors.Is(err, services.ErrPatientNotFound):
		fail(c, http.StatusNotFound, DescPatientNotFound, emptyObject())
	default:
		fail(c, http.StatusInternalServerError, err.Error(), emptyObject())
	}
}
