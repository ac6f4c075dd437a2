package prescription

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-admin/internal/handler"
	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/service/prescription"
)

type Handler struct {
	service prescription.PrescriptionService
}

func NewHandler(service prescription.PrescriptionService) *Handler {
	return &Handler{service: service}
}

// PatientID is a pointer so required checks presence; 0 is a valid id.
type listQuery struct {
	PatientID *int64 `form:"patient_id" binding:"required"`
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	prescriptions := r.Group("/prescriptions")
	{
		prescriptions.POST("", h.CreatePrescription)
		prescriptions.GET("", h.ListPrescriptions)
		prescriptions.PATCH("/:patientID/:doctorID", h.UpdatePrescription)
		prescriptions.DELETE("/:patientID/:doctorID", h.DeletePrescription)
		prescriptions.GET("/:patientID/:doctorID/medications", h.GetMedications)
	}
}

func (h *Handler) CreatePrescription(c *gin.Context) {
	var req model.Prescription
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	if err := h.service.Create(c.Request.Context(), &req); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(req))
}

func (h *Handler) ListPrescriptions(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		handler.BindError(c, err)
		return
	}
	prescriptions, err := h.service.ByPatient(c.Request.Context(), model.ID(*q.PatientID))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(prescriptions))
}

func (h *Handler) UpdatePrescription(c *gin.Context) {
	patientID, doctorID, ok := parsePair(c)
	if !ok {
		return
	}
	var req model.UpdatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	outcome, err := h.service.Edit(c.Request.Context(), patientID, doctorID, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	handler.RespondOutcome(c, outcome, "prescription")
}

func (h *Handler) DeletePrescription(c *gin.Context) {
	patientID, doctorID, ok := parsePair(c)
	if !ok {
		return
	}
	outcome, err := h.service.Delete(c.Request.Context(), patientID, doctorID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	handler.RespondOutcome(c, outcome, "prescription")
}

func (h *Handler) GetMedications(c *gin.Context) {
	patientID, doctorID, ok := parsePair(c)
	if !ok {
		return
	}
	meds, err := h.service.Medications(c.Request.Context(), patientID, doctorID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	handler.RespondFound(c, meds != nil, meds, "prescription")
}

func parsePair(c *gin.Context) (model.ID, model.ID, bool) {
	patientID, ok := handler.ParseID(c, "patientID")
	if !ok {
		return 0, 0, false
	}
	doctorID, ok := handler.ParseID(c, "doctorID")
	if !ok {
		return 0, 0, false
	}
	return patientID, doctorID, true
}
