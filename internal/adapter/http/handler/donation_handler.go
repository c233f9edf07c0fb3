package handler

import (
	"io"
	"strings"

	"church-cms/internal/adapter/http/dto"
	"church-cms/internal/core/domain"
	"church-cms/internal/core/ports"
	"church-cms/pkg/apperror"
	"church-cms/pkg/pagination"
	"church-cms/pkg/response"

	"github.com/gin-gonic/gin"
)

// HeaderWebhookSignature carries the gateway's HMAC of the raw body.
const HeaderWebhookSignature = "verif-hash"

// DonationHandler handles /api/donations.
type DonationHandler struct {
	svc           ports.DonationService
	publicBaseURL string
}

// NewDonationHandler creates a new DonationHandler. publicBaseURL is where
// the gateway sends donors back to; when empty it is derived per request.
func NewDonationHandler(svc ports.DonationService, publicBaseURL string) *DonationHandler {
	return &DonationHandler{svc: svc, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

// Initialize handles POST /api/donations/initialize.
func (h *DonationHandler) Initialize(c *gin.Context) {
	var req dto.InitializeDonationRequest
	if !bind(c, &req) {
		return
	}
	result, err := h.svc.Initialize(c.Request.Context(), ports.InitializeDonationRequest{
		Amount:      req.Amount,
		Email:       req.Email,
		FullName:    req.FullName,
		Purpose:     req.Purpose,
		Message:     req.Message,
		IsRecurring: req.IsRecurring,
		BaseURL:     h.baseURL(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Webhook handles POST /api/donations/webhook. The body is read raw so the
// signature covers exactly what the gateway sent.
func (h *DonationHandler) Webhook(c *gin.Context) {
	if c.Request.Body == nil {
		response.Error(c, apperror.Validation("Invalid webhook payload"))
		return
	}
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.svc.HandleWebhook(c.Request.Context(), payload, c.GetHeader(HeaderWebhookSignature)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.WebhookAck{Status: "success"})
}

// Verify handles GET /api/donations/verify/:transactionReference.
func (h *DonationHandler) Verify(c *gin.Context) {
	ref := strings.TrimSpace(c.Param("transactionReference"))
	if ref == "" || len(ref) > 100 {
		response.Error(c, apperror.Validation("Invalid transaction reference"))
		return
	}

	donation, err := h.svc.Verify(c.Request.Context(), ref)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.VerifyDonationResponse{Status: pollStatus(donation.Status), Donation: donation})
}

// List handles GET /api/donations?status=.
func (h *DonationHandler) List(c *gin.Context) {
	params := ports.DonationListParams{Page: pageParams(c)}
	if raw := c.Query("status"); raw != "" {
		status := domain.DonationStatus(raw)
		if !status.Valid() {
			response.Error(c, apperror.Validation("status must be one of: pending, completed, failed"))
			return
		}
		params.Status = &status
	}

	items, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, items, pagination.NewMeta(params.Page, total))
}

// Stats handles GET /api/donations/stats.
func (h *DonationHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

func (h *DonationHandler) baseURL(c *gin.Context) string {
	if h.publicBaseURL != "" {
		return h.publicBaseURL
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto == "https" || proto == "http" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}

func pollStatus(s domain.DonationStatus) string {
	switch s {
	case domain.DonationStatusCompleted:
		return "success"
	case domain.DonationStatusFailed:
		return "failed"
	}
	return "pending"
}
