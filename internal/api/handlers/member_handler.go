package handlers

import (
	"errors"

	"github.com/shahrzads/ml-application-test-master/internal/dto"
	"github.com/shahrzads/ml-application-test-master/internal/models"
	"github.com/shahrzads/ml-application-test-master/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type MemberHandler struct {
	offerService *service.OfferService
	logger       *zap.Logger
}

func NewMemberHandler(offerService *service.OfferService, logger *zap.Logger) *MemberHandler {
	return &MemberHandler{
		offerService: offerService,
		logger:       logger,
	}
}

// GetFeatures godoc
// @Summary Derive member features
// @Description Load the transaction history and compute the eight member features
// @Tags members
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} dto.FeaturesResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/members/{id}/features [get]
func (h *MemberHandler) GetFeatures(c *fiber.Ctx) error {
	memberID := c.Params("id")

	result, err := h.offerService.Features(c.Context(), memberID)
	if err != nil {
		return h.fail(c, memberID, "Failed to derive features", err)
	}

	return c.JSON(dto.NewFeaturesResponse(result.MemberID, result.Features, result.Timings, result.ReadLatency))
}

// Summarize godoc
// @Summary Score a member and assign an offer
// @Description Derive features, call both scoring services, assign an offer and store the report
// @Tags members
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} dto.ReportResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/members/{id}/summarize [post]
func (h *MemberHandler) Summarize(c *fiber.Ctx) error {
	memberID := c.Params("id")

	report, err := h.offerService.SummarizeAndStore(c.Context(), memberID)
	if err != nil {
		return h.fail(c, memberID, "Failed to summarize member", err)
	}

	return c.JSON(dto.NewReportResponse(report))
}

// GetReport godoc
// @Summary Get the stored report of a member
// @Tags members
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} dto.ReportResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/members/{id}/report [get]
func (h *MemberHandler) GetReport(c *fiber.Ctx) error {
	memberID := c.Params("id")

	report, err := h.offerService.GetReport(c.Context(), memberID)
	if err != nil {
		return h.fail(c, memberID, "Failed to read report", err)
	}
	if report == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "Report not found",
		})
	}

	return c.JSON(dto.NewReportResponse(report))
}

func (h *MemberHandler) fail(c *fiber.Ctx, memberID, msg string, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrUnknownMember):
		status = fiber.StatusNotFound
		msg = "Member not found"
	case errors.Is(err, models.ErrTimestampParse):
		status = fiber.StatusUnprocessableEntity
		msg = "Malformed transaction timestamp"
	}

	if status == fiber.StatusInternalServerError {
		h.logger.Error(msg, zap.String("member_id", memberID), zap.Error(err))
	} else {
		h.logger.Warn(msg, zap.String("member_id", memberID), zap.Error(err))
	}

	return c.Status(status).JSON(dto.ErrorResponse{Error: msg})
}
