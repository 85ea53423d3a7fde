package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/inquiry"
)

// InquiryHandler cotizaciones, decisiones y documentos.
type InquiryHandler struct {
	uc   *inquiry.InquiryUseCase
	docs *inquiry.DocumentUseCase
}

// NewInquiryHandler construye el handler.
func NewInquiryHandler(uc *inquiry.InquiryUseCase, docs *inquiry.DocumentUseCase) *InquiryHandler {
	return &InquiryHandler{uc: uc, docs: docs}
}

// Quote godoc
// @Summary      Cotizar un equipo para el proyecto
// @Description  employee sólo en proyectos propios aprobados. El precio se congela en la cotización.
// @Tags         inquiries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del proyecto"
// @Param        body  body  dto.CreateInquiryRequest  true  "Equipo y cantidad"
// @Success      201   {object}  dto.InquiryResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/inquiries [post]
func (h *InquiryHandler) Quote(c *fiber.Ctx) error {
	var in dto.CreateInquiryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Quote(c.UserContext(), ActorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByProject godoc
// @Summary      Cotizaciones del proyecto
// @Tags         inquiries
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del proyecto"
// @Success      200  {array}  dto.InquiryResponse
// @Router       /api/projects/{id}/inquiries [get]
func (h *InquiryHandler) ListByProject(c *fiber.Ctx) error {
	out, err := h.uc.ListByProject(c.UserContext(), ActorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar cotizaciones del proyecto a Excel
// @Tags         inquiries
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id  path  string  true  "ID del proyecto"
// @Success      200  {file}  binary
// @Router       /api/projects/{id}/inquiries/export [get]
func (h *InquiryHandler) Export(c *fiber.Ctx) error {
	data, filename, err := h.docs.ExportProject(c.UserContext(), ActorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Attachment(filename)
	return c.Send(data)
}

// ListPending godoc
// @Summary      Cotizaciones pendientes de decisión (admin)
// @Tags         inquiries
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.InquiryResponse
// @Router       /api/inquiries/pending [get]
func (h *InquiryHandler) ListPending(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.ListPending(c.UserContext(), ActorFrom(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener cotización
// @Tags         inquiries
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cotización"
// @Success      200  {object}  dto.InquiryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inquiries/{id} [get]
func (h *InquiryHandler) Get(c *fiber.Ctx) error {
	out, _, err := h.uc.Get(c.UserContext(), ActorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar cotización (admin)
// @Tags         inquiries
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cotización"
// @Success      200  {object}  dto.InquiryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inquiries/{id}/approve [post]
func (h *InquiryHandler) Approve(c *fiber.Ctx) error {
	return h.decide(c, true)
}

// Reject godoc
// @Summary      Rechazar cotización (admin)
// @Tags         inquiries
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cotización"
// @Success      200  {object}  dto.InquiryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inquiries/{id}/reject [post]
func (h *InquiryHandler) Reject(c *fiber.Ctx) error {
	return h.decide(c, false)
}

func (h *InquiryHandler) decide(c *fiber.Ctx, approve bool) error {
	out, err := h.uc.Decide(c.UserContext(), ActorFrom(c), c.Params("id"), approve)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      PDF de la cotización
// @Tags         inquiries
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la cotización"
// @Success      200  {file}  binary
// @Router       /api/inquiries/{id}/pdf [get]
func (h *InquiryHandler) PDF(c *fiber.Ctx) error {
	data, err := h.docs.QuotePDF(c.UserContext(), ActorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="cotizacion-`+c.Params("id")+`.pdf"`)
	return c.Send(data)
}

// ArchivePDF godoc
// @Summary      Archivar el PDF y obtener un enlace temporal
// @Tags         inquiries
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cotización"
// @Success      201  {object}  dto.QuoteFileResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inquiries/{id}/pdf/archive [post]
func (h *InquiryHandler) ArchivePDF(c *fiber.Ctx) error {
	out, err := h.docs.ArchiveQuotePDF(c.UserContext(), ActorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
