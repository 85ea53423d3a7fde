package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cotizador-api/internal/application/analytics"
)

// DashboardHandler endpoints del tablero.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// ProjectStats godoc
// @Summary      Conteo de proyectos por estado
// @Description  employee cuenta solo los propios. approved suma approved e in_progress.
// @Tags         projects
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProjectStatsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/projects/stats [get]
func (h *DashboardHandler) ProjectStats(c *fiber.Ctx) error {
	out, err := h.uc.ProjectStats(c.UserContext(), ActorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
