package dto

// ProjectStatsResponse conteos de proyectos para el tablero.
type ProjectStatsResponse struct {
	Total           int `json:"total"`
	PendingApproval int `json:"pending_approval"`
	// Active suma approved e in_progress.
	Active   int            `json:"approved"`
	Rejected int            `json:"rejected"`
	ByStatus map[string]int `json:"by_status"` // todos los estados, también en cero
}
