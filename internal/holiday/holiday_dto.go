package holiday

type CreateHolidayRequest struct {
	Date string `json:"date" binding:"required"`
	Name string `json:"name" binding:"required,max=100"`
}

type HolidayResponse struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

func mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		Date: h.Date.Format(dateLayout),
		Name: h.Name,
	}
}

func mapToListResponse(rows []Holiday) []HolidayResponse {
	out := make([]HolidayResponse, 0, len(rows))
	for _, h := range rows {
		out = append(out, mapToResponse(h))
	}
	return out
}
