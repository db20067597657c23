// README: Ranking handler; the "rank contractors for a job" endpoint.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fieldops/internal/modules/contractor"
	"fieldops/internal/modules/ranking"
	"fieldops/internal/types"
)

type RankingHandler struct {
	ranking *ranking.Service
}

func NewRankingHandler(svc *ranking.Service) *RankingHandler {
	return &RankingHandler{ranking: svc}
}

type weightsReq struct {
	Availability float64 `json:"availability"`
	Rating       float64 `json:"rating"`
	Distance     float64 `json:"distance"`
}

type rankReq struct {
	JobTypeID     string      `json:"job_type_id"`
	Date          string      `json:"date"`        // "2006-01-02"
	TargetTime    string      `json:"target_time"` // "15:04"
	Lat           float64     `json:"lat"`
	Lng           float64     `json:"lng"`
	DurationHours float64     `json:"duration_hours"`
	Weights       *weightsReq `json:"weights"`
	TopN          *int        `json:"top_n"`
}

type slotResp struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type scoreResp struct {
	Availability float64 `json:"availability"`
	Rating       float64 `json:"rating"`
	Distance     float64 `json:"distance"`
	Overall      float64 `json:"overall"`
}

type rankedResp struct {
	ContractorID  string    `json:"contractor_id"`
	DisplayID     string    `json:"display_id"`
	Name          string    `json:"name"`
	JobTypeName   string    `json:"job_type_name,omitempty"`
	Rating        float64   `json:"rating"`
	Lat           float64   `json:"lat"`
	Lng           float64   `json:"lng"`
	Address       string    `json:"address,omitempty"`
	DistanceMiles float64   `json:"distance_miles"`
	BestSlot      *slotResp `json:"best_slot"`
	Score         scoreResp `json:"score"`
}

func (h *RankingHandler) Rank(c *gin.Context) {
	var req rankReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.JobTypeID == "" {
		writeError(c, http.StatusBadRequest, "missing job_type_id")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		return
	}
	targetMin, err := contractor.ParseClock(req.TargetTime)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid target_time, want HH:MM")
		return
	}

	topN := ranking.DefaultTopN
	if req.TopN != nil {
		topN = *req.TopN
	}
	rreq := ranking.Request{
		JobTypeID:     types.ID(req.JobTypeID),
		Date:          date,
		TargetTimeMin: targetMin,
		Location:      types.Point{Lat: req.Lat, Lng: req.Lng},
		DurationHours: req.DurationHours,
		TopN:          topN,
	}
	if req.Weights != nil {
		rreq.Weights = &ranking.Weights{
			Availability: req.Weights.Availability,
			Rating:       req.Weights.Rating,
			Distance:     req.Weights.Distance,
		}
	}

	results, err := h.ranking.Rank(c.Request.Context(), rreq)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	out := make([]rankedResp, len(results))
	for i, r := range results {
		out[i] = rankedResp{
			ContractorID:  string(r.ContractorID),
			DisplayID:     r.DisplayID,
			Name:          r.Name,
			JobTypeName:   r.JobTypeName,
			Rating:        r.Rating,
			Lat:           r.Base.Lat,
			Lng:           r.Base.Lng,
			Address:       r.Base.Address,
			DistanceMiles: r.DistanceMiles,
			BestSlot:      toSlotResp(r.BestSlot),
			Score: scoreResp{
				Availability: r.Score.Availability,
				Rating:       r.Score.Rating,
				Distance:     r.Score.Distance,
				Overall:      r.Score.Overall,
			},
		}
	}
	writeJSON(c, http.StatusOK, map[string]any{"results": out})
}

func toSlotResp(s *contractor.TimeSlot) *slotResp {
	if s == nil {
		return nil
	}
	return &slotResp{
		Start: contractor.FormatClock(s.StartMin),
		End:   contractor.FormatClock(s.EndMin),
	}
}
