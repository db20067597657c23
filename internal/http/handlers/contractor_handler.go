// README: Contractor handlers for get/upsert/availability/nearby.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fieldops/internal/modules/contractor"
	"fieldops/internal/types"
)

type ContractorHandler struct {
	contractor *contractor.Service
}

func NewContractorHandler(svc *contractor.Service) *ContractorHandler {
	return &ContractorHandler{contractor: svc}
}

type scheduleEntryReq struct {
	Weekday int `json:"weekday"`
	Slots   []struct {
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"slots"`
}

type upsertContractorReq struct {
	DisplayID string             `json:"display_id"`
	Name      string             `json:"name"`
	JobTypeID string             `json:"job_type_id"`
	Lat       float64            `json:"lat"`
	Lng       float64            `json:"lng"`
	Address   string             `json:"address"`
	Rating    float64            `json:"rating"`
	Active    bool               `json:"active"`
	Schedule  []scheduleEntryReq `json:"schedule"`
}

type contractorResp struct {
	ID        string             `json:"id"`
	DisplayID string             `json:"display_id"`
	Name      string             `json:"name"`
	JobTypeID string             `json:"job_type_id"`
	Lat       float64            `json:"lat"`
	Lng       float64            `json:"lng"`
	Address   string             `json:"address,omitempty"`
	Rating    float64            `json:"rating"`
	Active    bool               `json:"active"`
	Schedule  []scheduleEntryOut `json:"schedule"`
}

type scheduleEntryOut struct {
	Weekday int        `json:"weekday"`
	Slots   []slotResp `json:"slots"`
}

func (h *ContractorHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing contractor id")
		return
	}
	got, err := h.contractor.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toContractorResp(got))
}

func (h *ContractorHandler) Upsert(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing contractor id")
		return
	}
	var req upsertContractorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	entries := make([]contractor.ScheduleEntry, 0, len(req.Schedule))
	for _, e := range req.Schedule {
		entry := contractor.ScheduleEntry{Weekday: time.Weekday(e.Weekday)}
		for _, s := range e.Slots {
			start, err := contractor.ParseClock(s.Start)
			if err != nil {
				writeError(c, http.StatusBadRequest, err.Error())
				return
			}
			end, err := contractor.ParseClock(s.End)
			if err != nil {
				writeError(c, http.StatusBadRequest, err.Error())
				return
			}
			entry.Slots = append(entry.Slots, contractor.TimeSlot{StartMin: start, EndMin: end})
		}
		entries = append(entries, entry)
	}

	cn := &contractor.Contractor{
		ID:             types.ID(id),
		DisplayID:      req.DisplayID,
		Name:           req.Name,
		JobTypeID:      types.ID(req.JobTypeID),
		Base:           types.Point{Lat: req.Lat, Lng: req.Lng, Address: req.Address},
		Rating:         req.Rating,
		Active:         req.Active,
		WeeklySchedule: entries,
	}
	if err := h.contractor.Upsert(c.Request.Context(), cn); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"id": id})
}

// Availability lists every slot on the date able to host the duration.
func (h *ContractorHandler) Availability(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing contractor id")
		return
	}
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		return
	}
	hours, err := strconv.ParseFloat(c.Query("duration_hours"), 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid duration_hours")
		return
	}

	slots, err := h.contractor.Availability(c.Request.Context(), types.ID(id), date, hours)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	out := make([]slotResp, len(slots))
	for i, s := range slots {
		out[i] = *toSlotResp(&s)
	}
	writeJSON(c, http.StatusOK, map[string]any{"slots": out})
}

func (h *ContractorHandler) Nearby(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
	if err1 != nil || err2 != nil {
		writeError(c, http.StatusBadRequest, "invalid lat/lng")
		return
	}
	radius, err := strconv.ParseFloat(c.DefaultQuery("radius_miles", "10"), 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid radius_miles")
		return
	}

	found, err := h.contractor.Nearby(c.Request.Context(), types.Point{Lat: lat, Lng: lng}, radius)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	out := make([]contractorResp, len(found))
	for i := range found {
		out[i] = toContractorResp(&found[i])
	}
	writeJSON(c, http.StatusOK, map[string]any{"contractors": out})
}

func toContractorResp(cn *contractor.Contractor) contractorResp {
	resp := contractorResp{
		ID:        string(cn.ID),
		DisplayID: cn.DisplayID,
		Name:      cn.Name,
		JobTypeID: string(cn.JobTypeID),
		Lat:       cn.Base.Lat,
		Lng:       cn.Base.Lng,
		Address:   cn.Base.Address,
		Rating:    cn.Rating,
		Active:    cn.Active,
		Schedule:  []scheduleEntryOut{},
	}
	for _, e := range cn.WeeklySchedule {
		out := scheduleEntryOut{Weekday: int(e.Weekday)}
		for _, s := range e.Slots {
			out.Slots = append(out.Slots, *toSlotResp(&s))
		}
		resp.Schedule = append(resp.Schedule, out)
	}
	return resp
}
