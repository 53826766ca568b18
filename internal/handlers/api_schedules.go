package handlers

import (
	"net/http"
	"time"

	"github.com/opswatch/opswatch/internal/api"
	"github.com/opswatch/opswatch/internal/database"
)

// handleListSchedules handles GET /api/schedules. An optional ?date=YYYY-MM-DD
// query narrows the response to that calendar day.
func (h *APIHandler) handleListSchedules(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("date"); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			api.RespondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		schedules, err := database.ListSchedulesByDate(h.db, day)
		if err != nil {
			api.RespondInternalError(w, "Failed to list schedules", err)
			return
		}
		api.RespondJSON(w, http.StatusOK, schedules)
		return
	}

	schedules, err := database.ListSchedules(h.db)
	if err != nil {
		api.RespondInternalError(w, "Failed to list schedules", err)
		return
	}
	api.RespondJSON(w, http.StatusOK, schedules)
}

// handleCreateSchedule handles POST /api/schedules. The payload carries the
// whole roster: shifts and their contact assignments are created in one go.
func (h *APIHandler) handleCreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req api.CreateScheduleRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := api.Validate(req); errs != nil {
		api.RespondValidationError(w, errs)
		return
	}

	schedule := &database.Schedule{
		Date: req.Date,
		Name: req.Name,
	}
	for _, shiftReq := range req.Shifts {
		if !shiftReq.EndTime.After(shiftReq.StartTime) {
			api.RespondError(w, http.StatusBadRequest, "shift end_time must be after start_time")
			return
		}
		shift := database.Shift{
			Name:      shiftReq.Name,
			StartTime: shiftReq.StartTime,
			EndTime:   shiftReq.EndTime,
		}
		for _, asgReq := range shiftReq.Assignments {
			if _, err := database.GetContact(h.db, asgReq.ContactID); err != nil {
				respondStoreError(w, "Failed to get contact", err)
				return
			}
			role := database.AssignmentRolePrimary
			if asgReq.Role != "" {
				role = database.AssignmentRole(asgReq.Role)
			}
			shift.Assignments = append(shift.Assignments, database.ShiftAssignment{
				ContactID: asgReq.ContactID,
				Role:      role,
				Status:    asgReq.Status,
			})
		}
		schedule.Shifts = append(schedule.Shifts, shift)
	}

	if err := database.CreateSchedule(h.db, schedule); err != nil {
		api.RespondInternalError(w, "Failed to create schedule", err)
		return
	}

	created, err := database.GetSchedule(h.db, schedule.ID)
	if err != nil {
		respondStoreError(w, "Failed to get schedule", err)
		return
	}
	api.RespondJSON(w, http.StatusCreated, created)
}

// handleDeleteSchedule handles DELETE /api/schedules/{id}
func (h *APIHandler) handleDeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := api.PathID(r)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := database.GetSchedule(h.db, id); err != nil {
		respondStoreError(w, "Failed to get schedule", err)
		return
	}
	if err := database.DeleteSchedule(h.db, id); err != nil {
		api.RespondInternalError(w, "Failed to delete schedule", err)
		return
	}
	api.RespondNoContent(w)
}
