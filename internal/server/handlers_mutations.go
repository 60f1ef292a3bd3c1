package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"peacockedit/internal/activity"
	"peacockedit/internal/options"
)

func (s *Server) bindMutation(c *gin.Context) (mutationRequest, bool) {
	var req mutationRequest
	if c.Request.ContentLength == 0 {
		return req, true
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return req, false
	}
	return req, true
}

func (s *Server) handleUnlockChallenges(c *gin.Context) {
	req, ok := s.bindMutation(c)
	if !ok {
		return
	}
	message, err := s.editor.UnlockChallenges(req.ProfileID, req.IDs)
	s.respondMutation(c, message, err)
}

func (s *Server) handleUnlockEscalations(c *gin.Context) {
	req, ok := s.bindMutation(c)
	if !ok {
		return
	}
	message, err := s.editor.UnlockEscalations(req.ProfileID, req.IDs)
	s.respondMutation(c, message, err)
}

func (s *Server) handleUnlockStories(c *gin.Context) {
	req, ok := s.bindMutation(c)
	if !ok {
		return
	}
	message, err := s.editor.UnlockStories(req.ProfileID, req.IDs)
	s.respondMutation(c, message, err)
}

func (s *Server) handleUnlockMastery(c *gin.Context) {
	var req masteryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
	}
	if req.LocationID == "" {
		message, err := s.editor.MaxAllMastery(req.ProfileID)
		s.respondMutation(c, message, err)
		return
	}
	if req.Level == nil {
		badRequest(c, "level is required when location_id is set")
		return
	}
	message, err := s.editor.SetMastery(req.ProfileID, req.LocationID, *req.Level)
	s.respondMutation(c, message, err)
}

func (s *Server) handleUnlockContent(c *gin.Context) {
	req, ok := s.bindMutation(c)
	if !ok {
		return
	}
	message, err := s.editor.UnlockAll(req.ProfileID)
	s.respondMutation(c, message, err)
}

func (s *Server) handleLockChallenges(c *gin.Context) {
	req, ok := s.bindMutation(c)
	if !ok {
		return
	}
	message, err := s.editor.LockChallenges(req.ProfileID, req.IDs)
	s.respondMutation(c, message, err)
}

func (s *Server) handleLockEscalations(c *gin.Context) {
	req, ok := s.bindMutation(c)
	if !ok {
		return
	}
	message, err := s.editor.LockEscalations(req.ProfileID, req.IDs)
	s.respondMutation(c, message, err)
}

func (s *Server) handleLockStories(c *gin.Context) {
	req, ok := s.bindMutation(c)
	if !ok {
		return
	}
	message, err := s.editor.LockStories(req.ProfileID, req.IDs)
	s.respondMutation(c, message, err)
}

func (s *Server) handleLockAll(c *gin.Context) {
	req, ok := s.bindMutation(c)
	if !ok {
		return
	}
	message, err := s.editor.ResetAll(req.ProfileID)
	s.respondMutation(c, message, err)
}

func (s *Server) handleGetSettings(c *gin.Context) {
	root, err := s.editor.Root()
	if err != nil {
		c.JSON(statusFor(err), APIResponse{Success: false, Error: err.Error()})
		return
	}
	settings, err := options.Read(root)
	if err != nil {
		c.JSON(http.StatusInternalServerError, APIResponse{Success: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(c *gin.Context) {
	root, err := s.editor.Root()
	if err != nil {
		c.JSON(statusFor(err), APIResponse{Success: false, Error: err.Error()})
		return
	}
	settings := options.Defaults()
	if err := c.ShouldBindJSON(&settings); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if err := options.Write(root, settings); err != nil {
		c.JSON(http.StatusInternalServerError, APIResponse{Success: false, Error: err.Error()})
		return
	}
	activity.NewLog(root).Append("Updated Peacock settings", activity.TypeSettings)
	c.JSON(http.StatusOK, APIResponse{Success: true, Message: "Settings updated successfully"})
}

func (s *Server) handleCreateBackup(c *gin.Context) {
	req, ok := s.bindMutation(c)
	if !ok {
		return
	}
	message, err := s.editor.CreateBackup(req.ProfileID)
	s.respondMutation(c, message, err)
}

func (s *Server) handleRestoreBackup(c *gin.Context) {
	req, ok := s.bindMutation(c)
	if !ok {
		return
	}
	message, err := s.editor.RestoreBackup(req.ProfileID)
	s.respondMutation(c, message, err)
}

func (s *Server) handleGetActivity(c *gin.Context) {
	root, err := s.editor.Root()
	if err != nil {
		c.JSON(statusFor(err), APIResponse{Success: false, Error: err.Error()})
		return
	}
	records := activity.NewLog(root).List()
	if records == nil {
		records = []activity.Record{}
	}
	c.JSON(http.StatusOK, records)
}

func (s *Server) handlePostActivity(c *gin.Context) {
	root, err := s.editor.Root()
	if err != nil {
		c.JSON(statusFor(err), APIResponse{Success: false, Error: err.Error()})
		return
	}
	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	log := activity.NewLog(root)
	if req.Action == "clear" {
		if err := log.Clear(); err != nil {
			c.JSON(http.StatusInternalServerError, APIResponse{Success: false, Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, APIResponse{Success: true, Message: "Activity log cleared"})
		return
	}
	if req.Description == "" {
		badRequest(c, "description is required")
		return
	}
	recordType := req.Type
	if recordType == "" {
		recordType = activity.TypeProfile
	}
	log.Append(req.Description, recordType)
	c.JSON(http.StatusOK, APIResponse{Success: true, Message: "Activity recorded"})
}

func (s *Server) handleClearActivity(c *gin.Context) {
	root, err := s.editor.Root()
	if err != nil {
		c.JSON(statusFor(err), APIResponse{Success: false, Error: err.Error()})
		return
	}
	if err := activity.NewLog(root).Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, APIResponse{Success: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Message: "Activity log cleared"})
}
