package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"peacockedit/internal/editor"
	"peacockedit/internal/fsutil"
	"peacockedit/internal/profile"
)

func (s *Server) handleStatus(c *gin.Context) {
	root, err := s.editor.Root()
	if err != nil {
		c.JSON(http.StatusOK, StatusResponse{
			Connected: false,
			Message:   "Peacock installation not found",
		})
		return
	}
	paths, err := profile.NewStore(root).List()
	if err != nil {
		paths = nil
	}
	c.JSON(http.StatusOK, StatusResponse{
		Connected:     true,
		PeacockPath:   root,
		ProfilesCount: len(paths),
		Message:       "Connected to Peacock installation",
	})
}

func (s *Server) handleListProfiles(c *gin.Context) {
	store, err := s.editor.Store()
	if err != nil {
		c.JSON(statusFor(err), APIResponse{Success: false, Error: err.Error()})
		return
	}
	paths, err := store.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, APIResponse{Success: false, Error: err.Error()})
		return
	}

	summaries := make([]profile.Summary, 0, len(paths))
	for _, path := range paths {
		doc, err := store.Read(path)
		if err != nil {
			s.logger.Warn("Skipping unreadable profile %s: %v", path, err)
			continue
		}
		summaries = append(summaries, profile.Summarize(path, doc))
	}
	c.JSON(http.StatusOK, summaries)
}

func (s *Server) handleGetProfile(c *gin.Context) {
	store, err := s.editor.Store()
	if err != nil {
		c.JSON(statusFor(err), APIResponse{Success: false, Error: err.Error()})
		return
	}
	path := store.PathFor(c.Param("id"))
	if !fsutil.Exists(path) {
		c.JSON(http.StatusNotFound, APIResponse{Success: false, Error: "profile not found"})
		return
	}
	doc, err := store.Read(path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, APIResponse{Success: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile.Summarize(path, doc))
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	var update editor.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	store, err := s.editor.Store()
	if err != nil {
		c.JSON(statusFor(err), APIResponse{Success: false, Error: err.Error()})
		return
	}
	if !fsutil.Exists(store.PathFor(c.Param("id"))) {
		c.JSON(http.StatusNotFound, APIResponse{Success: false, Error: "profile not found"})
		return
	}
	message, err := s.editor.UpdateProfile(c.Param("id"), update)
	s.respondMutation(c, message, err)
}
