package server

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"peacockedit/internal/gamedata"
	"peacockedit/internal/jsonmap"
	"peacockedit/internal/profile"
)

const defaultPageLimit = 50

// listParams carries the shared catalog query options. Requests without
// page or limit get the whole catalog as a flat array.
type listParams struct {
	page      int
	limit     int
	paginated bool
	search    string
}

func parseListParams(c *gin.Context) listParams {
	p := listParams{
		page:   1,
		limit:  defaultPageLimit,
		search: strings.ToLower(strings.TrimSpace(c.Query("search"))),
	}
	pageStr := c.Query("page")
	limitStr := c.Query("limit")
	p.paginated = pageStr != "" || limitStr != ""
	if n, err := strconv.Atoi(pageStr); err == nil && n > 0 {
		p.page = n
	}
	if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
		p.limit = n
	}
	return p
}

func (p listParams) matches(fields ...string) bool {
	if p.search == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), p.search) {
			return true
		}
	}
	return false
}

// slice returns one page of items and its pagination descriptor.
func slice[T any](items []T, p listParams) ([]T, Pagination) {
	total := len(items)
	pages := (total + p.limit - 1) / p.limit
	start := (p.page - 1) * p.limit
	if start > total {
		start = total
	}
	end := start + p.limit
	if end > total {
		end = total
	}
	return items[start:end], Pagination{
		Page:  p.page,
		Limit: p.limit,
		Total: total,
		Pages: pages,
	}
}

// activeProfile reads the first enumerated profile, used to decorate the
// catalog listings with completion state. Missing profiles are fine; the
// listings then show everything as fresh.
func (s *Server) activeProfile(root string) map[string]any {
	store := profile.NewStore(root)
	path, err := store.Resolve("")
	if err != nil {
		return nil
	}
	doc, err := store.Read(path)
	if err != nil {
		return nil
	}
	return doc
}

func (s *Server) handleListChallenges(c *gin.Context) {
	root, err := s.editor.Root()
	if err != nil {
		c.JSON(statusFor(err), APIResponse{Success: false, Error: err.Error()})
		return
	}
	params := parseListParams(c)
	location := strings.TrimSpace(c.Query("location"))
	completedOnly := c.Query("completed") == "true"
	uncompletedOnly := c.Query("uncompleted") == "true"

	var completed map[string]bool
	if completedOnly || uncompletedOnly {
		completed = map[string]bool{}
		ext := jsonmap.Child(s.activeProfile(root), "Extensions")
		for id, raw := range jsonmap.Child(ext, "ChallengeProgression") {
			if entry, ok := raw.(map[string]any); ok {
				if done, ok := entry["Completed"].(bool); ok && done {
					completed[id] = true
				}
			}
		}
	}

	catalog := s.editor.Loader().Challenges(root)
	filtered := make([]gamedata.Challenge, 0, len(catalog))
	for _, ch := range catalog {
		if location != "" && !strings.EqualFold(ch.Location, location) {
			continue
		}
		if completedOnly && !completed[ch.ID] {
			continue
		}
		if uncompletedOnly && completed[ch.ID] {
			continue
		}
		if !params.matches(ch.Name, ch.ID, ch.Description) {
			continue
		}
		filtered = append(filtered, ch)
	}

	if !params.paginated {
		c.JSON(http.StatusOK, filtered)
		return
	}
	page, pagination := slice(filtered, params)
	c.JSON(http.StatusOK, gin.H{"challenges": page, "pagination": pagination})
}

func (s *Server) handleListEscalations(c *gin.Context) {
	root, err := s.editor.Root()
	if err != nil {
		c.JSON(statusFor(err), APIResponse{Success: false, Error: err.Error()})
		return
	}
	params := parseListParams(c)

	catalog := s.editor.Loader().Escalations(root)
	filtered := make([]gamedata.Escalation, 0, len(catalog))
	for _, esc := range catalog {
		if !params.matches(esc.Name, esc.Codename, esc.ID) {
			continue
		}
		filtered = append(filtered, esc)
	}

	if !params.paginated {
		c.JSON(http.StatusOK, filtered)
		return
	}
	page, pagination := slice(filtered, params)
	c.JSON(http.StatusOK, gin.H{"escalations": page, "pagination": pagination})
}

func (s *Server) handleListStories(c *gin.Context) {
	root, err := s.editor.Root()
	if err != nil {
		c.JSON(statusFor(err), APIResponse{Success: false, Error: err.Error()})
		return
	}
	params := parseListParams(c)

	catalog := s.editor.Loader().Stories(root)
	filtered := make([]gamedata.Story, 0, len(catalog))
	for _, story := range catalog {
		if !params.matches(story.Name, story.ID) {
			continue
		}
		filtered = append(filtered, story)
	}

	if !params.paginated {
		c.JSON(http.StatusOK, filtered)
		return
	}
	page, pagination := slice(filtered, params)
	c.JSON(http.StatusOK, gin.H{"stories": page, "pagination": pagination})
}

func (s *Server) handleListLocations(c *gin.Context) {
	root, err := s.editor.Root()
	if err != nil {
		c.JSON(statusFor(err), APIResponse{Success: false, Error: err.Error()})
		return
	}
	caps := s.editor.Loader().MasteryCaps(root)

	var locations map[string]any
	if doc := s.activeProfile(root); doc != nil {
		prog := jsonmap.Child(jsonmap.Child(doc, "Extensions"), "progression")
		locations = jsonmap.Child(prog, "Locations")
	}

	infos := make([]LocationInfo, 0, len(caps))
	for id, cap := range caps {
		info := LocationInfo{
			ID:       id,
			Name:     gamedata.LocationName(id),
			MaxLevel: cap,
			Game:     gamedata.LocationGames[id],
		}
		entry := jsonmap.Child(locations, id)
		if rifles, sniper := gamedata.SniperRifles[id]; sniper {
			// Sniper maps track mastery per rifle; report the first one.
			entry = jsonmap.Child(entry, rifles[0])
		}
		info.CurrentLevel = jsonmap.Int(entry, "Level")
		info.XP = jsonmap.Int(entry, "Xp")
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })

	c.JSON(http.StatusOK, infos)
}
