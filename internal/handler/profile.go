package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devconnector/devconnector/internal/repository"
)

// ProfileHandler serves profile CRUD plus the experience/education
// sub-records. All mutations are scoped to the authenticated user, so a
// caller can never touch a profile they do not own.
type ProfileHandler struct {
	Profiles ProfileStore
	Users    UserStore
}

func NewProfileHandler(profiles ProfileStore, users UserStore) *ProfileHandler {
	return &ProfileHandler{Profiles: profiles, Users: users}
}

type profileReq struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills"` // comma-separated
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Instagram      string `json:"instagram"`
	Linkedin       string `json:"linkedin"`
	Facebook       string `json:"facebook"`
}

type experienceReq struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

type educationReq struct {
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

// Me handles GET /api/profile/me: the caller's own profile.
func (h *ProfileHandler) Me(c echo.Context) error {
	userID, err := authedUserID(c)
	if err != nil {
		return message(c, http.StatusUnauthorized, "authorization denied")
	}
	p, err := h.Profiles.GetByUserID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return message(c, http.StatusBadRequest, "there is no profile for this user")
		}
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// Upsert handles POST /api/profile: create or replace the caller's profile
// in a single atomic statement.
func (h *ProfileHandler) Upsert(c echo.Context) error {
	userID, err := authedUserID(c)
	if err != nil {
		return message(c, http.StatusUnauthorized, "authorization denied")
	}
	var req profileReq
	if err := c.Bind(&req); err != nil {
		return validationFailed(c, "invalid request body")
	}

	var msgs []string
	if req.Status == "" {
		msgs = append(msgs, "status is required")
	}
	skills := repository.SplitSkills(req.Skills)
	if len(skills) == 0 {
		msgs = append(msgs, "skills is required")
	}
	if len(msgs) > 0 {
		return validationFailed(c, msgs...)
	}

	p := repository.Profile{
		UserID:         userID,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Skills:         skills,
		Social: repository.Social{
			Youtube:   req.Youtube,
			Twitter:   req.Twitter,
			Instagram: req.Instagram,
			Linkedin:  req.Linkedin,
			Facebook:  req.Facebook,
		},
	}
	if err := h.Profiles.Upsert(c.Request().Context(), &p); err != nil {
		return serverError(c, err)
	}
	stored, err := h.Profiles.GetByUserID(c.Request().Context(), userID)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, stored)
}

// List handles GET /api/profile: all profiles, public.
func (h *ProfileHandler) List(c echo.Context) error {
	profiles, err := h.Profiles.ListAll(c.Request().Context())
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, profiles)
}

// GetByUser handles GET /api/profile/user/:user_id, public.
func (h *ProfileHandler) GetByUser(c echo.Context) error {
	p, err := h.Profiles.GetByUserID(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return message(c, http.StatusBadRequest, "profile not found")
		}
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// DeleteAccount handles DELETE /api/profile: remove the caller's user
// record; profile and sub-records cascade with it. Posts stay behind.
func (h *ProfileHandler) DeleteAccount(c echo.Context) error {
	userID, err := authedUserID(c)
	if err != nil {
		return message(c, http.StatusUnauthorized, "authorization denied")
	}
	if err := h.Users.Delete(c.Request().Context(), userID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return serverError(c, err)
	}
	return message(c, http.StatusOK, "user removed")
}

// AddExperience handles PUT /api/profile/experience.
func (h *ProfileHandler) AddExperience(c echo.Context) error {
	userID, err := authedUserID(c)
	if err != nil {
		return message(c, http.StatusUnauthorized, "authorization denied")
	}
	var req experienceReq
	if err := c.Bind(&req); err != nil {
		return validationFailed(c, "invalid request body")
	}

	var msgs []string
	if req.Title == "" {
		msgs = append(msgs, "title is required")
	}
	if req.Company == "" {
		msgs = append(msgs, "company is required")
	}
	if req.From.IsZero() {
		msgs = append(msgs, "from date is required")
	}
	if len(msgs) > 0 {
		return validationFailed(c, msgs...)
	}

	exp := repository.Experience{
		UserID:      userID,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}
	if err := h.Profiles.AddExperience(c.Request().Context(), &exp); err != nil {
		return serverError(c, err)
	}
	return h.respondWithProfile(c, userID)
}

// RemoveExperience handles DELETE /api/profile/experience/:exp_id. The
// delete is a single statement conditioned on both the entry id and the
// caller's id.
func (h *ProfileHandler) RemoveExperience(c echo.Context) error {
	userID, err := authedUserID(c)
	if err != nil {
		return message(c, http.StatusUnauthorized, "authorization denied")
	}
	if err := h.Profiles.RemoveExperience(c.Request().Context(), userID, c.Param("exp_id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return message(c, http.StatusNotFound, "experience not found")
		}
		return serverError(c, err)
	}
	return message(c, http.StatusOK, "experience removed")
}

// AddEducation handles PUT /api/profile/education.
func (h *ProfileHandler) AddEducation(c echo.Context) error {
	userID, err := authedUserID(c)
	if err != nil {
		return message(c, http.StatusUnauthorized, "authorization denied")
	}
	var req educationReq
	if err := c.Bind(&req); err != nil {
		return validationFailed(c, "invalid request body")
	}

	var msgs []string
	if req.School == "" {
		msgs = append(msgs, "school is required")
	}
	if req.Degree == "" {
		msgs = append(msgs, "degree is required")
	}
	if req.FieldOfStudy == "" {
		msgs = append(msgs, "field of study is required")
	}
	if req.From.IsZero() {
		msgs = append(msgs, "from date is required")
	}
	if len(msgs) > 0 {
		return validationFailed(c, msgs...)
	}

	edu := repository.Education{
		UserID:       userID,
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}
	if err := h.Profiles.AddEducation(c.Request().Context(), &edu); err != nil {
		return serverError(c, err)
	}
	return h.respondWithProfile(c, userID)
}

// RemoveEducation handles DELETE /api/profile/education/:edu_id.
func (h *ProfileHandler) RemoveEducation(c echo.Context) error {
	userID, err := authedUserID(c)
	if err != nil {
		return message(c, http.StatusUnauthorized, "authorization denied")
	}
	if err := h.Profiles.RemoveEducation(c.Request().Context(), userID, c.Param("edu_id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return message(c, http.StatusNotFound, "education not found")
		}
		return serverError(c, err)
	}
	return message(c, http.StatusOK, "education removed")
}

func (h *ProfileHandler) respondWithProfile(c echo.Context, userID string) error {
	p, err := h.Profiles.GetByUserID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Entries can exist before the profile document does.
			return message(c, http.StatusOK, "saved")
		}
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}
