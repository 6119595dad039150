package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"unicode/utf8"

	"happythoughts/api/internal/auth"
	"happythoughts/api/internal/models"
	"happythoughts/api/internal/store"
	"happythoughts/api/internal/websocket"

	"github.com/gin-gonic/gin"
)

// UserStore is the credential store surface the handlers depend on
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByToken(ctx context.Context, token string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// ThoughtStore is the thought store surface the handlers depend on
type ThoughtStore interface {
	CreateThought(ctx context.Context, thought *models.Thought) error
	ThoughtByID(ctx context.Context, id string) (*models.Thought, error)
	ListThoughts(ctx context.Context, filter store.ThoughtFilter) ([]models.Thought, error)
	LikeThought(ctx context.Context, id string) (*models.Thought, error)
	UpdateThoughtMessage(ctx context.Context, id, ownerID, message string) (*models.Thought, error)
	DeleteThought(ctx context.Context, id, ownerID string) (*models.Thought, error)
}

// Store combines everything the API needs from persistence
type Store interface {
	UserStore
	ThoughtStore
}

// Handler contains API handlers
type Handler struct {
	store Store
	hub   *websocket.Hub
}

// NewHandler creates a new API handler
func NewHandler(st Store, hub *websocket.Hub) *Handler {
	return &Handler{
		store: st,
		hub:   hub,
	}
}

// Endpoint describes a registered route in the index listing
type Endpoint struct {
	Path    string   `json:"path"`
	Methods []string `json:"methods"`
}

// Index returns service metadata and the route listing
func (h *Handler) Index(engine *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		byPath := make(map[string][]string)
		for _, route := range engine.Routes() {
			byPath[route.Path] = append(byPath[route.Path], route.Method)
		}

		paths := make([]string, 0, len(byPath))
		for path := range byPath {
			paths = append(paths, path)
		}
		sort.Strings(paths)

		endpoints := make([]Endpoint, 0, len(paths))
		for _, path := range paths {
			methods := byPath[path]
			sort.Strings(methods)
			endpoints = append(endpoints, Endpoint{Path: path, Methods: methods})
		}

		c.JSON(http.StatusOK, gin.H{
			"message":   "Welcome to the Happy Thoughts API",
			"endpoints": endpoints,
		})
	}
}

// ListThoughts returns thoughts newest first, narrowed by the optional liked
// and thoughtsfromtoday query flags. An empty result is a 404, not an empty
// list; clients depend on that.
func (h *Handler) ListThoughts(c *gin.Context) {
	_, liked := c.GetQuery("liked")
	_, fromToday := c.GetQuery("thoughtsfromtoday")

	thoughts, err := h.store.ListThoughts(c.Request.Context(), store.ThoughtFilter{
		LikedOnly: liked,
		FromToday: fromToday,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch thoughts"})
		return
	}

	if len(thoughts) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "There are no thoughts to show"})
		return
	}

	c.JSON(http.StatusOK, thoughts)
}

// GetThought returns a single thought by id
func (h *Handler) GetThought(c *gin.Context) {
	id := c.Param("id")

	thought, err := h.store.ThoughtByID(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "There is no thought with that id"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch thoughts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": thought})
}

// CreateThoughtRequest represents thought creation request
type CreateThoughtRequest struct {
	Message string `json:"message"`
}

// CreateThought persists a new thought owned by the authenticated user.
// Validation and persistence failures share one error path.
func (h *Handler) CreateThought(c *gin.Context) {
	var req CreateThoughtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Thought could not be created"})
		return
	}

	thought := &models.Thought{
		Message: req.Message,
		UserID:  currentUser(c).ID,
	}

	if err := h.store.CreateThought(c.Request.Context(), thought); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Thought could not be created"})
		return
	}

	h.hub.BroadcastEvent(websocket.EventThoughtCreated, thought)
	c.JSON(http.StatusCreated, gin.H{"response": thought})
}

// LikeThought increments the heart count of a thought. No authentication;
// anyone may like anything.
func (h *Handler) LikeThought(c *gin.Context) {
	id := c.Param("id")

	thought, err := h.store.LikeThought(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Thought not found, could not update"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch thoughts"})
		return
	}

	h.hub.BroadcastEvent(websocket.EventThoughtLiked, thought)
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Thought with message: %s, was liked.", thought.Message),
		"hearts":  thought.Hearts,
	})
}

// UpdateThoughtRequest represents thought edit request
type UpdateThoughtRequest struct {
	NewThoughtMessage string `json:"newThoughtMessage"`
}

// UpdateThought replaces the message of a thought owned by the authenticated
// user. Ownership gates the mutation; nothing is written on a 403.
func (h *Handler) UpdateThought(c *gin.Context) {
	id := c.Param("id")

	var req UpdateThoughtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch thoughts"})
		return
	}

	thought, err := h.store.UpdateThoughtMessage(c.Request.Context(), id, currentUser(c).ID, req.NewThoughtMessage)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Thought id was not found, could not update"})
		return
	}
	if errors.Is(err, store.ErrNotOwner) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to edit this thought"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch thoughts"})
		return
	}

	h.hub.BroadcastEvent(websocket.EventThoughtUpdated, thought)
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Thought was updated to: %s", req.NewThoughtMessage),
	})
}

// DeleteThought removes a thought owned by the authenticated user
func (h *Handler) DeleteThought(c *gin.Context) {
	id := c.Param("id")

	thought, err := h.store.DeleteThought(c.Request.Context(), id, currentUser(c).ID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Thought id was not found, could not deleted"})
		return
	}
	if errors.Is(err, store.ErrNotOwner) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to delete this thought"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch thoughts"})
		return
	}

	h.hub.BroadcastEvent(websocket.EventThoughtDeleted, thought)
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Thought with message: %s, was deleted", thought.Message),
	})
}

// RegisterUserRequest represents user registration request
type RegisterUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterUser creates a new account and returns the freshly issued token.
// The plaintext password never leaves this handler and the hash is never
// returned.
func (h *Handler) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Could not create user",
			"errors":  gin.H{"body": err.Error()},
		})
		return
	}

	if errs := validateCredentials(req.Email, req.Password); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Could not create user",
			"errors":  errs,
		})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Could not create user",
			"errors":  gin.H{"password": err.Error()},
		})
		return
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
	}

	err = h.store.CreateUser(c.Request.Context(), user)
	if errors.Is(err, store.ErrDuplicateEmail) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "User already exists",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Could not create user",
			"errors":  gin.H{"store": err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"response":    user.Email,
		"userId":      user.ID,
		"accessToken": user.AccessToken,
	})
}

func validateCredentials(email, password string) map[string]string {
	errs := make(map[string]string)

	emailLen := utf8.RuneCountInString(email)
	if emailLen < models.MinEmailLength || emailLen > models.MaxEmailLength {
		errs["email"] = fmt.Sprintf("email must be between %d and %d characters", models.MinEmailLength, models.MaxEmailLength)
	}

	passwordLen := utf8.RuneCountInString(password)
	if passwordLen < models.MinPasswordLength || passwordLen > models.MaxPasswordLength {
		errs["password"] = fmt.Sprintf("password must be between %d and %d characters", models.MinPasswordLength, models.MaxPasswordLength)
	}

	return errs
}

// ListUsers returns all users
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":  false,
			"response": nil,
			"message":  "Failed to fetch users",
		})
		return
	}

	if len(users) == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success":  false,
			"response": nil,
			"message":  "No users found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"response": users,
	})
}

// CreateSessionRequest represents sign-in request
type CreateSessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateSession signs a user in and returns the existing token. Unknown email
// and wrong password produce the identical notFound body with HTTP 200;
// callers cannot distinguish the two cases.
func (h *Handler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"notFound": true})
		return
	}

	user, err := h.store.UserByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusOK, gin.H{"notFound": true})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusOK, gin.H{"notFound": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":      user.ID,
		"accessToken": user.AccessToken,
	})
}

// Secrets is a bare authenticated probe; passing the auth guard is the whole
// point of the endpoint
func (h *Handler) Secrets(c *gin.Context) {
	c.Status(http.StatusOK)
}
