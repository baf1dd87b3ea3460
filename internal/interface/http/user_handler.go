package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/code2day/recipe-api/internal/application"
	"github.com/code2day/recipe-api/internal/domain/entity"
	"github.com/code2day/recipe-api/internal/interface/middleware"
	"github.com/code2day/recipe-api/pkg/helpers"
	"github.com/code2day/recipe-api/pkg/response"
	"github.com/code2day/recipe-api/pkg/validation"
)

// UserHandler exposes the signup flow, auth and account endpoints.
type UserHandler struct {
	Registration *application.RegistrationService
	Favorites    *application.FavoritesService
	Cookie       *helpers.CookieManager
}

func NewUserHandler(reg *application.RegistrationService, favs *application.FavoritesService, cookie *helpers.CookieManager) *UserHandler {
	return &UserHandler{Registration: reg, Favorites: favs, Cookie: cookie}
}

// userView is the client-facing shape of an account. The credential hash and
// verification code never leave the service.
type userView struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	IsVerified     bool       `json:"is_verified"`
	Role           string     `json:"role"`
	MobileNumber   string     `json:"mobile_number,omitempty"`
	DOB            *time.Time `json:"dob,omitempty"`
	Address        string     `json:"address,omitempty"`
	ProfilePicture string     `json:"profile_picture,omitempty"`
	IsGuest        bool       `json:"is_guest,omitempty"`
	Favorites      []string   `json:"favorites,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func toUserView(u *entity.User) userView {
	return userView{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		IsVerified:     u.IsVerified,
		Role:           string(u.Role),
		MobileNumber:   u.MobileNumber,
		DOB:            u.DOB,
		Address:        u.Address,
		ProfilePicture: u.ProfilePicture,
		IsGuest:        u.IsGuest,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

type authView struct {
	User  userView `json:"user"`
	Token string   `json:"token"`
}

type registerRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	MobileNumber string `json:"mobile_number" binding:"omitempty,mobile"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request payload", validation.ToDetails(err))
		return
	}
	if err := h.Registration.Register(c.Request.Context(), req.Name, req.Email, req.MobileNumber); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "verification code sent", nil)
}

type verifyEmailRequest struct {
	Email            string `json:"email" binding:"required,email"`
	VerificationCode string `json:"verification_code" binding:"required,code6"`
}

func (h *UserHandler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request payload", validation.ToDetails(err))
		return
	}
	if err := h.Registration.VerifyEmail(c.Request.Context(), req.Email, req.VerificationCode); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "email verified", nil)
}

type addInfoRequest struct {
	Email        string `json:"email" binding:"required,email"`
	MobileNumber string `json:"mobile_number" binding:"required,mobile"`
	DOB          string `json:"dob" binding:"required,datetime=2006-01-02"`
	Address      string `json:"address" binding:"required"`
}

func (h *UserHandler) AddInfo(c *gin.Context) {
	var req addInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request payload", validation.ToDetails(err))
		return
	}
	dob, _ := time.Parse("2006-01-02", req.DOB)
	u, err := h.Registration.AddInfo(c.Request.Context(), req.Email, req.MobileNumber, dob, req.Address)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserView(u), "information saved", nil)
}

type finalizeRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

func (h *UserHandler) Finalize(c *gin.Context) {
	var req finalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request payload", validation.ToDetails(err))
		return
	}
	u, token, exp, err := h.Registration.Finalize(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.Cookie.SetAuth(c, token, exp)
	response.Success(c, http.StatusCreated, authView{User: toUserView(u), Token: token}, "registration complete", nil)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request payload", validation.ToDetails(err))
		return
	}
	u, token, exp, err := h.Registration.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.Cookie.SetAuth(c, token, exp)
	response.Success(c, http.StatusOK, authView{User: toUserView(u), Token: token}, "login successful", nil)
}

func (h *UserHandler) GuestLogin(c *gin.Context) {
	u, token, exp, err := h.Registration.GuestLogin(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.Cookie.SetAuth(c, token, exp)
	response.Success(c, http.StatusCreated, authView{User: toUserView(u), Token: token}, "guest session created", nil)
}

func (h *UserHandler) Logout(c *gin.Context) {
	h.Cookie.Clear(c)
	response.Success[any](c, http.StatusOK, nil, "logged out", nil)
}

func (h *UserHandler) Profile(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	u, favs, err := h.Registration.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	view := toUserView(u)
	view.Favorites = favs
	response.Success(c, http.StatusOK, view, "profile fetched", nil)
}

type updateUserRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email" binding:"omitempty,email"`
	Password     string `json:"password" binding:"omitempty,pwd"`
	MobileNumber string `json:"mobile_number" binding:"omitempty,mobile"`
	DOB          string `json:"dob" binding:"omitempty,datetime=2006-01-02"`
	Address      string `json:"address"`
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	targetID := c.Param("id")
	actorID := c.GetString(middleware.CtxUserIDKey)
	actorRole := entity.Role(c.GetString(middleware.CtxUserRoleKey))
	if targetID != actorID && actorRole != entity.RoleAdmin {
		response.Error[any](c, http.StatusForbidden, "not allowed to update this user", nil)
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request payload", validation.ToDetails(err))
		return
	}

	in := application.UpdateUserInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		MobileNumber: req.MobileNumber,
		Address:      req.Address,
	}
	if req.DOB != "" {
		dob, _ := time.Parse("2006-01-02", req.DOB)
		in.DOB = &dob
	}

	u, err := h.Registration.UpdateUser(c.Request.Context(), targetID, in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserView(u), "user updated", nil)
}

// UploadProfilePicture accepts a multipart form with an "image" file part.
func (h *UserHandler) UploadProfilePicture(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)

	fh, err := c.FormFile("image")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "image file is required", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "could not read image file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Registration.UploadProfilePicture(c.Request.Context(), userID, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"profile_picture": url}, "profile picture updated", nil)
}

func (h *UserHandler) AddFavorite(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	recipeID := c.Param("recipeID")
	if err := h.Favorites.AddFavorite(c.Request.Context(), userID, recipeID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "recipe added to favorites", nil)
}

// GetUser returns the sanitized public view of any account.
func (h *UserHandler) GetUser(c *gin.Context) {
	u, favs, err := h.Registration.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	view := toUserView(u)
	view.Favorites = favs
	response.Success(c, http.StatusOK, view, "user fetched", nil)
}

func (h *UserHandler) RemoveFavorite(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	recipeID := c.Param("recipeID")
	if err := h.Favorites.RemoveFavorite(c.Request.Context(), userID, recipeID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "recipe removed from favorites", nil)
}

func (h *UserHandler) ListFavorites(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	recipes, err := h.Favorites.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, recipes, "favorites fetched", nil)
}
