package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/asafonov/blog-backend/internal/auth/service"
	"github.com/asafonov/blog-backend/internal/common/config"
	commonhttp "github.com/asafonov/blog-backend/internal/common/http"
	"github.com/asafonov/blog-backend/internal/common/logger"
	userdomain "github.com/asafonov/blog-backend/internal/user/domain"
)

type registerRequest struct {
	Username    string `json:"username" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	PhoneNumber string `json:"phonenumber" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// userResponse deliberately omits the password hash.
type userResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phonenumber"`
}

func newUserResponse(user userdomain.User) userResponse {
	return userResponse{
		ID:          string(user.ID),
		Username:    user.Username,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
	}
}

type Handler struct {
	auth     *service.AuthService
	validate *validator.Validate
	cfg      config.Config
	log      *logger.Logger
}

func NewHandler(auth *service.AuthService, cfg config.Config, log *logger.Logger) *Handler {
	return &Handler{
		auth:     auth,
		validate: validator.New(),
		cfg:      cfg,
		log:      log,
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	timeout := commonhttp.WithTimeout(h.cfg.RequestTimeout)
	mux.HandleFunc("/register", commonhttp.RequireMethod(http.MethodPost)(timeout(h.register)))
	mux.HandleFunc("/login", commonhttp.RequireMethod(http.MethodPost)(timeout(h.login)))
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("register failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.log.Warnf("register failed: invalid payload: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	user, err := h.auth.Register(r.Context(), service.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, newUserResponse(user))
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("login failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	token, err := h.auth.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func validationMessage(err error) string {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) || len(vErrs) == 0 {
		return "invalid request payload"
	}

	fe := vErrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "invalid email"
	default:
		return "invalid " + field
	}
}
