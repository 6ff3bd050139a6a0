package http

import (
	"encoding/json"
	"net/http"

	"github.com/libraria-tech/go-backend/internal/usecase"
	"github.com/libraria-tech/go-backend/pkg/e"
	"github.com/libraria-tech/go-backend/pkg/logger"
)

type AuthHandler struct {
	authUsecase usecase.AuthUC
	logger      logger.Logger
}

func NewAuthHandler(authUsecase usecase.AuthUC, logger logger.Logger) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase, logger: logger}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// register
//
//	@Summary	Регистрация пользователя
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		credentials	body		registerRequest	true	"Данные пользователя"
//	@Success	201			{object}	map[string]interface{}
//	@Failure	400			{object}	ErrorResponse	"Ошибка валидации"
//	@Failure	409			{object}	ErrorResponse	"Имя пользователя занято"
//	@Router		/auth/register [post]
func (a *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		a.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	user, err := a.authUsecase.Register(r.Context(), &usecase.RegisterReq{
		Username: body.Username,
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"id":       user.ID,
		"username": user.Username,
	})
}

// login
//
//	@Summary	Аутентификация пользователя
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		credentials	body		loginRequest	true	"Логин и пароль"
//	@Success	200			{object}	loginResponse
//	@Failure	401			{object}	ErrorResponse	"Неверные учётные данные"
//	@Router		/auth/login [post]
func (a *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		a.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	res, err := a.authUsecase.Login(r.Context(), &usecase.LoginReq{
		Username: body.Username,
		Password: body.Password,
	})
	if err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, loginResponse{
		AccessToken:  res.Access,
		RefreshToken: res.Refresh,
	})
}
