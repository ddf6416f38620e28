package httpapi

import (
	"errors"
	"net/http"
	"time"
	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/common"
	userPort "yatube/internal/ports/user"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	uc           UserUseCase
	secureCookie bool
}

func NewUserController(uc UserUseCase, secureCookie bool) *UserController {
	return &UserController{uc: uc, secureCookie: secureCookie}
}

func (ctl *UserController) SignupForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": SignupForm{}, "errors": common.FieldErrors{}})
}

// Signup registers the account, logs it in and goes to the index.
func (ctl *UserController) Signup(c *gin.Context) {
	var form SignupForm
	if err := bindForm(c, &form); err != nil {
		ctl.renderSignup(c, form, err)
		return
	}
	u, err := ctl.uc.RegisterUser(c.Request.Context(), userPort.RegisterInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Username:  form.Username,
		Email:     form.Email,
		Password:  form.Password,
	})
	if errors.Is(err, common.ErrAlreadyExists) {
		ctl.renderSignup(c, form, common.FieldErrors{"username": "A user with that username already exists."})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	res, err := ctl.uc.LoginUser(c.Request.Context(), u.Username, form.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	ctl.setSession(c, res)
	redirect(c, "/")
}

func (ctl *UserController) LoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"form":   gin.H{"username": ""},
		"next":   c.Query("next"),
		"errors": common.FieldErrors{},
	})
}

func (ctl *UserController) Login(c *gin.Context) {
	var form LoginForm
	if err := bindForm(c, &form); err != nil {
		ctl.renderLogin(c, form, err)
		return
	}
	res, err := ctl.uc.LoginUser(c.Request.Context(), form.Username, form.Password)
	if errors.Is(err, common.ErrInvalidCredentials) {
		ctl.renderLogin(c, form, common.FieldErrors{
			"__all__": "Please enter a correct username and password.",
		})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	ctl.setSession(c, res)

	next := form.Next
	if next == "" {
		next = c.Query("next")
	}
	redirect(c, safeNext(next))
}

func (ctl *UserController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", ctl.secureCookie, true)
	redirect(c, "/")
}

func (ctl *UserController) setSession(c *gin.Context, res *userPort.LoginResponse) {
	maxAge := int(time.Until(time.Unix(res.ExpiresAt, 0)).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, res.Token, maxAge, "/", "", ctl.secureCookie, true)
}

func (ctl *UserController) renderSignup(c *gin.Context, form SignupForm, err error) {
	form.Password = ""
	c.JSON(http.StatusBadRequest, gin.H{"form": form, "errors": errorsOf(err)})
}

func (ctl *UserController) renderLogin(c *gin.Context, form LoginForm, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"form":   gin.H{"username": form.Username},
		"next":   form.Next,
		"errors": errorsOf(err),
	})
}
