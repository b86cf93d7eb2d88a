package controller

import (
	"learnhub_client/internal/model"
	"learnhub_client/internal/service"
	"learnhub_client/internal/util"
)

type AuthController struct {
	AuthService    *service.AuthService
	UserService    *service.UserService
	SessionService *service.SessionService
}

func NewAuthController(authService *service.AuthService, userService *service.UserService, session *service.SessionService) *AuthController {
	return &AuthController{AuthService: authService, UserService: userService, SessionService: session}
}

// Login: login <email> <password>
func (c *AuthController) Login(ctx *Context) {
	if !ctx.Bind(2, "<email> <password>") {
		return
	}
	user, err := c.AuthService.Login(ctx, model.LoginInput{Email: ctx.Arg(0), Password: ctx.Arg(1)})
	ctx.JSON(user, err)
}

// Register: register <name> <email> <password>
func (c *AuthController) Register(ctx *Context) {
	if !ctx.Bind(3, "<name> <email> <password>") {
		return
	}
	user, err := c.AuthService.Register(ctx, model.RegisterInput{Name: ctx.Arg(0), Email: ctx.Arg(1), Password: ctx.Arg(2)})
	ctx.JSON(user, err)
}

func (c *AuthController) Logout(ctx *Context) {
	c.AuthService.Logout()
	ctx.Success(map[string]string{"message": "logged out"})
}

func (c *AuthController) WhoAmI(ctx *Context) {
	user, ok := c.SessionService.Current()
	if !ok {
		ctx.Error(util.ErrNotAuthenticated)
		return
	}
	ctx.Success(user)
}

// UpdateProfile: profile [--name N] [--avatar URL] [--bio TEXT]
func (c *AuthController) UpdateProfile(ctx *Context) {
	name := ctx.Flags().String("name", "", "display name")
	avatar := ctx.Flags().String("avatar", "", "avatar url")
	bio := ctx.Flags().String("bio", "", "short bio")
	if !ctx.Bind(0, "[--name N] [--avatar URL] [--bio TEXT]") {
		return
	}

	var update model.ProfileUpdate
	if ctx.Flags().Changed("name") {
		update.Name = name
	}
	if ctx.Flags().Changed("avatar") {
		update.Avatar = avatar
	}
	if ctx.Flags().Changed("bio") {
		update.Bio = bio
	}
	user, err := c.UserService.UpdateProfile(update)
	ctx.JSON(user, err)
}
