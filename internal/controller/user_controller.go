package controller

import (
	"strconv"

	"learnhub_client/internal/model"
	"learnhub_client/internal/service"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

func (c *UserController) List(ctx *Context) {
	users, err := c.UserService.ListUsers()
	ctx.JSON(users, err)
}

// SetRole: set-role <user-id> <role>
func (c *UserController) SetRole(ctx *Context) {
	if !ctx.Bind(2, "<user-id> <admin|instructor|learner|guest>") {
		return
	}
	user, err := c.UserService.ChangeRole(ctx.Arg(0), model.UserRole(ctx.Arg(1)))
	ctx.JSON(user, err)
}

// AdjustPoints: adjust-points <user-id> <delta>
func (c *UserController) AdjustPoints(ctx *Context) {
	if !ctx.Bind(2, "<user-id> <delta>") {
		return
	}
	delta, err := strconv.Atoi(ctx.Arg(1))
	if err != nil {
		ctx.BadRequest("delta must be an integer")
		return
	}
	user, err := c.UserService.AdjustPoints(ctx.Arg(0), delta)
	ctx.JSON(user, err)
}
