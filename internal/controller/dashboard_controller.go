package controller

import (
	"learnhub_client/internal/model"
	"learnhub_client/internal/service"
	"learnhub_client/internal/util"
)

type DashboardController struct {
	DashboardService *service.DashboardService
	SessionService   *service.SessionService
}

func NewDashboardController(dashboards *service.DashboardService, session *service.SessionService) *DashboardController {
	return &DashboardController{DashboardService: dashboards, SessionService: session}
}

// Show picks the dashboard for the current role; --as overrides it (learner|instructor|admin).
func (c *DashboardController) Show(ctx *Context) {
	as := ctx.Flags().String("as", "", "learner|instructor|admin")
	if !ctx.Bind(0, "[--as learner|instructor|admin]") {
		return
	}
	user, ok := c.SessionService.Current()
	if !ok {
		ctx.Error(util.ErrNotAuthenticated)
		return
	}

	view := model.UserRole(*as)
	if view == "" {
		view = user.Role
	}
	switch view {
	case model.Admin:
		d, err := c.DashboardService.Admin()
		ctx.JSON(d, err)
	case model.Instructor:
		d, err := c.DashboardService.Instructor()
		ctx.JSON(d, err)
	default:
		d, err := c.DashboardService.Learner()
		ctx.JSON(d, err)
	}
}
