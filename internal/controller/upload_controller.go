package controller

import (
	"learnhub_client/internal/service"
)

type UploadController struct {
	UploadService *service.UploadService
}

func NewUploadController(uploadService *service.UploadService) *UploadController {
	return &UploadController{UploadService: uploadService}
}

// Upload: upload <image|video|pdf> <path>
func (c *UploadController) Upload(ctx *Context) {
	if !ctx.Bind(2, "<image|video|pdf> <path>") {
		return
	}
	file, err := c.UploadService.UploadFile(ctx, ctx.Arg(0), ctx.Arg(1))
	ctx.JSON(file, err)
}
