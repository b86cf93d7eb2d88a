package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"learnhub_client/internal/model"
	"learnhub_client/internal/util"
)

var uploadPaths = map[string]string{
	util.UploadImage: "/uploadimage",
	util.UploadVideo: "/uploadvideo",
	util.UploadPDF:   "/uploadpdf",
}

func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (*model.UploadResponse, error) {
	return c.Upload(ctx, util.UploadImage, filename, r)
}

func (c *Client) UploadVideo(ctx context.Context, filename string, r io.Reader) (*model.UploadResponse, error) {
	return c.Upload(ctx, util.UploadVideo, filename, r)
}

func (c *Client) UploadPDF(ctx context.Context, filename string, r io.Reader) (*model.UploadResponse, error) {
	return c.Upload(ctx, util.UploadPDF, filename, r)
}

// Upload sends r as the multipart field "file" to the endpoint for kind.
func (c *Client) Upload(ctx context.Context, kind, filename string, r io.Reader) (*model.UploadResponse, error) {
	path, ok := uploadPaths[kind]
	if !ok {
		return nil, fmt.Errorf("unknown upload kind %q", kind)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL()+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var resp model.UploadResponse
	if err := c.send(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
