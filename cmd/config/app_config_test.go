package config

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worthy-waste/domain"
)

func uploadOfSize(t *testing.T, app *fiber.App, size int) int {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", "peel.jpg")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{0xff}, size))
	require.NoError(t, err)
	require.NoError(t, w.WriteField("note", "banana peel"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/upload", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestFiberConfig_AcceptsFullSizeImages(t *testing.T) {
	app := fiber.New(newFiberConfig())
	app.Post("/upload", func(c *fiber.Ctx) error {
		file, err := c.FormFile("image")
		if err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		return c.JSON(fiber.Map{"size": file.Size})
	})

	// above fiber's 4MB default, at the image limit
	assert.Equal(t, fiber.StatusOK, uploadOfSize(t, app, domain.MaxWasteImageSize))
	assert.Equal(t, fiber.StatusRequestEntityTooLarge, uploadOfSize(t, app, domain.MaxWasteImageSize+multipartOverhead+1))
}
