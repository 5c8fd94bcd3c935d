package extract

import (
	"bytes"
	"mime"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/riandy/ocrhost/internal/ocr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(app *fiber.App) {
	app.Get("/", h.Index)
	app.Get("/image", h.Image)
	app.Get("/api/ocr", h.OCR)
	app.Get("/health", h.Health)
}

func (h *Handler) Index(c *fiber.Ctx) error {
	spans, err := h.svc.Extract(c.UserContext(), false)
	if err != nil {
		return c.Status(500).SendString("Error running OCR: " + err.Error())
	}
	text := ocr.JoinedText(spans)
	if text == "" {
		text = "(no text found)"
	}
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, pageData{
		ImgName: filepath.Base(h.svc.ImagePath()),
		Text:    text,
	}); err != nil {
		return c.Status(500).SendString("render fail")
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

func (h *Handler) Image(c *fiber.Ctx) error {
	path := h.svc.ImagePath()
	if err := c.SendFile(path); err != nil {
		return c.Status(500).SendString("image unavailable")
	}
	mt := mime.TypeByExtension(filepath.Ext(path))
	if mt == "" {
		mt = "application/octet-stream"
	}
	c.Set(fiber.HeaderContentType, mt)
	return nil
}

func (h *Handler) OCR(c *fiber.Ctx) error {
	spans, err := h.svc.Extract(c.UserContext(), c.QueryBool("refresh"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if spans == nil {
		spans = []ocr.Span{}
	}
	return c.JSON(fiber.Map{
		"image": filepath.Base(h.svc.ImagePath()),
		"ocr":   spans,
	})
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"ok":    true,
		"image": filepath.Base(h.svc.ImagePath()),
	})
}
