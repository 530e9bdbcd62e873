package channel

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	RegisterRoutes(app.Group("/channels"), func(c *fiber.Ctx) error { return c.Next() })
	return app
}

func TestGenerateHandler(t *testing.T) {
	app := newTestApp()

	body, _ := json.Marshal(map[string]string{"name": "Alpha Team"})
	req := httptest.NewRequest(http.MethodPost, "/channels/generate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("generate status: %v", err)
	}

	var out struct {
		Channel      Descriptor `json:"channel"`
		Instructions string     `json:"instructions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Channel.ChannelIndex != 1 || out.Channel.PSKBase64 == "" {
		t.Fatalf("unexpected descriptor: %+v", out.Channel)
	}
	if out.Instructions == "" {
		t.Fatalf("expected setup instructions")
	}
}

func TestGenerateHandlerBlankName(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/channels/generate", bytes.NewReader([]byte(`{"name":"   "}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %d", resp.StatusCode)
	}
}

func TestGenerateHandlerParseError(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/channels/generate", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}
}
