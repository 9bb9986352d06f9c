package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/bienestar-escolar/backend/internal/auth"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestObservabilityAssignsRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(ObservabilityMiddleware(zap.NewNop()))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	if err != nil {
		t.Fatalf("Test: %v", err)
	}
	if resp.Header.Get(HeaderRequestID) == "" {
		t.Error("no request id assigned")
	}
}

func TestObservabilityKeepsInboundRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(ObservabilityMiddleware(zap.NewNop()))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(HeaderRequestID, "upstream-id")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Test: %v", err)
	}
	if got := resp.Header.Get(HeaderRequestID); got != "upstream-id" {
		t.Errorf("request id = %q, want the inbound one", got)
	}
}

func TestObservabilityLogsPrincipal(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app := fiber.New()
	app.Use(ObservabilityMiddleware(zap.New(core)))
	app.Get("/mine", func(c *fiber.Ctx) error {
		c.Locals(CtxPrincipal, &auth.Claims{UserID: 5})
		return c.SendStatus(fiber.StatusOK)
	})

	if _, err := app.Test(httptest.NewRequest("GET", "/mine", nil)); err != nil {
		t.Fatalf("Test: %v", err)
	}

	entries := logs.FilterMessage("http request").All()
	if len(entries) != 1 {
		t.Fatalf("log lines = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["route"] != "/mine" {
		t.Errorf("route = %v", fields["route"])
	}
	if got, ok := fields["userId"].(uint64); !ok || got != 5 {
		t.Errorf("userId = %v, want 5", fields["userId"])
	}
}
