package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"shinepos-backend/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev, prevLevel := zlog.Logger, zerolog.GlobalLevel()
	zlog.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		zlog.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})
	return &buf
}

func TestMiddlewareLogsClientStatus(t *testing.T) {
	cases := []struct {
		name      string
		handler   fiber.Handler
		wantCode  int
		wantLevel string
	}{
		{"ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) }, fiber.StatusNoContent, "info"},
		{"not found", func(c *fiber.Ctx) error { return apperr.NotFound("Commission log not found") }, fiber.StatusNotFound, "warn"},
		{"conflict", func(c *fiber.Ctx) error { return apperr.Conflict("Commission already paid") }, fiber.StatusBadRequest, "warn"},
		{"fiber error", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusForbidden, "no") }, fiber.StatusForbidden, "warn"},
		{"unexpected", func(c *fiber.Ctx) error { return errors.New("boom") }, fiber.StatusInternalServerError, "error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := captureLogs(t)

			app := fiber.New(fiber.Config{ErrorHandler: apperr.ErrorHandler})
			app.Use(Middleware())
			app.Get("/x", tc.handler)

			resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tc.wantCode {
				t.Fatalf("client status = %d, want %d", resp.StatusCode, tc.wantCode)
			}

			var entry struct {
				Level  string `json:"level"`
				Status int    `json:"status"`
			}
			// The error handler may log first; the request line is last.
			lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
			if err := json.Unmarshal(lines[len(lines)-1], &entry); err != nil {
				t.Fatalf("decode log %q: %v", buf.String(), err)
			}
			if entry.Status != tc.wantCode || entry.Level != tc.wantLevel {
				t.Fatalf("logged %+v, want status %d at %s", entry, tc.wantCode, tc.wantLevel)
			}
		})
	}
}
