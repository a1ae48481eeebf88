package apperr

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

func TestKindOfWrapped(t *testing.T) {
	base := NotFound("missing")
	wrapped := errors.Wrap(base, "lookup")
	if got := KindOf(wrapped); got != KindNotFound {
		t.Fatalf("KindOf = %q, want %q", got, KindNotFound)
	}
	if !errors.Is(wrapped, base) {
		t.Fatal("wrapped error lost its sentinel")
	}
	if got := KindOf(errors.New("boom")); got != KindInternal {
		t.Fatalf("KindOf(plain) = %q, want internal", got)
	}
}

func TestErrorHandler(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		kind    Kind
		message string
	}{
		{"validation", Validation("Missing required fields"), 400, KindValidation, "Missing required fields"},
		{"not found wrapped", errors.Wrap(NotFound("Commission log not found"), "get"), 404, KindNotFound, "Commission log not found"},
		{"conflict", Conflict("Commission already paid"), 400, KindConflict, "Commission already paid"},
		{"fiber error", fiber.NewError(fiber.StatusUnauthorized, "no token"), 401, KindForbidden, "no token"},
		{"plain", errors.New("db down"), 500, KindInternal, "db down"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
			app.Get("/", func(c *fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tc.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.status)
			}
			raw, _ := io.ReadAll(resp.Body)
			var body struct {
				Error string `json:"error"`
				Kind  Kind   `json:"kind"`
			}
			if err := json.Unmarshal(raw, &body); err != nil {
				t.Fatalf("decode %s: %v", raw, err)
			}
			if body.Error != tc.message || body.Kind != tc.kind {
				t.Fatalf("body = %+v, want %q/%q", body, tc.message, tc.kind)
			}
		})
	}
}
