package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

func TestInit_SingletonUntilReset(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	var first, second bytes.Buffer
	Init(Options{Level: "warn", Output: &first, Service: "restaurant-api", Env: "test"})
	Init(Options{Level: "debug", Output: &second})

	log := Get()
	log.Info().Msg("dropped")
	log.Warn().Msg("kept")

	if second.Len() != 0 {
		t.Fatalf("second Init must not replace the logger")
	}
	if strings.Contains(first.String(), "dropped") {
		t.Fatalf("info must be filtered at warn level: %s", first.String())
	}

	var ev map[string]any
	if err := json.Unmarshal(first.Bytes(), &ev); err != nil {
		t.Fatalf("expected one JSON event, got %q: %v", first.String(), err)
	}
	if ev["service"] != "restaurant-api" || ev["env"] != "test" || ev["message"] != "kept" {
		t.Fatalf("unexpected event: %v", ev)
	}

	Reset()
	Init(Options{Output: &second})
	rebuilt := Get()
	rebuilt.Info().Msg("rebuilt")
	if !strings.Contains(second.String(), "rebuilt") {
		t.Fatalf("Init after Reset must rebuild the logger")
	}
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	Get()
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" info ":  zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(zerolog.New(&buf)))
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })
	e.GET("/teapot", func(c echo.Context) error { return echo.NewHTTPError(http.StatusTeapot) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	var ev map[string]any
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("expected JSON event, got %q: %v", buf.String(), err)
	}
	if ev["level"] != "info" || ev["method"] != "GET" || ev["uri"] != "/ping" || ev["status"] != float64(200) {
		t.Fatalf("unexpected event: %v", ev)
	}
	if ev["request_id"] == "" || ev["request_id"] == nil {
		t.Fatalf("request id missing: %v", ev)
	}

	buf.Reset()
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/teapot", nil))
	if !strings.Contains(buf.String(), `"level":"warn"`) || !strings.Contains(buf.String(), `"status":418`) {
		t.Fatalf("expected warn event for 4xx, got %s", buf.String())
	}
}
