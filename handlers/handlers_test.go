package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quickwinfinance/duesflow"
	"github.com/quickwinfinance/duesflow/handlers"
	"github.com/quickwinfinance/duesflow/middlewares"
	"github.com/quickwinfinance/duesflow/pkg/dispatch"
	"github.com/quickwinfinance/duesflow/pkg/dues"
	"github.com/quickwinfinance/duesflow/pkg/mailer"
	"github.com/quickwinfinance/duesflow/pkg/reminders"
	"github.com/quickwinfinance/duesflow/pkg/store"
	"github.com/quickwinfinance/duesflow/pkg/templates"
)

// MockSender is a mock implementation of mailer.Sender.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, email *mailer.Email) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

type testEnv struct {
	app       http.Handler
	sender    *MockSender
	factories *atomic.Int32
}

type envOption func(*envConfig)

type envConfig struct {
	apiKey string
	day    int
}

func withoutAPIKey() envOption { return func(c *envConfig) { c.apiKey = "" } }
func onDay(day int) envOption { return func(c *envConfig) { c.day = day } }

func newEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	cfg := envConfig{apiKey: "re_test", day: 21}
	for _, opt := range opts {
		opt(&cfg)
	}

	brt := time.FixedZone("BRT", -3*60*60)
	clock := func() time.Time { return time.Date(2024, 6, cfg.day, 10, 0, 0, 0, brt) }

	repo, err := dues.NewFixtureRepository()
	require.NoError(t, err)
	amounts, err := dues.NewAmountFormatter("pt-BR", "R$")
	require.NoError(t, err)

	env := &testEnv{sender: &MockSender{}, factories: &atomic.Int32{}}
	dispatcher, err := dispatch.New(dispatch.Config{APIKey: cfg.apiKey}, func(string) (mailer.Sender, error) {
		env.factories.Add(1)
		return env.sender, nil
	})
	require.NoError(t, err)

	tmpl, err := templates.NewService(store.NewMemory[templates.Template](), amounts)
	require.NoError(t, err)
	require.NoError(t, tmpl.Seed(context.Background()))

	rem := reminders.New(reminders.Config{LegalTeamEmail: "legal@exemplo.com"}, repo, tmpl, dispatcher, amounts,
		reminders.WithClock(clock))

	env.app = duesflow.New(
		duesflow.WithMiddleware(middlewares.RequestID(), middlewares.CORS(), middlewares.Recover()),
		duesflow.WithErrorHandler(handlers.ErrorHandler),
		duesflow.WithNotFoundHandler(handlers.NotFound),
		duesflow.WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
		duesflow.WithHealthChecks(),
		duesflow.WithHandlers(
			handlers.NewDispatch(dispatcher),
			handlers.NewClients(repo, rem, amounts, clock),
			handlers.NewDashboard(repo, amounts, clock),
			handlers.NewTemplates(tmpl, repo, clock),
		),
	)
	return env
}

func (e *testEnv) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.app.ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func (e *testEnv) list(t *testing.T, target string) []map[string]any {
	t.Helper()

	rec := httptest.NewRecorder()
	e.app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

const sendBody = `{
	"to": "joao@exemplo.com",
	"subject": "Payment reminder - INV-001",
	"html": "<p>Hello</p>",
	"clientName": "João Silva",
	"invoiceNumber": "INV-001",
	"amount": "1.250,00",
	"dueDate": "20/01/2025"
}`

func TestDispatch(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t)
		env.sender.On("Send", mock.Anything, mock.MatchedBy(func(e *mailer.Email) bool {
			return e.To[0] == "joao@exemplo.com" && e.Subject == "Payment reminder - INV-001" && e.HTML == "<p>Hello</p>"
		})).Return("msg_1", nil).Once()

		rec, body := env.do(t, http.MethodPost, "/functions/v1/send-email", sendBody)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "msg_1", body["emailId"])
		assert.Equal(t, "Email sent to João Silva (joao@exemplo.com)", body["message"])
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		env.sender.AssertExpectations(t)
	})

	t.Run("provider failure", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t)
		env.sender.On("Send", mock.Anything, mock.Anything).Return("", errors.New("rate limited")).Once()

		rec, body := env.do(t, http.MethodPost, "/functions/v1/send-email", sendBody)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "rate limited", body["error"])
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t)
		rec, body := env.do(t, http.MethodPost, "/functions/v1/send-email", `{"to":"joao@exemplo.com"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, false, body["success"])
		assert.Contains(t, body["error"], "subject is required")
		env.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t)
		rec, body := env.do(t, http.MethodPost, "/functions/v1/send-email", `{"to":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "request body must be valid JSON", body["error"])
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t)
		rec, body := env.do(t, http.MethodPost, "/functions/v1/send-email", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "request body is empty", body["error"])
	})

	t.Run("missing credential is reported before the body is read", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t, withoutAPIKey())
		rec, body := env.do(t, http.MethodPost, "/functions/v1/send-email", `{"to":`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, dispatch.ErrNotConfigured.Error(), body["error"])
		assert.Zero(t, env.factories.Load())
	})

	t.Run("preflight", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t)
		rec, _ := env.do(t, http.MethodOptions, "/functions/v1/send-email", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "authorization, x-client-info, apikey, content-type", rec.Header().Get("Access-Control-Allow-Headers"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
		env.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("preflight never touches the provider", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t, withoutAPIKey())
		rec, _ := env.do(t, http.MethodOptions, "/functions/v1/send-email", `{"to":"ana@exemplo.com"}`)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Zero(t, env.factories.Load())
		env.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("preflight for a template edit", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t)
		req := httptest.NewRequest(http.MethodOptions, "/api/templates/email_day1", nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPut)
		rec := httptest.NewRecorder()
		env.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
	})

	t.Run("wrong method", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t)
		rec, body := env.do(t, http.MethodGet, "/functions/v1/send-email", "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, false, body["success"])
	})
}

func TestClients(t *testing.T) {
	t.Parallel()

	env := newEnv(t)

	t.Run("list", func(t *testing.T) {
		t.Parallel()

		list := env.list(t, "/api/clients")
		require.Len(t, list, 4)

		joao := list[0]
		assert.Equal(t, "João Silva", joao["name"])
		assert.EqualValues(t, 1, joao["daysOverdue"])
		assert.Equal(t, "email_sent", joao["status"])
		assert.Equal(t, "Email sent", joao["statusLabel"])
		assert.Equal(t, "mail", joao["statusIcon"])
		assert.Equal(t, "email_sent", joao["policyStatus"])
		assert.Equal(t, "2024-06-20", joao["dueDate"])
		assert.True(t, strings.HasPrefix(joao["amountFormatted"].(string), "R$ "))

		ana := list[3]
		assert.Equal(t, "pending", ana["status"])
		assert.Equal(t, "email_sent", ana["policyStatus"])
		assert.NotContains(t, ana, "lastActionAt")
	})

	t.Run("filter", func(t *testing.T) {
		t.Parallel()

		list := env.list(t, "/api/clients?q=INV-002")
		require.Len(t, list, 1)
		assert.Equal(t, "Maria Santos", list[0]["name"])
		assert.EqualValues(t, 3, list[0]["daysOverdue"])
	})

	t.Run("get", func(t *testing.T) {
		t.Parallel()

		rec, body := env.do(t, http.MethodGet, "/api/clients/3", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Pedro Costa", body["name"])
		assert.EqualValues(t, 5, body["daysOverdue"])
		assert.Equal(t, "legal", body["policyStatus"])
	})

	t.Run("unknown client", func(t *testing.T) {
		t.Parallel()

		rec, body := env.do(t, http.MethodGet, "/api/clients/99", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "client not found", body["error"])
	})
}

func TestReminders(t *testing.T) {
	t.Parallel()

	t.Run("day one email goes to the client", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t)
		env.sender.On("Send", mock.Anything, mock.MatchedBy(func(e *mailer.Email) bool {
			return e.To[0] == "joao@exemplo.com" && strings.Contains(e.HTML, "João Silva")
		})).Return("msg_7", nil).Once()

		rec, body := env.do(t, http.MethodPost, "/api/clients/1/reminders", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "msg_7", body["emailId"])
		assert.Equal(t, "Email sent to João Silva (joao@exemplo.com)", body["message"])
		env.sender.AssertExpectations(t)
	})

	t.Run("legal referral goes to the legal team", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t)
		env.sender.On("Send", mock.Anything, mock.MatchedBy(func(e *mailer.Email) bool {
			return e.To[0] == "legal@exemplo.com"
		})).Return("msg_8", nil).Once()

		rec, _ := env.do(t, http.MethodPost, "/api/clients/3/reminders", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		env.sender.AssertExpectations(t)
	})

	t.Run("whatsapp step", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t)
		rec, body := env.do(t, http.MethodPost, "/api/clients/2/reminders", "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, false, body["success"])
	})

	t.Run("not overdue", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t, onDay(20))
		rec, _ := env.do(t, http.MethodPost, "/api/clients/1/reminders", "")
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown client", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t)
		rec, _ := env.do(t, http.MethodPost, "/api/clients/99/reminders", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("provider failure keeps the dispatch envelope", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t)
		env.sender.On("Send", mock.Anything, mock.Anything).Return("", errors.New("rate limited"))

		rec, body := env.do(t, http.MethodPost, "/api/clients/4/reminders", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "rate limited", body["error"])
	})

	t.Run("missing credential", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t, withoutAPIKey())
		rec, body := env.do(t, http.MethodPost, "/api/clients/1/reminders", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, dispatch.ErrNotConfigured.Error(), body["error"])
	})
}

func TestDashboard(t *testing.T) {
	t.Parallel()

	env := newEnv(t)

	t.Run("summary", func(t *testing.T) {
		t.Parallel()

		rec, body := env.do(t, http.MethodGet, "/api/dashboard", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.EqualValues(t, 4, body["overdue"])
		assert.EqualValues(t, 1, body["emailsSent"])
		assert.EqualValues(t, 1, body["whatsappSent"])
		assert.EqualValues(t, 1, body["legal"])
		assert.Equal(t, "5850", body["totalOutstanding"])

		actions := body["recentActions"].([]any)
		require.Len(t, actions, 3)
		first := actions[0].(map[string]any)
		assert.Equal(t, "João Silva", first["clientName"])
		assert.Equal(t, "Email sent", first["statusLabel"])
	})

	t.Run("flow", func(t *testing.T) {
		t.Parallel()

		steps := env.list(t, "/api/flow")
		require.Len(t, steps, 3)
		assert.EqualValues(t, 1, steps[0]["day"])
		assert.Equal(t, "email_day1", steps[0]["templateId"])
		assert.EqualValues(t, 2, steps[0]["activeClients"])
		assert.EqualValues(t, 1, steps[1]["activeClients"])
		assert.Equal(t, "whatsapp", steps[1]["channel"])
		assert.EqualValues(t, 1, steps[2]["activeClients"])
		assert.Equal(t, "legal", steps[2]["recipient"])
	})
}

func TestTemplates(t *testing.T) {
	t.Parallel()

	t.Run("list and get", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t)
		list := env.list(t, "/api/templates")
		require.Len(t, list, 3)
		assert.Equal(t, "email_day1", list[0]["id"])

		rec, body := env.do(t, http.MethodGet, "/api/templates/whatsapp_day3", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "whatsapp", body["channel"])
		assert.Equal(t, "", body["subject"])

		rec, body = env.do(t, http.MethodGet, "/api/templates/sms_day2", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "template not found", body["error"])
	})

	t.Run("update", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t)
		rec, body := env.do(t, http.MethodPut, "/api/templates/email_day1",
			`{"subject":"Reminder [INVOICE]","content":"Hi <b>[NAME]</b>"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "Hi [NAME]", body["content"])
		assert.Equal(t, []any{"INVOICE", "NAME"}, body["variables"])

		_, body = env.do(t, http.MethodGet, "/api/templates/email_day1", "")
		assert.Equal(t, "Reminder [INVOICE]", body["subject"])
	})

	t.Run("update validation", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t)
		rec, body := env.do(t, http.MethodPut, "/api/templates/whatsapp_day3", `{"subject":"x","content":""}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, false, body["success"])

		details := body["details"].([]any)
		fields := make([]string, 0, len(details))
		for _, d := range details {
			fields = append(fields, d.(map[string]any)["field"].(string))
		}
		assert.ElementsMatch(t, []string{"content", "subject"}, fields)
	})

	t.Run("update with malformed body", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t)
		rec, _ := env.do(t, http.MethodPut, "/api/templates/email_day1", `nope`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("preview", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t)
		rec, body := env.do(t, http.MethodPost, "/api/templates/legal_day5/preview", `{"clientId":"3"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "legal_day5", body["templateId"])
		assert.Contains(t, body["text"], "Pedro Costa")
		assert.Contains(t, body["text"], "Days overdue: 5")
		assert.Contains(t, body["html"], "<!DOCTYPE html>")
	})

	t.Run("preview errors", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t)

		rec, body := env.do(t, http.MethodPost, "/api/templates/email_day1/preview", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, body["error"], "clientId is required")

		rec, _ = env.do(t, http.MethodPost, "/api/templates/email_day1/preview", `{"clientId":"99"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec, _ = env.do(t, http.MethodPost, "/api/templates/nope/preview", `{"clientId":"1"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRoutingFallbacks(t *testing.T) {
	t.Parallel()

	env := newEnv(t)

	rec, body := env.do(t, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "route not found", body["error"])

	rec, _ = env.do(t, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
