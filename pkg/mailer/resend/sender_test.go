package resend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickwinfinance/duesflow/pkg/mailer"
	"github.com/quickwinfinance/duesflow/pkg/mailer/resend"
)

func newSender(t *testing.T, h http.HandlerFunc) *resend.Sender {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	s, err := resend.New(resend.Config{
		APIKey:      "re_test",
		SenderEmail: "noreply@brandlovrs.app",
		SenderName:  "Quick Win Finance",
		BaseURL:     srv.URL + "/",
	})
	require.NoError(t, err)
	return s
}

func TestSender_Send(t *testing.T) {
	t.Parallel()

	t.Run("returns provider id and uses configured identity", func(t *testing.T) {
		t.Parallel()

		var body map[string]any
		var auth string
		s := newSender(t, func(w http.ResponseWriter, r *http.Request) {
			auth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"msg_1"}`))
		})

		id, err := s.Send(context.Background(), &mailer.Email{
			To:      []string{"ana@example.com"},
			Subject: "Payment reminder",
			HTML:    "<p>Hello</p>",
			Tags:    mailer.Tags{"template": "email_day1"},
		})
		require.NoError(t, err)
		assert.Equal(t, "msg_1", id)
		assert.Equal(t, "Bearer re_test", auth)
		assert.Equal(t, "Quick Win Finance <noreply@brandlovrs.app>", body["from"])
		assert.Equal(t, []any{"ana@example.com"}, body["to"])
		assert.Equal(t, "Payment reminder", body["subject"])
		assert.Equal(t, "<p>Hello</p>", body["html"])
	})

	t.Run("provider error is returned", func(t *testing.T) {
		t.Parallel()

		s := newSender(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"statusCode":429,"name":"rate_limit_exceeded","message":"rate limited"}`))
		})

		id, err := s.Send(context.Background(), &mailer.Email{
			To: []string{"ana@example.com"}, Subject: "s", HTML: "h",
		})
		require.Error(t, err)
		assert.Empty(t, id)
	})
}

func TestSender_SendRejectsIncompleteEmail(t *testing.T) {
	t.Parallel()

	var calls int
	s := newSender(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})

	_, err := s.Send(context.Background(), &mailer.Email{Subject: "s", HTML: "h"})
	require.ErrorIs(t, err, mailer.ErrNoRecipient)

	_, err = s.Send(context.Background(), &mailer.Email{To: []string{"ana@example.com"}, HTML: "h"})
	require.ErrorIs(t, err, mailer.ErrNoSubject)
	assert.Zero(t, calls)
}

func TestNew_InvalidBaseURL(t *testing.T) {
	t.Parallel()

	_, err := resend.New(resend.Config{APIKey: "k", BaseURL: "://bad"})
	require.Error(t, err)
}

func TestConfig_From(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a@b.co", resend.Config{SenderEmail: "a@b.co"}.From())
	assert.Equal(t, "Team <a@b.co>", resend.Config{SenderEmail: "a@b.co", SenderName: "Team"}.From())
}
