package reminders_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quickwinfinance/duesflow/pkg/dispatch"
	"github.com/quickwinfinance/duesflow/pkg/dues"
	"github.com/quickwinfinance/duesflow/pkg/reminders"
	"github.com/quickwinfinance/duesflow/pkg/store"
	"github.com/quickwinfinance/duesflow/pkg/templates"
)

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, req dispatch.Request) (dispatch.Result, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(dispatch.Result), args.Error(1)
}

func at(day int) dues.Clock {
	return func() time.Time {
		return time.Date(2024, 6, day, 10, 0, 0, 0, time.UTC)
	}
}

func newService(t *testing.T, d reminders.Dispatcher, clock dues.Clock, legal string) *reminders.Service {
	t.Helper()

	repo, err := dues.NewFixtureRepository()
	require.NoError(t, err)
	amounts, err := dues.NewAmountFormatter("pt-BR", "R$")
	require.NoError(t, err)
	tmpl, err := templates.NewService(store.NewMemory[templates.Template](), amounts)
	require.NoError(t, err)

	return reminders.New(reminders.Config{LegalTeamEmail: legal}, repo, tmpl, d, amounts, reminders.WithClock(clock))
}

func TestSend_ClientEmail(t *testing.T) {
	t.Parallel()

	d := &MockDispatcher{}
	d.On("Dispatch", mock.Anything, mock.MatchedBy(func(r dispatch.Request) bool {
		return r.To == "joao@exemplo.com" &&
			r.Subject == "Payment reminder - overdue invoice" &&
			r.ClientName == "João Silva" &&
			r.InvoiceNumber == "INV-001" &&
			r.DueDate == "2024-06-20" &&
			r.Tags["template"] == dues.TemplateEmailDay1 &&
			r.HTML != ""
	})).Return(dispatch.Result{Success: true, EmailID: "msg_1"}, nil).Once()

	svc := newService(t, d, at(21), "legal@exemplo.com")
	res, err := svc.Send(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "msg_1", res.EmailID)
	d.AssertExpectations(t)
}

func TestSend_LegalReferral(t *testing.T) {
	t.Parallel()

	d := &MockDispatcher{}
	d.On("Dispatch", mock.Anything, mock.MatchedBy(func(r dispatch.Request) bool {
		return r.To == "legal@exemplo.com" && r.ClientName == "Pedro Costa"
	})).Return(dispatch.Result{Success: true}, nil).Once()

	svc := newService(t, d, at(21), "legal@exemplo.com")
	_, err := svc.Send(context.Background(), "3")
	require.NoError(t, err)
	d.AssertExpectations(t)
}

func TestSend_Refusals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		id    string
		clock dues.Clock
		legal string
		want  error
	}{
		{"unknown client", "99", at(21), "legal@exemplo.com", dues.ErrClientNotFound},
		{"not overdue", "1", at(20), "legal@exemplo.com", reminders.ErrNotOverdue},
		{"whatsapp step", "2", at(21), "legal@exemplo.com", reminders.ErrChannelUnsupported},
		{"no legal address", "3", at(21), "", reminders.ErrNoLegalRecipient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := &MockDispatcher{}
			svc := newService(t, d, tt.clock, tt.legal)

			_, err := svc.Send(context.Background(), tt.id)
			require.ErrorIs(t, err, tt.want)
			d.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
		})
	}
}

func TestSend_DispatchError(t *testing.T) {
	t.Parallel()

	perr := &dispatch.ProviderError{Err: errors.New("rate limited")}
	d := &MockDispatcher{}
	d.On("Dispatch", mock.Anything, mock.Anything).Return(dispatch.Result{}, perr)

	svc := newService(t, d, at(21), "")
	_, err := svc.Send(context.Background(), "4")
	require.Error(t, err)
	assert.True(t, dispatch.IsProviderError(err))
}
