package templates_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickwinfinance/duesflow/pkg/dues"
	"github.com/quickwinfinance/duesflow/pkg/store"
	"github.com/quickwinfinance/duesflow/pkg/templates"
	"github.com/quickwinfinance/duesflow/pkg/validator"
)

var now = time.Date(2024, 6, 21, 10, 0, 0, 0, time.FixedZone("BRT", -3*60*60))

func newService(t *testing.T) (*templates.Service, store.Store[templates.Template]) {
	t.Helper()

	amounts, err := dues.NewAmountFormatter("pt-BR", "R$")
	require.NoError(t, err)

	st := store.NewMemory[templates.Template]()
	svc, err := templates.NewService(st, amounts)
	require.NoError(t, err)
	require.NoError(t, svc.Seed(context.Background()))
	return svc, st
}

func client(t *testing.T, id string) dues.ClientDue {
	t.Helper()

	repo, err := dues.NewFixtureRepository()
	require.NoError(t, err)
	c, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	return c
}

func TestVariables(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"NAME", "AMOUNT"}, templates.Variables("Hi [NAME], pay [AMOUNT] now [NAME]"))
	assert.Equal(t, []string{}, templates.Variables("no placeholders [UNKNOWN] [name]"))
}

func TestValues_Substitute(t *testing.T) {
	t.Parallel()

	v := templates.Values{"NAME": "Ana", "INVOICE": "INV-004"}
	assert.Equal(t, "Ana owes INV-004 [AMOUNT] [OTHER]", v.Substitute("[NAME] owes [INVOICE] [AMOUNT] [OTHER]"))
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	defs, err := templates.Defaults()
	require.NoError(t, err)
	require.Len(t, defs, 3)

	assert.Equal(t, dues.TemplateEmailDay1, defs[0].ID)
	assert.Equal(t, dues.ChannelEmail, defs[0].Channel)
	assert.NotEmpty(t, defs[0].Subject)
	assert.Equal(t, []string{"NAME", "INVOICE", "AMOUNT", "DUE_DATE"}, defs[0].Variables)

	assert.Equal(t, dues.TemplateWhatsAppDay3, defs[1].ID)
	assert.Equal(t, dues.ChannelWhatsApp, defs[1].Channel)
	assert.Empty(t, defs[1].Subject)

	assert.Equal(t, dues.TemplateLegalDay5, defs[2].ID)
	assert.Len(t, defs[2].Variables, 7)
	assert.False(t, strings.HasSuffix(defs[2].Content, "\n"))
}

func TestService_GetAndList(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, dues.TemplateLegalDay5, list[2].ID)

	got, err := svc.Get(ctx, dues.TemplateWhatsAppDay3)
	require.NoError(t, err)
	assert.Equal(t, "WhatsApp - Day 3", got.Name)

	_, err = svc.Get(ctx, "sms_day2")
	require.ErrorIs(t, err, templates.ErrTemplateNotFound)
}

func TestService_GetFallsBackToDefault(t *testing.T) {
	t.Parallel()

	amounts, err := dues.NewAmountFormatter("pt-BR", "R$")
	require.NoError(t, err)

	svc, err := templates.NewService(store.NewMemory[templates.Template](), amounts)
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), dues.TemplateEmailDay1)
	require.NoError(t, err)
	assert.Equal(t, dues.TemplateEmailDay1, got.ID)
}

func TestService_Update(t *testing.T) {
	t.Parallel()

	t.Run("stores sanitized text and derives variables", func(t *testing.T) {
		t.Parallel()

		svc, st := newService(t)
		ctx := context.Background()

		got, err := svc.Update(ctx, dues.TemplateEmailDay1, templates.Update{
			Subject: "  Reminder for <b>[NAME]</b> ",
			Content: "Invoice [INVOICE]<script>alert(1)</script> is late.",
		})
		require.NoError(t, err)
		assert.Equal(t, "Reminder for [NAME]", got.Subject)
		assert.Equal(t, "Invoice [INVOICE] is late.", got.Content)
		assert.Equal(t, []string{"NAME", "INVOICE"}, got.Variables)

		stored, err := st.Get(ctx, dues.TemplateEmailDay1)
		require.NoError(t, err)
		assert.Equal(t, got, stored)
	})

	t.Run("seed keeps edited templates", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t)
		ctx := context.Background()

		_, err := svc.Update(ctx, dues.TemplateLegalDay5, templates.Update{Subject: "Refer", Content: "Client [NAME]"})
		require.NoError(t, err)
		require.NoError(t, svc.Seed(ctx))

		got, err := svc.Get(ctx, dues.TemplateLegalDay5)
		require.NoError(t, err)
		assert.Equal(t, "Refer", got.Subject)
	})

	tests := []struct {
		name  string
		id    string
		in    templates.Update
		field string
	}{
		{"content required", dues.TemplateEmailDay1, templates.Update{Subject: "s", Content: "  "}, "content"},
		{"content only html", dues.TemplateEmailDay1, templates.Update{Subject: "s", Content: "<br/>"}, "content"},
		{"email subject required", dues.TemplateLegalDay5, templates.Update{Content: "c"}, "subject"},
		{"whatsapp subject must be empty", dues.TemplateWhatsAppDay3, templates.Update{Subject: "s", Content: "c"}, "subject"},
		{"subject too long", dues.TemplateEmailDay1, templates.Update{Subject: strings.Repeat("s", 201), Content: "c"}, "subject"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, _ := newService(t)
			_, err := svc.Update(context.Background(), tt.id, tt.in)
			require.Error(t, err)

			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.True(t, verrs.Has(tt.field), "%v", verrs)
		})
	}

	t.Run("unknown template", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t)
		_, err := svc.Update(context.Background(), "nope", templates.Update{Content: "c"})
		require.ErrorIs(t, err, templates.ErrTemplateNotFound)
	})
}

func TestService_Render(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()

	t.Run("email day 1", func(t *testing.T) {
		t.Parallel()

		out, err := svc.Render(ctx, dues.TemplateEmailDay1, client(t, "1"), now)
		require.NoError(t, err)

		assert.Equal(t, dues.ChannelEmail, out.Channel)
		assert.Equal(t, "Payment reminder - overdue invoice", out.Subject)
		assert.Contains(t, out.Text, "Hello João Silva,")
		assert.Contains(t, out.Text, "invoice INV-001 for R$ ")
		assert.Contains(t, out.Text, "due on 20/06/2024")
		assert.NotContains(t, out.Text, "[")

		assert.Contains(t, out.HTML, "<!DOCTYPE html>")
		assert.Contains(t, out.HTML, "Quick Win Finance")
		assert.Contains(t, out.HTML, "<p>Hello João Silva,</p>")
	})

	t.Run("legal day 5 lists client details", func(t *testing.T) {
		t.Parallel()

		out, err := svc.Render(ctx, dues.TemplateLegalDay5, client(t, "3"), now)
		require.NoError(t, err)
		assert.Contains(t, out.Text, "• Email: pedro@exemplo.com")
		assert.Contains(t, out.Text, "• Phone: (11) 99999-9012")
		assert.Contains(t, out.Text, "• Days overdue: 5")
		assert.Contains(t, out.HTML, "<br")
	})

	t.Run("whatsapp has no subject", func(t *testing.T) {
		t.Parallel()

		out, err := svc.Render(ctx, dues.TemplateWhatsAppDay3, client(t, "2"), now)
		require.NoError(t, err)
		assert.Empty(t, out.Subject)
		assert.Contains(t, out.Text, "is 3 days overdue")
	})

	t.Run("unknown template", func(t *testing.T) {
		t.Parallel()

		_, err := svc.Render(ctx, "nope", client(t, "1"), now)
		require.ErrorIs(t, err, templates.ErrTemplateNotFound)
	})
}

func TestService_WithDateLayout(t *testing.T) {
	t.Parallel()

	amounts, err := dues.NewAmountFormatter("en-US", "$")
	require.NoError(t, err)

	svc, err := templates.NewService(store.NewMemory[templates.Template](), amounts,
		templates.WithDateLayout(dues.DateLayout),
		templates.WithBrand("Acme"),
	)
	require.NoError(t, err)

	out, err := svc.Render(context.Background(), dues.TemplateEmailDay1, client(t, "1"), now)
	require.NoError(t, err)
	assert.Contains(t, out.Text, "due on 2024-06-20")
	assert.Contains(t, out.HTML, "Acme")
}
