package templates

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/quickwinfinance/duesflow/pkg/dues"
)

// Placeholders recognised in template text, in display order.
const (
	PlaceholderName        = "NAME"
	PlaceholderEmail       = "EMAIL"
	PlaceholderPhone       = "PHONE"
	PlaceholderInvoice     = "INVOICE"
	PlaceholderAmount      = "AMOUNT"
	PlaceholderDueDate     = "DUE_DATE"
	PlaceholderDaysOverdue = "DAYS_OVERDUE"
)

var placeholders = []string{
	PlaceholderName,
	PlaceholderEmail,
	PlaceholderPhone,
	PlaceholderInvoice,
	PlaceholderAmount,
	PlaceholderDueDate,
	PlaceholderDaysOverdue,
}

var placeholderRe = regexp.MustCompile(`\[([A-Z_]+)\]`)

// Template is an editable message for one escalation step.
type Template struct {
	ID        string       `json:"id" yaml:"id"`
	Channel   dues.Channel `json:"channel" yaml:"channel"`
	Name      string       `json:"name" yaml:"name"`
	Subject   string       `json:"subject" yaml:"subject"`
	Content   string       `json:"content" yaml:"-"`
	Variables []string     `json:"variables" yaml:"-"`
}

// Variables lists the known placeholders used in text, without brackets,
// in order of first appearance.
func Variables(text string) []string {
	out := []string{}
	for _, m := range placeholderRe.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if slices.Contains(placeholders, name) && !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}

// Values maps placeholder names to their text for one client.
type Values map[string]string

// Substitute replaces every known placeholder in text. Unknown bracketed
// words are left as written.
func (v Values) Substitute(text string) string {
	pairs := make([]string, 0, len(v)*2)
	for _, name := range placeholders {
		if val, ok := v[name]; ok {
			pairs = append(pairs, "["+name+"]", val)
		}
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// ValuesFor builds the placeholder values for client at now.
func ValuesFor(c dues.ClientDue, now time.Time, amounts *dues.AmountFormatter, dateLayout string) Values {
	return Values{
		PlaceholderName:        c.Name,
		PlaceholderEmail:       c.Email,
		PlaceholderPhone:       c.Phone,
		PlaceholderInvoice:     c.Invoice,
		PlaceholderAmount:      amounts.Format(c.Amount),
		PlaceholderDueDate:     c.DueDate.Format(dateLayout),
		PlaceholderDaysOverdue: strconv.Itoa(c.DaysOverdue(now)),
	}
}
