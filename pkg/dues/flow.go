package dues

// Channel is the medium a flow step uses.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
)

// FlowStep is one step of the fixed escalation flow.
type FlowStep struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	TemplateID  string           `json:"templateId"`
	Channel     Channel          `json:"channel"`
	Status      EscalationStatus `json:"status"`
	Day         int              `json:"day"`
	// Recipient is "client" or "legal".
	Recipient string `json:"recipient"`
}

// Template ids of the three flow steps.
const (
	TemplateEmailDay1    = "email_day1"
	TemplateWhatsAppDay3 = "whatsapp_day3"
	TemplateLegalDay5    = "legal_day5"
)

var flow = []FlowStep{
	{
		Day:         1,
		Title:       "Email to client",
		Description: "Friendly collection email to the client's contact",
		TemplateID:  TemplateEmailDay1,
		Channel:     ChannelEmail,
		Status:      StatusEmailSent,
		Recipient:   "client",
	},
	{
		Day:         3,
		Title:       "WhatsApp to client",
		Description: "WhatsApp message with a more direct tone",
		TemplateID:  TemplateWhatsAppDay3,
		Channel:     ChannelWhatsApp,
		Status:      StatusWhatsAppSent,
		Recipient:   "client",
	},
	{
		Day:         5,
		Title:       "Refer to legal",
		Description: "Automatic email to the legal team with the client's details",
		TemplateID:  TemplateLegalDay5,
		Channel:     ChannelEmail,
		Status:      StatusLegal,
		Recipient:   "legal",
	},
}

// Flow returns the escalation steps ordered by day.
func Flow() []FlowStep {
	out := make([]FlowStep, len(flow))
	copy(out, flow)
	return out
}

// StepFor returns the step the policy assigns to a client daysOverdue days
// late. It returns false for clients that are not overdue.
func StepFor(daysOverdue int) (FlowStep, bool) {
	return StepForStatus(PolicyStatus(daysOverdue))
}

// StepForStatus returns the step that produces status.
func StepForStatus(status EscalationStatus) (FlowStep, bool) {
	for _, s := range flow {
		if s.Status == status {
			return s, true
		}
	}
	return FlowStep{}, false
}

// StepForTemplate returns the step that uses template id.
func StepForTemplate(id string) (FlowStep, bool) {
	for _, s := range flow {
		if s.TemplateID == id {
			return s, true
		}
	}
	return FlowStep{}, false
}

// FlowStepStats is a flow step with the number of clients currently on it.
type FlowStepStats struct {
	FlowStep
	ActiveClients int `json:"activeClients"`
}

// FlowStats counts, per step, clients whose policy status equals the step's status.
func FlowStats(clients []ClientDue, now Clock) []FlowStepStats {
	t := now()
	counts := make(map[EscalationStatus]int, len(flow))
	for _, c := range clients {
		counts[PolicyStatus(c.DaysOverdue(t))]++
	}

	out := make([]FlowStepStats, 0, len(flow))
	for _, s := range flow {
		out = append(out, FlowStepStats{FlowStep: s, ActiveClients: counts[s.Status]})
	}
	return out
}
