package dues

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures/clients.yaml
var fixtures embed.FS

// Repository reads client dues.
type Repository interface {
	List(ctx context.Context) ([]ClientDue, error)
	Get(ctx context.Context, id string) (ClientDue, error)
}

// FixtureRepository serves an immutable in-memory client list.
type FixtureRepository struct {
	byID    map[string]int
	clients []ClientDue
}

type fixtureFile struct {
	Clients []fixtureRecord `yaml:"clients"`
}

type fixtureRecord struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Email        string `yaml:"email"`
	Phone        string `yaml:"phone"`
	Invoice      string `yaml:"invoice"`
	Amount       string `yaml:"amount"`
	DueDate      string `yaml:"dueDate"`
	Status       string `yaml:"status"`
	LastActionAt string `yaml:"lastActionAt"`
}

// NewFixtureRepository loads the embedded client fixtures.
func NewFixtureRepository() (*FixtureRepository, error) {
	data, err := fixtures.ReadFile("fixtures/clients.yaml")
	if err != nil {
		return nil, errors.Join(ErrInvalidFixture, err)
	}
	return LoadFixtures(data)
}

// LoadFixtures parses a YAML client list. Ids must be unique and amounts
// non-negative.
func LoadFixtures(data []byte) (*FixtureRepository, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}

	repo := &FixtureRepository{
		byID:    make(map[string]int, len(file.Clients)),
		clients: make([]ClientDue, 0, len(file.Clients)),
	}
	for i, rec := range file.Clients {
		c, err := rec.toClient()
		if err != nil {
			return nil, fmt.Errorf("%w: client #%d: %v", ErrInvalidFixture, i+1, err)
		}
		if _, dup := repo.byID[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate client id %q", ErrInvalidFixture, c.ID)
		}
		repo.byID[c.ID] = len(repo.clients)
		repo.clients = append(repo.clients, c)
	}
	return repo, nil
}

func (r fixtureRecord) toClient() (ClientDue, error) {
	if r.ID == "" {
		return ClientDue{}, errors.New("missing id")
	}
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return ClientDue{}, fmt.Errorf("amount: %w", err)
	}
	if amount.IsNegative() {
		return ClientDue{}, errors.New("amount is negative")
	}
	due, err := ParseDate(r.DueDate)
	if err != nil {
		return ClientDue{}, fmt.Errorf("dueDate: %w", err)
	}

	c := ClientDue{
		ID:      r.ID,
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Invoice: r.Invoice,
		Amount:  amount,
		DueDate: due,
		Status:  ParseStatus(r.Status),
	}
	if r.LastActionAt != "" {
		at, err := time.Parse(time.RFC3339, r.LastActionAt)
		if err != nil {
			return ClientDue{}, fmt.Errorf("lastActionAt: %w", err)
		}
		c.LastActionAt = &at
	}
	return c, nil
}

// List returns a copy of all clients in fixture order.
func (r *FixtureRepository) List(_ context.Context) ([]ClientDue, error) {
	out := make([]ClientDue, len(r.clients))
	copy(out, r.clients)
	return out, nil
}

// Get returns one client or ErrClientNotFound.
func (r *FixtureRepository) Get(_ context.Context, id string) (ClientDue, error) {
	i, ok := r.byID[id]
	if !ok {
		return ClientDue{}, ErrClientNotFound
	}
	return r.clients[i], nil
}
