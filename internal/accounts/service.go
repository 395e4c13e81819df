// Package accounts is the chart-of-accounts lookup used to resolve the
// account codes typed on postings.
package accounts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/haulbook/haulbook/internal/model"
)

// ChartPath is the chart location relative to a project root.
var ChartPath = filepath.Join("accounts", "chart-of-accounts.csv")

// Service provides in-memory lookup over the chart of accounts.
type Service struct {
	accounts  []model.Account
	byCode    map[string]model.Account
	byReduced map[int]model.Account
}

// NewService creates a Service from a slice of accounts.
func NewService(accounts []model.Account) *Service {
	s := &Service{
		accounts:  accounts,
		byCode:    make(map[string]model.Account, len(accounts)),
		byReduced: make(map[int]model.Account, len(accounts)),
	}
	for _, a := range accounts {
		s.byCode[a.Code] = a
		if a.ReducedCode != 0 {
			s.byReduced[a.ReducedCode] = a
		}
	}
	return s
}

// Load reads the chart of accounts from a project root.
func Load(root string) (*Service, error) {
	return LoadFile(filepath.Join(root, ChartPath))
}

// LoadFile reads a chart of accounts CSV.
func LoadFile(path string) (*Service, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewService(accts), nil
}

// All returns all accounts.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Get returns an account by full code.
func (s *Service) Get(code string) (model.Account, bool) {
	a, ok := s.byCode[code]
	return a, ok
}

// Lookup returns an account by reduced code.
func (s *Service) Lookup(reduced int) (model.Account, bool) {
	a, ok := s.byReduced[reduced]
	return a, ok
}

// Exists reports whether a full account code exists.
func (s *Service) Exists(code string) bool {
	_, ok := s.byCode[code]
	return ok
}

// Resolve accepts either a full code or a reduced code and returns the account.
func (s *Service) Resolve(ref string) (model.Account, bool) {
	ref = strings.TrimSpace(ref)
	if a, ok := s.byCode[ref]; ok {
		return a, true
	}
	if n, err := strconv.Atoi(ref); err == nil {
		return s.Lookup(n)
	}
	return model.Account{}, false
}

// Search returns accounts whose code, reduced code or name contains query.
// Matching ignores case and accents. Results are ordered by code.
func (s *Service) Search(query string) []model.Account {
	q := fold(query)
	if q == "" {
		return nil
	}
	var result []model.Account
	for _, a := range s.accounts {
		if strings.Contains(a.Code, q) ||
			strconv.Itoa(a.ReducedCode) == q ||
			strings.Contains(fold(a.Name), q) {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result
}

// ByType returns all accounts of the given type.
func (s *Service) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}

// Save writes the chart of accounts under a project root.
func (s *Service) Save(root string) error {
	path := filepath.Join(root, ChartPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}

func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
