package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/clubledger/clubledger/internal/apperrors"
	"github.com/clubledger/clubledger/internal/core/domain"
	portsrepo "github.com/clubledger/clubledger/internal/core/ports/repositories"
	portssvc "github.com/clubledger/clubledger/internal/core/ports/services"
	"github.com/clubledger/clubledger/internal/dto"
	"github.com/clubledger/clubledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// categoryOrder fixes the display order of category buckets.
var categoryOrder = []domain.AccountType{
	domain.Asset, domain.Liability, domain.Equity, domain.Income, domain.Expense,
}

// RegisterService merges both movement stores into one chronological list
// annotated with per-account running balances.
type RegisterService struct {
	BaseService
	movementRepo portsrepo.MovementRepository
	balanceSvc   portssvc.BalanceSvc
}

// NewRegisterService creates a new register aggregator.
func NewRegisterService(movementRepo portsrepo.MovementRepository, balanceSvc portssvc.BalanceSvc) *RegisterService {
	return &RegisterService{movementRepo: movementRepo, balanceSvc: balanceSvc}
}

// Ensure RegisterService implements portssvc.RegisterSvc
var _ portssvc.RegisterSvc = (*RegisterService)(nil)

// BuildRegister fetches the filtered movement list, seeds a running balance
// per touched account from its opening balance at the window start, then
// walks the rows once in date order stamping post-update balances and
// accumulating grand totals. Identical filters always yield identical
// balances: nothing here depends on request-local state.
func (s *RegisterService) BuildRegister(ctx context.Context, params dto.RegisterParams) (*domain.RegisterResult, error) {
	filter, err := s.resolveFilter(params)
	if err != nil {
		return nil, err
	}

	movements, err := s.movementRepo.FetchMovements(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch movements for register")
		return nil, err
	}

	// Opening balance per distinct account, anchored strictly before the
	// window start.
	running := make(map[string]decimal.Decimal)
	for _, m := range movements {
		if m.AccountID == "" {
			continue
		}
		if _, seen := running[m.AccountID]; seen {
			continue
		}
		opening, err := s.balanceSvc.OpeningBalance(ctx, m.AccountID, &filter.DateFrom)
		if err != nil {
			return nil, err
		}
		running[m.AccountID] = opening
	}

	result := &domain.RegisterResult{
		Rows:        movements,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	for i := range movements {
		m := &movements[i]
		result.TotalDebit = result.TotalDebit.Add(m.Debit)
		result.TotalCredit = result.TotalCredit.Add(m.Credit)

		// Rows with no resolvable account carry a zero balance and do not
		// perturb any account's running total.
		if m.AccountID == "" {
			m.RunningBalance = decimal.Zero
			continue
		}

		delta, err := accounting.SignedDelta(m.AccountType, m.Debit, m.Credit)
		if err != nil {
			s.LogError(ctx, err, "Skipping sign convention for movement",
				"entry_id", m.EntryID)
			m.RunningBalance = running[m.AccountID]
			continue
		}
		running[m.AccountID] = running[m.AccountID].Add(delta)
		m.RunningBalance = running[m.AccountID]
	}

	result.Groups = groupMovements(movements)
	return result, nil
}

// resolveFilter validates params and resolves presets and defaults into a
// concrete repository filter.
func (s *RegisterService) resolveFilter(params dto.RegisterParams) (portsrepo.RegisterFilter, error) {
	filter := portsrepo.RegisterFilter{
		AccountID: params.AccountID,
		Source:    params.Source,
		Search:    params.Search,
	}
	if filter.Source == "" {
		filter.Source = "all"
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if params.Preset != "" {
		from, to, err := resolvePreset(params.Preset, today)
		if err != nil {
			return filter, err
		}
		filter.DateFrom, filter.DateTo = from, to
	} else {
		filter.DateFrom = params.DateFrom
		filter.DateTo = params.DateTo
		if filter.DateFrom.IsZero() {
			// Default window: current month to date.
			filter.DateFrom = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		}
		if filter.DateTo.IsZero() {
			filter.DateTo = today
		}
	}
	if filter.DateTo.Before(filter.DateFrom) {
		return filter, fmt.Errorf("%w: date_to precedes date_from", apperrors.ErrValidation)
	}

	if params.MinAmount != "" {
		min, err := decimal.NewFromString(params.MinAmount)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid min_amount", apperrors.ErrValidation)
		}
		filter.MinAmount = &min
	}
	if params.MaxAmount != "" {
		max, err := decimal.NewFromString(params.MaxAmount)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid max_amount", apperrors.ErrValidation)
		}
		filter.MaxAmount = &max
	}
	return filter, nil
}

// resolvePreset maps a named date preset onto a concrete [from, to] window.
// Weeks start on Monday; quarters on Jan/Apr/Jul/Oct.
func resolvePreset(preset string, today time.Time) (time.Time, time.Time, error) {
	switch preset {
	case "today":
		return today, today, nil
	case "week":
		weekday := int(today.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		return today.AddDate(0, 0, -(weekday - 1)), today, nil
	case "month":
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), today, nil
	case "last_month":
		firstOfThis := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		firstOfLast := firstOfThis.AddDate(0, -1, 0)
		return firstOfLast, firstOfThis.AddDate(0, 0, -1), nil
	case "quarter":
		quarterMonth := time.Month(((int(today.Month())-1)/3)*3 + 1)
		return time.Date(today.Year(), quarterMonth, 1, 0, 0, 0, 0, time.UTC), today, nil
	case "ytd":
		return time.Date(today.Year(), 1, 1, 0, 0, 0, 0, time.UTC), today, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown preset '%s'", apperrors.ErrValidation, preset)
	}
}

// groupMovements buckets rows by category (account type), then account, then
// chronological row, carrying per-category row counts for table rendering.
// An empty register yields a single placeholder group so the view layer
// always has something to span.
func groupMovements(movements []domain.Movement) []domain.RegisterGroup {
	if len(movements) == 0 {
		return []domain.RegisterGroup{{Category: "", Accounts: []domain.AccountBucket{}, RowCount: 0}}
	}

	type bucketKey struct {
		category  domain.AccountType
		accountID string
	}
	buckets := make(map[bucketKey]*domain.AccountBucket)
	perCategory := make(map[domain.AccountType][]*domain.AccountBucket)

	for _, m := range movements {
		key := bucketKey{category: m.AccountType, accountID: m.AccountID}
		b, ok := buckets[key]
		if !ok {
			b = &domain.AccountBucket{
				AccountID:     m.AccountID,
				AccountName:   m.AccountName,
				AccountNumber: m.AccountNumber,
			}
			buckets[key] = b
			perCategory[m.AccountType] = append(perCategory[m.AccountType], b)
		}
		b.Rows = append(b.Rows, m)
	}

	groups := []domain.RegisterGroup{}
	appendCategory := func(cat domain.AccountType) {
		accounts := perCategory[cat]
		if len(accounts) == 0 {
			return
		}
		sort.Slice(accounts, func(i, j int) bool {
			return accounts[i].AccountNumber < accounts[j].AccountNumber
		})
		group := domain.RegisterGroup{Category: cat, Accounts: make([]domain.AccountBucket, 0, len(accounts))}
		for _, b := range accounts {
			group.Accounts = append(group.Accounts, *b)
			group.RowCount += len(b.Rows)
		}
		groups = append(groups, group)
	}

	for _, cat := range categoryOrder {
		appendCategory(cat)
	}
	// Rows with unresolvable accounts trail as an uncategorized bucket.
	appendCategory("")
	return groups
}
