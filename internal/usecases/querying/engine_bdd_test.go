package querying

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

type engineScenario struct {
	records []*domain.Transaction
	result  *domain.SalesPage
}

func (s *engineScenario) theFollowingTransactions(table *godog.Table) error {
	s.records = nil

	header := table.Rows[0].Cells
	for _, row := range table.Rows[1:] {
		tx := &domain.Transaction{Tags: []string{}}
		for i, cell := range row.Cells {
			if err := setColumn(tx, header[i].Value, cell.Value); err != nil {
				return err
			}
		}
		s.records = append(s.records, tx)
	}

	return nil
}

func setColumn(tx *domain.Transaction, column, value string) error {
	var err error

	switch column {
	case "id":
		tx.TransactionID = value
	case "customer":
		tx.CustomerName = value
	case "region":
		tx.CustomerRegion = value
	case "age":
		if value == "" {
			return nil
		}
		age, convErr := strconv.Atoi(value)
		tx.Age, err = &age, convErr
	case "quantity":
		tx.Quantity, err = strconv.Atoi(value)
	case "total":
		tx.TotalAmount, err = strconv.ParseFloat(value, 64)
	case "final":
		tx.FinalAmount, err = strconv.ParseFloat(value, 64)
	default:
		return fmt.Errorf("unknown column %q", column)
	}

	return err
}

func (s *engineScenario) iQueryWith(raw string) error {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return err
	}

	s.result = Execute(s.records, ParseQuery(values, DefaultDefaults()))
	return nil
}

func (s *engineScenario) theResultHasTransactions(n int) error {
	if len(s.result.Data) != n {
		return fmt.Errorf("expected %d transactions, got %d", n, len(s.result.Data))
	}
	return nil
}

func (s *engineScenario) theTransactionsAre(expected string) error {
	got := strings.Join(ids(s.result.Data), ",")
	if got != expected {
		return fmt.Errorf("expected %s, got %s", expected, got)
	}
	return nil
}

func (s *engineScenario) theTotalUnitsSoldIs(n int) error {
	if s.result.Stats.TotalUnitsSold != n {
		return fmt.Errorf("expected %d units, got %d", n, s.result.Stats.TotalUnitsSold)
	}
	return nil
}

func (s *engineScenario) theTotalAmountIs(amount float64) error {
	if s.result.Stats.TotalAmount != amount {
		return fmt.Errorf("expected total amount %.2f, got %.2f", amount, s.result.Stats.TotalAmount)
	}
	return nil
}

func (s *engineScenario) theTotalDiscountIs(amount float64) error {
	if s.result.Stats.TotalDiscount != amount {
		return fmt.Errorf("expected total discount %.2f, got %.2f", amount, s.result.Stats.TotalDiscount)
	}
	return nil
}

func (s *engineScenario) theCurrentPageIs(page int) error {
	if s.result.Meta.CurrentPage != page {
		return fmt.Errorf("expected current page %d, got %d", page, s.result.Meta.CurrentPage)
	}
	return nil
}

func (s *engineScenario) theTotalPagesIs(pages int) error {
	if s.result.Meta.TotalPages != pages {
		return fmt.Errorf("expected %d pages, got %d", pages, s.result.Meta.TotalPages)
	}
	return nil
}

func initializeEngineScenario(sc *godog.ScenarioContext) {
	s := &engineScenario{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		s.records = nil
		s.result = nil
		return ctx, nil
	})

	sc.Step(`^the following transactions:$`, s.theFollowingTransactions)
	sc.Step(`^I query with "([^"]*)"$`, s.iQueryWith)
	sc.Step(`^the result has (\d+) transactions$`, s.theResultHasTransactions)
	sc.Step(`^the transactions are "([^"]*)"$`, s.theTransactionsAre)
	sc.Step(`^the total units sold is (\d+)$`, s.theTotalUnitsSoldIs)
	sc.Step(`^the total amount is (\d+(?:\.\d+)?)$`, s.theTotalAmountIs)
	sc.Step(`^the total discount is (\d+(?:\.\d+)?)$`, s.theTotalDiscountIs)
	sc.Step(`^the current page is (\d+)$`, s.theCurrentPageIs)
	sc.Step(`^the total pages is (\d+)$`, s.theTotalPagesIs)
}

func TestEngineFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeEngineScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
