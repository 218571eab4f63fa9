package services_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/core/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/platform/config"
	"github.com/SscSPs/finance_tracker/internal/repositories/memory"
	"github.com/stretchr/testify/suite"
)

var fixedNow = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

// ServicesTestSuite runs every service over a fresh in-memory store.
type ServicesTestSuite struct {
	suite.Suite
	ctx       context.Context
	store     *memory.Store
	container *portssvc.ServiceContainer
	seq       atomic.Int64
}

func (s *ServicesTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.seq.Store(0)
	cfg := &config.Config{
		DefaultCurrency:   "USD",
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "finance-tracker-test",
	}
	s.container = services.NewServiceContainer(cfg, s.store,
		services.WithIDGenerator(s.nextID),
		services.WithClock(func() time.Time { return fixedNow }),
	)
}

func (s *ServicesTestSuite) nextID() string {
	return fmt.Sprintf("id-%04d", s.seq.Add(1))
}

func (s *ServicesTestSuite) addTx(username, amount, currency, category, date, txType string) string {
	tx, err := s.container.Transaction.AddTransaction(s.ctx, username, dto.CreateTransactionRequest{
		Amount:      dto.FlexString(amount),
		Currency:    currency,
		Category:    category,
		Date:        date,
		Description: "test " + category,
		Type:        txType,
	})
	s.Require().NoError(err)
	return tx.ID
}
