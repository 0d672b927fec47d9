//go:build e2e

package booking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/booking"
	"github.com/ronygeorgen/golf-backend-sub000/internal/infra"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/commands"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/shared"
	"github.com/ronygeorgen/golf-backend-sub000/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CommitSuite struct {
	e2e.SharedSuite
}

func TestCommitSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(CommitSuite))
}

// Eight clients race for the same bay and hour. The row locks taken by the
// commit path must let exactly one insert through; the rest re-check under
// the lock and see the winner's booking.
func (s *CommitSuite) TestConcurrentCommitsSingleWinner() {
	t := s.T()
	bayID := e2e.CreateTestBay(t, s.DB, "Bay 1", 1)

	start := time.Now().UTC().Truncate(time.Hour).Add(48 * time.Hour)
	end := start.Add(time.Hour)

	const workers = 8
	var wg sync.WaitGroup
	errCh := make(chan error, workers)
	release := make(chan struct{})

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-release
			_, err := s.Svc.Bookings.Create(context.Background(), commands.CreateBookingParams{
				ClientID: uuid.New(),
				Category: booking.CategorySimulator,
				BayID:    bayID,
				Start:    start,
				End:      end,
			})
			errCh <- err
		}()
	}
	close(release)
	wg.Wait()
	close(errCh)

	var successes, conflicts int
	for err := range errCh {
		if err == nil {
			successes++
			continue
		}
		var ce *shared.ConflictError
		require.ErrorAs(t, err, &ce, "losers must fail with a conflict, got: %v", err)
		conflicts++
	}
	require.Equal(t, 1, successes)
	require.Equal(t, workers-1, conflicts)

	var count int
	require.NoError(t, s.DB.QueryRow(context.Background(),
		`SELECT count(*) FROM bookings WHERE bay_id = $1 AND status = 'confirmed'`,
		bayID).Scan(&count))
	require.Equal(t, 1, count)
}

// Three transactions race to drain a purchase holding its last session.
// The guard in the UPDATE must let one commit and bounce the other two.
func (s *CommitSuite) TestGuardedDecrementLastSession() {
	t := s.T()
	clientID := uuid.New()
	purchaseID := e2e.CreateTestPurchase(t, s.DB, clientID, "coaching", 1, 0)

	const workers = 3
	var wg sync.WaitGroup
	errCh := make(chan error, workers)
	release := make(chan struct{})

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-release
			ctx := context.Background()
			tx, err := s.DB.Begin(ctx)
			if err != nil {
				errCh <- err
				return
			}
			if err := s.Svc.Credits.Consume(ctx, tx, purchaseID, 1, 0); err != nil {
				_ = tx.Rollback(ctx)
				errCh <- err
				return
			}
			errCh <- tx.Commit(ctx)
		}()
	}
	close(release)
	wg.Wait()
	close(errCh)

	var successes, exceeded int
	for err := range errCh {
		if err == nil {
			successes++
			continue
		}
		require.True(t, infra.IsKind(err, infra.KindBalanceExceeded),
			"losers must hit the balance guard, got: %v", err)
		exceeded++
	}
	require.Equal(t, 1, successes)
	require.Equal(t, workers-1, exceeded)

	var remaining int
	require.NoError(t, s.DB.QueryRow(context.Background(),
		`SELECT sessions_remaining FROM credit_purchases WHERE id = $1`,
		purchaseID).Scan(&remaining))
	require.Equal(t, 0, remaining)
}
