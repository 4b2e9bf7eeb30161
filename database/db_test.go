package database

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// retryingSession re-runs the callback while it fails with a transient
// transaction label, the way the driver does.
type retryingSession struct {
	mongo.Session
	maxAttempts int
	attempts    int
}

func (s *retryingSession) WithTransaction(ctx context.Context, fn func(mongo.SessionContext) (interface{}, error), _ ...*options.TransactionOptions) (interface{}, error) {
	for {
		s.attempts++
		res, err := fn(nil)
		var labeled mongo.LabeledError
		if err != nil && errors.As(err, &labeled) && labeled.HasErrorLabel("TransientTransactionError") && s.attempts < s.maxAttempts {
			continue
		}
		return res, err
	}
}

func writeConflict() error {
	return mongo.CommandError{Code: 112, Name: "WriteConflict", Labels: []string{"TransientTransactionError"}}
}

func TestRunTransactionRetriesTransientErrors(t *testing.T) {
	cases := []struct {
		name         string
		failures     int
		maxAttempts  int
		wantAttempts int
		wantErr      bool
	}{
		{"commits first time", 0, 3, 1, false},
		{"write conflict then success", 1, 3, 2, false},
		{"conflicts until the driver gives up", 5, 3, 3, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sess := &retryingSession{maxAttempts: c.maxAttempts}
			calls := 0
			err := runTransaction(context.Background(), sess, func(mongo.SessionContext) error {
				calls++
				if calls <= c.failures {
					return errors.Join(errors.New("credit doctor failed"), writeConflict())
				}
				return nil
			})
			if (err != nil) != c.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, c.wantErr)
			}
			if sess.attempts != c.wantAttempts || calls != c.wantAttempts {
				t.Errorf("attempts = %d, calls = %d, want %d", sess.attempts, calls, c.wantAttempts)
			}
		})
	}
}

func TestRunTransactionReturnsDomainErrors(t *testing.T) {
	sentinel := errors.New("slot taken")
	sess := &retryingSession{maxAttempts: 3}
	err := runTransaction(context.Background(), sess, func(mongo.SessionContext) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected the callback error, got %v", err)
	}
	if sess.attempts != 1 {
		t.Errorf("non-transient errors must not be retried, got %d attempts", sess.attempts)
	}
}
