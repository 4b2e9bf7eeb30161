package payout

import (
	"context"
	"errors"
	"testing"
	"time"

	"medibook/database/repository"
	userRepo "medibook/database/repository/user"
	"medibook/models"
	"medibook/services"
)

type fakeUsers struct {
	userRepo.UserRepository
	users map[string]*models.User
}

func (f *fakeUsers) GetByID(id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

type fakePayouts struct {
	users   *fakeUsers
	payouts map[string]*models.Payout
}

func (f *fakePayouts) GetByID(id string) (*models.Payout, error) {
	if p, ok := f.payouts[id]; ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakePayouts) Create(p *models.Payout) error {
	f.payouts[p.ID] = p
	return nil
}

func (f *fakePayouts) ListByDoctor(doctorID string) ([]models.Payout, error) {
	var out []models.Payout
	for _, p := range f.payouts {
		if p.DoctorID == doctorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePayouts) ListByStatus(status models.PayoutStatus) ([]models.Payout, error) {
	var out []models.Payout
	for _, p := range f.payouts {
		if p.Status == status {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePayouts) Approve(_ context.Context, payoutID, adminID string) (*models.Payout, error) {
	p, ok := f.payouts[payoutID]
	if !ok || p.Status != models.PayoutProcessing {
		return nil, repository.ErrStateConflict
	}
	doctor := f.users.users[p.DoctorID]
	if doctor.Credits < p.Credits {
		return nil, repository.ErrInsufficientCredits
	}
	doctor.Credits -= p.Credits
	now := time.Now()
	p.Status, p.ProcessedAt, p.ProcessedBy = models.PayoutProcessed, &now, adminID
	cp := *p
	return &cp, nil
}

type recordingNotifier struct{ recipients []string }

func (r *recordingNotifier) SendPushNotification(_ context.Context, userID, _, _ string, _ map[string]string) error {
	r.recipients = append(r.recipients, userID)
	return nil
}

func newService() (*DefaultPayoutService, *fakeUsers, *recordingNotifier) {
	users := &fakeUsers{users: map[string]*models.User{
		"doc-1":     {ID: "doc-1", Role: models.RoleDoctor, VerificationStatus: models.VerificationVerified, Credits: 6},
		"doc-empty": {ID: "doc-empty", Role: models.RoleDoctor, VerificationStatus: models.VerificationVerified},
		"doc-new":   {ID: "doc-new", Role: models.RoleDoctor, VerificationStatus: models.VerificationPending, Credits: 4},
	}}
	n := &recordingNotifier{}
	return &DefaultPayoutService{
		Users:    users,
		Payouts:  &fakePayouts{users: users, payouts: map[string]*models.Payout{}},
		Notifier: n,
		Rates:    Rates{CreditValue: 10, PlatformFeePerCredit: 2},
	}, users, n
}

func TestRatesAmounts(t *testing.T) {
	amount, fee, net := Rates{CreditValue: 10, PlatformFeePerCredit: 2}.Amounts(6)
	if amount != 60 || fee != 12 || net != 48 {
		t.Errorf("expected 60/12/48, got %d/%d/%d", amount, fee, net)
	}
}

func TestRequestAndApprove(t *testing.T) {
	svc, users, n := newService()
	ctx := context.Background()

	p, err := svc.Request(ctx, "doc-1", "house@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Credits != 6 || p.Amount != 60 || p.PlatformFee != 12 || p.NetAmount != 48 || p.Status != models.PayoutProcessing {
		t.Errorf("unexpected payout %+v", p)
	}

	if _, err := svc.Request(ctx, "doc-1", "house@example.com"); !errors.Is(err, services.ErrConflict) {
		t.Errorf("expected ErrConflict for a second request, got %v", err)
	}

	pending, _ := svc.Pending(ctx)
	if len(pending) != 1 {
		t.Fatalf("expected one pending payout, got %d", len(pending))
	}

	approved, err := svc.Approve(ctx, "admin-1", p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if approved.Status != models.PayoutProcessed || approved.ProcessedBy != "admin-1" || approved.ProcessedAt == nil {
		t.Errorf("unexpected approved payout %+v", approved)
	}
	if users.users["doc-1"].Credits != 0 {
		t.Errorf("expected the doctor's credits to be debited, got %d", users.users["doc-1"].Credits)
	}
	if len(n.recipients) != 1 || n.recipients[0] != "doc-1" {
		t.Errorf("expected the doctor to be notified, got %v", n.recipients)
	}

	if _, err := svc.Approve(ctx, "admin-1", p.ID); !errors.Is(err, services.ErrConflict) {
		t.Errorf("expected ErrConflict approving twice, got %v", err)
	}
	if _, err := svc.Approve(ctx, "admin-1", "missing"); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRequestErrors(t *testing.T) {
	svc, _, _ := newService()
	cases := []struct {
		doctorID string
		want     error
	}{
		{"doc-empty", services.ErrInsufficientCredits},
		{"doc-new", services.ErrForbidden},
		{"ghost", services.ErrNotFound},
	}
	for _, c := range cases {
		if _, err := svc.Request(context.Background(), c.doctorID, "a@b.co"); !errors.Is(err, c.want) {
			t.Errorf("%s: expected %v, got %v", c.doctorID, c.want, err)
		}
	}
}
