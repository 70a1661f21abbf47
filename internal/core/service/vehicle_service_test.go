package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/anthonycdp/autovision-project-sub001/internal/core/domain"
	"github.com/anthonycdp/autovision-project-sub001/internal/core/ports"
)

type stubVehicleRepo struct {
	vehicles map[string]*domain.Vehicle
	seq      int
	updates  int
}

func newStubVehicleRepo() *stubVehicleRepo {
	return &stubVehicleRepo{vehicles: make(map[string]*domain.Vehicle)}
}

func cloneVehicle(v *domain.Vehicle) *domain.Vehicle {
	if v == nil {
		return nil
	}
	clone := *v
	return &clone
}

func (r *stubVehicleRepo) Create(_ context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	r.seq++
	copy := cloneVehicle(v)
	copy.ID = fmt.Sprintf("v-%d", r.seq)
	r.vehicles[copy.ID] = cloneVehicle(copy)
	return cloneVehicle(copy), nil
}

func (r *stubVehicleRepo) FindByID(_ context.Context, id string) (*domain.Vehicle, error) {
	if v, ok := r.vehicles[id]; ok {
		return cloneVehicle(v), nil
	}
	return nil, domain.ErrVehicleNotFound
}

func (r *stubVehicleRepo) Update(_ context.Context, v *domain.Vehicle) error {
	if _, ok := r.vehicles[v.ID]; !ok {
		return domain.ErrVehicleNotFound
	}
	r.updates++
	r.vehicles[v.ID] = cloneVehicle(v)
	return nil
}

func (r *stubVehicleRepo) List(_ context.Context, filter ports.ListVehiclesFilter) ([]*domain.Vehicle, int64, error) {
	var items []*domain.Vehicle
	for _, v := range r.vehicles {
		if filter.VisibleTo != "" && !v.OwnedBy(filter.VisibleTo) && v.ApprovalStatus != domain.ApprovalApproved {
			continue
		}
		items = append(items, cloneVehicle(v))
	}
	return items, int64(len(items)), nil
}

func (r *stubVehicleRepo) Summarize(_ context.Context) (*ports.SalesSummary, error) {
	summary := &ports.SalesSummary{
		ByStatus:   make(map[domain.VehicleStatus]int64),
		ByApproval: make(map[domain.ApprovalStatus]int64),
	}
	for _, v := range r.vehicles {
		summary.ByStatus[v.Status]++
		summary.ByApproval[v.ApprovalStatus]++
		if v.Status == domain.StatusSold {
			summary.SoldCount++
			summary.SoldTotalValue += v.Price
		}
	}
	return summary, nil
}

var (
	owner = ports.Actor{UserID: "u-owner", Role: domain.RoleCommon}
	other = ports.Actor{UserID: "u-other", Role: domain.RoleCommon}
	admin = ports.Actor{UserID: "u-admin", Role: domain.RoleAdmin}
)

func newVehicleService(repo *stubVehicleRepo, logger ports.ActivityLogger) *VehicleService {
	if logger == nil {
		logger = &recordLogger{}
	}
	return NewVehicleService(repo, logger, zerolog.Nop())
}

func seedVehicle(t *testing.T, svc *VehicleService, actor ports.Actor) *domain.Vehicle {
	t.Helper()
	v, err := svc.Create(context.Background(), actor, ports.RequestMeta{}, ports.CreateVehicleInput{
		Brand:  "Toyota",
		Model:  "Corolla",
		Year:   2021,
		Price:  95000,
		Status: domain.StatusAvailable,
	})
	if err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}
	return v
}

func TestVehicleService_Create_StartsPending(t *testing.T) {
	svc := newVehicleService(newStubVehicleRepo(), nil)
	v := seedVehicle(t, svc, owner)

	// Commercial and moderation states are orthogonal: available + pending
	// is a valid combination and must not be auto-corrected.
	if v.Status != domain.StatusAvailable {
		t.Fatalf("unexpected status: %s", v.Status)
	}
	if v.ApprovalStatus != domain.ApprovalPending {
		t.Fatalf("expected pending, got %s", v.ApprovalStatus)
	}
	if v.CreatedBy != owner.UserID {
		t.Fatalf("unexpected creator: %s", v.CreatedBy)
	}
}

func TestVehicleService_RequestApproval_FromRejected(t *testing.T) {
	repo := newStubVehicleRepo()
	svc := newVehicleService(repo, nil)
	v := seedVehicle(t, svc, owner)

	if _, err := svc.SetApprovalStatus(context.Background(), admin, ports.RequestMeta{}, v.ID, domain.ApprovalRejected); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	updated, err := svc.RequestApproval(context.Background(), owner, ports.RequestMeta{}, v.ID)
	if err != nil {
		t.Fatalf("owner re-request from rejected failed: %v", err)
	}
	if updated.ApprovalStatus != domain.ApprovalPending {
		t.Fatalf("expected pending, got %s", updated.ApprovalStatus)
	}
	if updated.ApprovalRequestedAt.IsZero() {
		t.Fatalf("approval request not timestamped")
	}
}

func TestVehicleService_RequestApproval_AlreadyApproved(t *testing.T) {
	svc := newVehicleService(newStubVehicleRepo(), nil)
	v := seedVehicle(t, svc, owner)

	if _, err := svc.SetApprovalStatus(context.Background(), admin, ports.RequestMeta{}, v.ID, domain.ApprovalApproved); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	if _, err := svc.RequestApproval(context.Background(), owner, ports.RequestMeta{}, v.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestVehicleService_RequestApproval_NotOwner(t *testing.T) {
	svc := newVehicleService(newStubVehicleRepo(), nil)
	v := seedVehicle(t, svc, owner)

	if _, err := svc.RequestApproval(context.Background(), other, ports.RequestMeta{}, v.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestVehicleService_SetApprovalStatus_NonAdmin(t *testing.T) {
	svc := newVehicleService(newStubVehicleRepo(), nil)
	v := seedVehicle(t, svc, owner)

	if _, err := svc.SetApprovalStatus(context.Background(), owner, ports.RequestMeta{}, v.ID, domain.ApprovalApproved); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestVehicleService_Update_RecordsDiff(t *testing.T) {
	logger := &recordLogger{}
	svc := newVehicleService(newStubVehicleRepo(), logger)
	v := seedVehicle(t, svc, owner)

	newPrice := 89990.0
	updated, err := svc.Update(context.Background(), owner, ports.RequestMeta{}, v.ID, ports.UpdateVehicleInput{Price: &newPrice})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Price != newPrice {
		t.Fatalf("price not applied: %v", updated.Price)
	}

	var found bool
	for _, e := range logger.entries {
		if e.Action == "vehicle.updated" && e.ResourceID == v.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("field change not recorded: %+v", logger.entries)
	}
}

func TestVehicleService_Update_OtherUserForbidden(t *testing.T) {
	svc := newVehicleService(newStubVehicleRepo(), nil)
	v := seedVehicle(t, svc, owner)

	newPrice := 1.0
	if _, err := svc.Update(context.Background(), other, ports.RequestMeta{}, v.ID, ports.UpdateVehicleInput{Price: &newPrice}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

// failingInsertRepo always fails to persist activity entries.
type failingInsertRepo struct{}

func (failingInsertRepo) Insert(context.Context, *domain.ActivityEntry) error {
	return errors.New("datastore unavailable")
}
func (failingInsertRepo) ListByUser(context.Context, string, int) ([]*domain.ActivityEntry, error) {
	return nil, errors.New("datastore unavailable")
}
func (failingInsertRepo) ListByResource(context.Context, string) ([]*domain.ActivityEntry, error) {
	return nil, errors.New("datastore unavailable")
}

// syncSink persists entries inline, dropping any error, mirroring the
// at-most-effort contract of the async dispatcher.
type syncSink struct {
	repo ports.ActivityRepository
}

func (s syncSink) Enqueue(entry *domain.ActivityEntry) {
	_ = s.repo.Insert(context.Background(), entry)
}

func TestVehicleService_Update_SucceedsWhenAuditFails(t *testing.T) {
	audit := NewActivityService(syncSink{repo: failingInsertRepo{}}, failingInsertRepo{}, zerolog.Nop())
	svc := NewVehicleService(newStubVehicleRepo(), audit, zerolog.Nop())
	v := seedVehicle(t, svc, owner)

	newColor := "blue"
	updated, err := svc.Update(context.Background(), owner, ports.RequestMeta{}, v.ID, ports.UpdateVehicleInput{Color: &newColor})
	if err != nil {
		t.Fatalf("update must succeed despite audit failure, got %v", err)
	}
	if updated.Color != "blue" {
		t.Fatalf("update not applied: %+v", updated)
	}
}

func TestVehicleService_Get_Visibility(t *testing.T) {
	svc := newVehicleService(newStubVehicleRepo(), nil)
	v := seedVehicle(t, svc, owner)

	// Pending listing: visible to its owner and to admins, hidden from others.
	if _, err := svc.Get(context.Background(), owner, v.ID); err != nil {
		t.Fatalf("owner cannot see own pending listing: %v", err)
	}
	if _, err := svc.Get(context.Background(), admin, v.ID); err != nil {
		t.Fatalf("admin cannot see pending listing: %v", err)
	}
	if _, err := svc.Get(context.Background(), other, v.ID); !errors.Is(err, domain.ErrVehicleNotFound) {
		t.Fatalf("expected not-found for other user, got %v", err)
	}

	if _, err := svc.SetApprovalStatus(context.Background(), admin, ports.RequestMeta{}, v.ID, domain.ApprovalApproved); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), other, v.ID); err != nil {
		t.Fatalf("approved listing must be visible to everyone: %v", err)
	}
}

func TestStatsService_CacheFallback(t *testing.T) {
	repo := newStubVehicleRepo()
	svc := newVehicleService(repo, nil)
	v := seedVehicle(t, svc, owner)

	sold := domain.StatusSold
	if _, err := svc.Update(context.Background(), owner, ports.RequestMeta{}, v.ID, ports.UpdateVehicleInput{Status: &sold}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	stats := NewStatsService(repo, nil, zerolog.Nop())
	summary, err := stats.SalesSummary(context.Background())
	if err != nil {
		t.Fatalf("SalesSummary failed: %v", err)
	}
	if summary.SoldCount != 1 || summary.SoldTotalValue != 95000 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.ByApproval[domain.ApprovalPending] != 1 {
		t.Fatalf("expected one pending listing, got %+v", summary.ByApproval)
	}
}

func TestApprovalStatus_TransitionRules(t *testing.T) {
	cases := []struct {
		from domain.ApprovalStatus
		want bool
	}{
		{domain.ApprovalPending, true},
		{domain.ApprovalRejected, true},
		{domain.ApprovalApproved, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanRequestApproval(); got != tc.want {
			t.Fatalf("CanRequestApproval from %s = %v, want %v", tc.from, got, tc.want)
		}
	}
}
