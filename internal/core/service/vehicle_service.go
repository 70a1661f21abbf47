package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/anthonycdp/autovision-project-sub001/internal/api/metrics"
	"github.com/anthonycdp/autovision-project-sub001/internal/core/domain"
	"github.com/anthonycdp/autovision-project-sub001/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// VehicleService implements listing CRUD and the approval workflow.
type VehicleService struct {
	repo     ports.VehicleRepository
	activity ports.ActivityLogger
	log      zerolog.Logger
}

func NewVehicleService(repo ports.VehicleRepository, activity ports.ActivityLogger, log zerolog.Logger) *VehicleService {
	return &VehicleService{repo: repo, activity: activity, log: log}
}

// Create persists a new listing. Every new listing starts in approval state
// pending regardless of its commercial status.
func (s *VehicleService) Create(ctx context.Context, actor ports.Actor, meta ports.RequestMeta, in ports.CreateVehicleInput) (*domain.Vehicle, error) {
	status := in.Status
	if status == "" {
		status = domain.StatusAvailable
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	vehicle := &domain.Vehicle{
		Brand:               in.Brand,
		Model:               in.Model,
		Year:                in.Year,
		Price:               in.Price,
		Mileage:             in.Mileage,
		Color:               in.Color,
		FuelType:            in.FuelType,
		Transmission:        in.Transmission,
		Description:         in.Description,
		Status:              status,
		ApprovalStatus:      domain.ApprovalPending,
		CreatedBy:           actor.UserID,
		ApprovalRequestedAt: now,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	created, err := s.repo.Create(ctx, vehicle)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create vehicle")
		return nil, err
	}

	metrics.VehiclesCreatedTotal.WithLabelValues(string(created.Status)).Inc()
	s.activity.Record(ctx, ports.ActivityInput{
		ActorID:      actor.UserID,
		Action:       "vehicle.created",
		ResourceType: domain.ResourceVehicle,
		ResourceID:   created.ID,
		Detail:       map[string]any{"brand": created.Brand, "model": created.Model},
		Meta:         meta,
	})

	s.log.Info().Str("vehicle_id", created.ID).Str("created_by", actor.UserID).Msg("vehicle created")
	return created, nil
}

func (s *VehicleService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.Vehicle, error) {
	vehicle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Common users only see approved listings and their own.
	if actor.Role != domain.RoleAdmin && !vehicle.OwnedBy(actor.UserID) && vehicle.ApprovalStatus != domain.ApprovalApproved {
		return nil, domain.ErrVehicleNotFound
	}
	return vehicle, nil
}

func (s *VehicleService) List(ctx context.Context, in ports.ListVehiclesInput) (*ports.ListVehiclesResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	filter := ports.ListVehiclesFilter{
		Status:         in.Status,
		ApprovalStatus: in.ApprovalStatus,
		Search:         in.Search,
		Page:           page,
		Limit:          limit,
	}
	if in.Actor.Role != domain.RoleAdmin {
		filter.VisibleTo = in.Actor.UserID
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListVehiclesResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Update applies partial edits. Owner-or-admin only; the applied diff is
// recorded in the activity trail.
func (s *VehicleService) Update(ctx context.Context, actor ports.Actor, meta ports.RequestMeta, id string, in ports.UpdateVehicleInput) (*domain.Vehicle, error) {
	vehicle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && !vehicle.OwnedBy(actor.UserID) {
		return nil, domain.ErrForbidden
	}

	changes := applyUpdate(vehicle, in)
	if len(changes) == 0 {
		return vehicle, nil
	}

	vehicle.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, vehicle); err != nil {
		s.log.Error().Err(err).Str("vehicle_id", id).Msg("failed to update vehicle")
		return nil, err
	}

	s.activity.RecordFieldChange(ctx, vehicle.ID, actor.UserID, "vehicle.updated", changes, meta)
	return vehicle, nil
}

// RequestApproval re-submits a listing for moderation. Allowed only for the
// creator or an admin, and only while the listing is pending or rejected.
func (s *VehicleService) RequestApproval(ctx context.Context, actor ports.Actor, meta ports.RequestMeta, id string) (*domain.Vehicle, error) {
	vehicle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && !vehicle.OwnedBy(actor.UserID) {
		return nil, domain.ErrForbidden
	}
	if !vehicle.ApprovalStatus.CanRequestApproval() {
		return nil, domain.ErrInvalidTransition
	}

	from := vehicle.ApprovalStatus
	vehicle.ApprovalStatus = domain.ApprovalPending
	vehicle.ApprovalRequestedAt = time.Now().UTC()
	vehicle.UpdatedAt = vehicle.ApprovalRequestedAt

	if err := s.repo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	metrics.ApprovalTransitionsTotal.WithLabelValues(string(from), string(domain.ApprovalPending)).Inc()
	s.activity.Record(ctx, ports.ActivityInput{
		ActorID:      actor.UserID,
		Action:       "vehicle.approval_requested",
		ResourceType: domain.ResourceVehicle,
		ResourceID:   vehicle.ID,
		Detail:       map[string]any{"from": from, "to": domain.ApprovalPending},
		Meta:         meta,
	})

	return vehicle, nil
}

// SetApprovalStatus is the admin override: unconditionally allowed
// transition to any of the three moderation states.
func (s *VehicleService) SetApprovalStatus(ctx context.Context, actor ports.Actor, meta ports.RequestMeta, id string, status domain.ApprovalStatus) (*domain.Vehicle, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidTransition
	}

	vehicle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := vehicle.ApprovalStatus
	vehicle.ApprovalStatus = status
	vehicle.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	metrics.ApprovalTransitionsTotal.WithLabelValues(string(from), string(status)).Inc()
	s.activity.Record(ctx, ports.ActivityInput{
		ActorID:      actor.UserID,
		Action:       "vehicle.approval_set",
		ResourceType: domain.ResourceVehicle,
		ResourceID:   vehicle.ID,
		Detail:       map[string]any{"from": from, "to": status},
		Meta:         meta,
	})

	s.log.Info().Str("vehicle_id", vehicle.ID).Str("from", string(from)).Str("to", string(status)).Msg("approval status set")
	return vehicle, nil
}

// applyUpdate mutates v in place and returns the before/after diff.
func applyUpdate(v *domain.Vehicle, in ports.UpdateVehicleInput) []domain.FieldChange {
	var changes []domain.FieldChange

	set := func(field string, from, to any, apply func()) {
		if from == to {
			return
		}
		apply()
		changes = append(changes, domain.FieldChange{Field: field, From: from, To: to})
	}

	if in.Brand != nil {
		set("brand", v.Brand, *in.Brand, func() { v.Brand = *in.Brand })
	}
	if in.Model != nil {
		set("model", v.Model, *in.Model, func() { v.Model = *in.Model })
	}
	if in.Year != nil {
		set("year", v.Year, *in.Year, func() { v.Year = *in.Year })
	}
	if in.Price != nil {
		set("price", v.Price, *in.Price, func() { v.Price = *in.Price })
	}
	if in.Mileage != nil {
		set("mileage", v.Mileage, *in.Mileage, func() { v.Mileage = *in.Mileage })
	}
	if in.Color != nil {
		set("color", v.Color, *in.Color, func() { v.Color = *in.Color })
	}
	if in.FuelType != nil {
		set("fuel_type", v.FuelType, *in.FuelType, func() { v.FuelType = *in.FuelType })
	}
	if in.Transmission != nil {
		set("transmission", v.Transmission, *in.Transmission, func() { v.Transmission = *in.Transmission })
	}
	if in.Description != nil {
		set("description", v.Description, *in.Description, func() { v.Description = *in.Description })
	}
	if in.Status != nil && in.Status.Valid() {
		set("status", v.Status, *in.Status, func() { v.Status = *in.Status })
	}

	return changes
}
