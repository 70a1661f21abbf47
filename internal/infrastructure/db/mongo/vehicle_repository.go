package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anthonycdp/autovision-project-sub001/internal/core/domain"
	"github.com/anthonycdp/autovision-project-sub001/internal/core/ports"
)

const vehicleCollection = "vehicles"

// VehicleRepository implements ports.VehicleRepository using MongoDB.
type VehicleRepository struct {
	coll *mongo.Collection
}

func NewVehicleRepository(db *mongo.Database) *VehicleRepository {
	return &VehicleRepository{coll: db.Collection(vehicleCollection)}
}

type mongoVehicle struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	Brand               string             `bson:"brand"`
	Model               string             `bson:"model"`
	Year                int                `bson:"year"`
	Price               float64            `bson:"price"`
	Mileage             int                `bson:"mileage"`
	Color               string             `bson:"color,omitempty"`
	FuelType            string             `bson:"fuel_type,omitempty"`
	Transmission        string             `bson:"transmission,omitempty"`
	Description         string             `bson:"description,omitempty"`
	Status              string             `bson:"status"`
	ApprovalStatus      string             `bson:"approval_status"`
	CreatedBy           string             `bson:"created_by"`
	ApprovalRequestedAt time.Time          `bson:"approval_requested_at,omitempty"`
	CreatedAt           time.Time          `bson:"created_at"`
	UpdatedAt           time.Time          `bson:"updated_at"`
}

func toMongoVehicle(v *domain.Vehicle) mongoVehicle {
	return mongoVehicle{
		Brand:               v.Brand,
		Model:               v.Model,
		Year:                v.Year,
		Price:               v.Price,
		Mileage:             v.Mileage,
		Color:               v.Color,
		FuelType:            v.FuelType,
		Transmission:        v.Transmission,
		Description:         v.Description,
		Status:              string(v.Status),
		ApprovalStatus:      string(v.ApprovalStatus),
		CreatedBy:           v.CreatedBy,
		ApprovalRequestedAt: v.ApprovalRequestedAt,
		CreatedAt:           v.CreatedAt,
		UpdatedAt:           v.UpdatedAt,
	}
}

func (mv mongoVehicle) toDomain() *domain.Vehicle {
	return &domain.Vehicle{
		ID:                  mv.ID.Hex(),
		Brand:               mv.Brand,
		Model:               mv.Model,
		Year:                mv.Year,
		Price:               mv.Price,
		Mileage:             mv.Mileage,
		Color:               mv.Color,
		FuelType:            mv.FuelType,
		Transmission:        mv.Transmission,
		Description:         mv.Description,
		Status:              domain.VehicleStatus(mv.Status),
		ApprovalStatus:      domain.ApprovalStatus(mv.ApprovalStatus),
		CreatedBy:           mv.CreatedBy,
		ApprovalRequestedAt: mv.ApprovalRequestedAt.UTC(),
		CreatedAt:           mv.CreatedAt.UTC(),
		UpdatedAt:           mv.UpdatedAt.UTC(),
	}
}

func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	res, err := r.coll.InsertOne(ctx, toMongoVehicle(v))
	if err != nil {
		return nil, fmt.Errorf("insert vehicle: %w", err)
	}

	created := *v
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *VehicleRepository) FindByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrVehicleNotFound
	}

	var mv mongoVehicle
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mv); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	return mv.toDomain(), nil
}

func (r *VehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	oid, err := primitive.ObjectIDFromHex(v.ID)
	if err != nil {
		return domain.ErrVehicleNotFound
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, toMongoVehicle(v))
	if err != nil {
		return fmt.Errorf("update vehicle: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrVehicleNotFound
	}
	return nil
}

func (r *VehicleRepository) List(ctx context.Context, filter ports.ListVehiclesFilter) ([]*domain.Vehicle, int64, error) {
	clauses := bson.A{}

	if filter.Status != "" {
		clauses = append(clauses, bson.M{"status": filter.Status})
	}
	if filter.ApprovalStatus != "" {
		clauses = append(clauses, bson.M{"approval_status": filter.ApprovalStatus})
	}
	if filter.Search != "" {
		regex := primitive.Regex{Pattern: filter.Search, Options: "i"}
		clauses = append(clauses, bson.M{"$or": bson.A{
			bson.M{"brand": regex},
			bson.M{"model": regex},
		}})
	}
	if filter.VisibleTo != "" {
		// Common-role scoping: approved listings plus the user's own.
		clauses = append(clauses, bson.M{"$or": bson.A{
			bson.M{"approval_status": string(domain.ApprovalApproved)},
			bson.M{"created_by": filter.VisibleTo},
		}})
	}

	query := bson.M{}
	if len(clauses) > 0 {
		query["$and"] = clauses
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count vehicles: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	var vehicles []*domain.Vehicle
	for cursor.Next(ctx) {
		var mv mongoVehicle
		if err := cursor.Decode(&mv); err != nil {
			return nil, 0, fmt.Errorf("decode vehicle: %w", err)
		}
		vehicles = append(vehicles, mv.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("list vehicles: %w", err)
	}

	return vehicles, total, nil
}

// Summarize computes the sales dashboard aggregates in a single pass.
func (r *VehicleRepository) Summarize(ctx context.Context) (*ports.SalesSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"status": "$status", "approval": "$approval_status"},
			"count": bson.M{"$sum": 1},
			"value": bson.M{"$sum": "$price"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("summarize vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	summary := &ports.SalesSummary{
		ByStatus:   make(map[domain.VehicleStatus]int64),
		ByApproval: make(map[domain.ApprovalStatus]int64),
	}

	for cursor.Next(ctx) {
		var row struct {
			ID struct {
				Status   string `bson:"status"`
				Approval string `bson:"approval"`
			} `bson:"_id"`
			Count int64   `bson:"count"`
			Value float64 `bson:"value"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode summary row: %w", err)
		}

		status := domain.VehicleStatus(row.ID.Status)
		summary.ByStatus[status] += row.Count
		summary.ByApproval[domain.ApprovalStatus(row.ID.Approval)] += row.Count
		if status == domain.StatusSold {
			summary.SoldCount += row.Count
			summary.SoldTotalValue += row.Value
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("summarize vehicles: %w", err)
	}

	return summary, nil
}
