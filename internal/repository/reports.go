package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/oakmoss/platon/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const reportsCollection = "reports"

// ReportsRepository persists batch-detect jobs: queued on submission,
// updated as the stream consumer works through them, completed with the
// full result set so GET /api/v1/report/:id can serve it later.
type ReportsRepository struct {
	mongoRepo *MongoRepository
}

func NewReportsRepository(mongoRepo *MongoRepository) *ReportsRepository {
	return &ReportsRepository{mongoRepo: mongoRepo}
}

func (r *ReportsRepository) InsertQueued(ctx context.Context, reportID string) error {
	report := &models.Report{
		ReportID:  reportID,
		Status:    models.StatusQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := r.mongoRepo.InsertOne(ctx, reportsCollection, report); err != nil {
		return fmt.Errorf("failed to insert queued report: %w", err)
	}

	return nil
}

func (r *ReportsRepository) UpdateStatus(ctx context.Context, reportID string, status models.Status, errMsg string) error {
	filter := bson.M{"reportId": reportID}
	update := bson.M{"$set": bson.M{"status": status, "error": errMsg, "updatedAt": time.Now()}}

	_, err := r.mongoRepo.GetCollection(reportsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update report status: %w", err)
	}

	return nil
}

func (r *ReportsRepository) Complete(ctx context.Context, report *models.Report) error {
	filter := bson.M{"reportId": report.ReportID}
	update := bson.M{"$set": report}

	_, err := r.mongoRepo.GetCollection(reportsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to complete report: %w", err)
	}

	return nil
}

func (r *ReportsRepository) GetByID(ctx context.Context, reportID string) (*models.Report, error) {
	filter := bson.M{"reportId": reportID}

	var report models.Report
	err := r.mongoRepo.FindOne(ctx, reportsCollection, filter).Decode(&report)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find report: %w", err)
	}

	return &report, nil
}
