// Package reports runs queued batch-detect jobs against the syntactic
// engine and persists their outcome for later retrieval.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/oakmoss/platon/internal/models"
	"github.com/oakmoss/platon/internal/repository"
	"github.com/oakmoss/platon/internal/syntactic"
)

type Service struct {
	engine      *syntactic.Engine
	reportsRepo *repository.ReportsRepository
}

func NewService(engine *syntactic.Engine, reportsRepo *repository.ReportsRepository) *Service {
	return &Service{engine: engine, reportsRepo: reportsRepo}
}

// ProcessBatchJob runs DetectBatch over the job's files and stores the
// result under its report id, implementing stream.BatchProcessor.
func (s *Service) ProcessBatchJob(ctx context.Context, job *models.BatchJob) error {
	if err := s.reportsRepo.UpdateStatus(ctx, job.ReportID, models.StatusProcessing, ""); err != nil {
		return fmt.Errorf("failed to mark report processing: %w", err)
	}

	files := make([]syntactic.SourceFile, len(job.Files))
	for i, f := range job.Files {
		files[i] = syntactic.SourceFile{Name: f.Name, Text: f.Text}
	}

	batch, err := s.engine.DetectBatch(ctx, files, syntactic.DetectOptions{
		Threshold:      job.Threshold,
		MinOccurrences: job.MinOccurrences,
	})
	if err != nil {
		if updateErr := s.reportsRepo.UpdateStatus(ctx, job.ReportID, models.StatusFailed, err.Error()); updateErr != nil {
			return fmt.Errorf("detect batch failed (%v) and failed to record failure: %w", err, updateErr)
		}
		return fmt.Errorf("failed to run batch detection: %w", err)
	}

	report := &models.Report{
		ReportID:         job.ReportID,
		Status:           models.StatusCompleted,
		Threshold:        batch.Threshold,
		TotalComparisons: batch.TotalComparisons,
		SuspiciousPairs:  batch.SuspiciousPairs,
		ProcessingTime:   batch.ProcessingTime,
		Results:          batch.Results,
		UpdatedAt:        time.Now(),
	}

	if err := s.reportsRepo.Complete(ctx, report); err != nil {
		return fmt.Errorf("failed to store completed report: %w", err)
	}

	return nil
}
