package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/valuation"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ValuationUsecase asks the classifier for a classification and normalizes its answer.
type ValuationUsecase struct {
	classifier domain.Classifier
	metrics    *metrics.MetricsManager
	logger     *logger.Logger
}

func NewValuationUsecase(classifier domain.Classifier, m *metrics.MetricsManager, log *logger.Logger) *ValuationUsecase {
	return &ValuationUsecase{classifier: classifier, metrics: m, logger: log.Named("ValuationUsecase")}
}

// Analyze classifies an image and/or description. The result carries a fallback price
// when the classifier gave none. Errors are a *domain.ValidationError,
// domain.ErrClassifierUnavailable or a *domain.ClassificationError; none is retried.
func (uc *ValuationUsecase) Analyze(ctx context.Context, req valuation.Request) (*domain.Classification, error) {
	ctx, span := tracer.Start(ctx, "ValuationUsecase.Analyze")
	defer span.End()
	span.SetAttributes(attribute.String("analysis.type", string(req.AnalysisType)))

	if err := req.Validate(); err != nil {
		return nil, err
	}
	image, err := req.InlineImage()
	if err != nil {
		return nil, err
	}
	if uc.classifier == nil {
		uc.count(metrics.OutcomeUnavailable)
		return nil, fmt.Errorf("%w: no classifier configured", domain.ErrClassifierUnavailable)
	}

	uc.logger.Info("Analyzing waste", zap.String("analysis_type", string(req.AnalysisType)), zap.Bool("has_image", image != nil))
	text, err := uc.classifier.Classify(ctx, valuation.BuildPrompt(req), image)
	if err != nil {
		span.RecordError(err)
		uc.count(metrics.OutcomeUnavailable)
		if !errors.Is(err, domain.ErrClassifierUnavailable) {
			err = fmt.Errorf("%w: %v", domain.ErrClassifierUnavailable, err)
		}
		return nil, err
	}

	classification, err := valuation.ParseResponse(text)
	if err != nil {
		span.RecordError(err)
		uc.count(metrics.OutcomeMalformed)
		uc.logger.Error("Failed to parse classifier response", zap.Error(err), zap.String("raw_response", text))
		return nil, err
	}

	valuation.ApplyFallbackPricing(classification)
	uc.count(metrics.OutcomeSuccess)
	uc.logger.Info("Waste classified",
		zap.String("crop_type", classification.CropType),
		zap.String("waste_type", classification.WasteType),
		zap.Float64("estimated_value", classification.EstimatedValue),
	)
	return classification, nil
}

func (uc *ValuationUsecase) count(outcome string) {
	if uc.metrics != nil {
		uc.metrics.ClassificationsTotal.WithLabelValues(outcome).Inc()
	}
}
