package analyzer

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/detector"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/model"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/parser"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/schema"
)

// Pipeline 분석 파이프라인
//
// One batch pass per uploaded file: normalize, coerce, run the detector set,
// aggregate. Normalization and coercion complete before any detector starts;
// during detection the dataset is read-only and detectors only allocate
// private outputs, so they fan out concurrently without locking.
type Pipeline struct {
	catalog *schema.Catalog
	cfg     detector.Config
	log     *zap.Logger
}

// New 파이프라인 생성
func New(catalog *schema.Catalog, cfg detector.Config, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{catalog: catalog, cfg: cfg, log: log}
}

// Run 전체 분석 실행
// Returns an error only on cancellation; every per-rule problem degrades to
// a skipped result carried in the report warnings.
func (p *Pipeline) Run(ctx context.Context, raw *model.Dataset, filename string) (*model.Report, error) {
	normalizer := schema.NewNormalizer(p.catalog)
	ds, warnings := normalizer.Normalize(raw)
	for _, w := range warnings {
		p.log.Warn("schema normalization", zap.String("file", filename), zap.String("detail", w))
	}

	parser.CoerceNumeric(ds)

	rules := detector.Rules()
	results := make([]model.DetectionResult, len(rules))

	g, gctx := errgroup.WithContext(ctx)
	for i, rule := range rules {
		i, rule := i, rule
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = rule.Detect(ds, p.cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, res := range results {
		if res.Skipped {
			warnings = append(warnings, "rule "+res.RuleID+" skipped: "+res.Reason)
			p.log.Warn("rule skipped",
				zap.String("file", filename),
				zap.String("rule", res.RuleID),
				zap.String("reason", res.Reason))
		}
	}

	summary := BuildSummary(ds, results)
	p.log.Info("analysis complete",
		zap.String("file", filename),
		zap.Int("rows", ds.Len()),
		zap.Int("declarations", summary.TotalDeclarations))

	return &model.Report{
		Filename: filename,
		Dataset:  ds,
		Results:  results,
		Summary:  summary,
		Warnings: warnings,
	}, nil
}
