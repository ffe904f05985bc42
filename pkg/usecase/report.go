package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casekeeper/pkg/domain/interfaces"
	"github.com/secmon-lab/casekeeper/pkg/service/report"
	"github.com/secmon-lab/casekeeper/pkg/utils/clock"
	"github.com/secmon-lab/casekeeper/pkg/utils/logging"
)

type ReportUseCase struct {
	repo interfaces.Repository
	sink interfaces.ReportSink
}

func NewReportUseCase(repo interfaces.Repository, sink interfaces.ReportSink) *ReportUseCase {
	return &ReportUseCase{
		repo: repo,
		sink: sink,
	}
}

// GenerateReport renders the cases visible to the caller and stores the
// report in the sink. It returns the location reported by the sink.
func (uc *ReportUseCase) GenerateReport(ctx context.Context) (string, error) {
	p, err := principal(ctx, OpGenerateReport)
	if err != nil {
		return "", err
	}
	if uc.sink == nil {
		return "", goerr.New("no report sink configured")
	}

	all, err := uc.repo.Case().List(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to list cases")
	}
	cases := visibleCases(p, all)
	if len(cases) == 0 {
		return "", goerr.Wrap(ErrNoCases, "nothing to report", goerr.V(ManagerKey, p.Name))
	}

	now := clock.Now(ctx)
	name := report.FileName(now)
	location, err := uc.sink.Put(ctx, name, report.Render(cases, now))
	if err != nil {
		return "", goerr.Wrap(err, "failed to store report", goerr.V("name", name))
	}

	logging.From(ctx).Info("report generated", "location", location, "cases", len(cases), "by", p.Name)
	return location, nil
}
