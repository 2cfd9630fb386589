package analyzer

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kurihiro0119/unowned-components/internal/domain"
	apperrors "github.com/kurihiro0119/unowned-components/internal/errors"
	"github.com/kurihiro0119/unowned-components/internal/report"
)

// NoComponentsNotice is printed when every component of the project has a lead
const NoComponentsNotice = "No components w/o lead found"

//go:generate mockgen -destination mock/analyzer.go -package mock github.com/kurihiro0119/unowned-components/internal/analyzer Discoverer,IssueCounter

// Discoverer finds components without a lead
type Discoverer interface {
	ComponentsWithoutLead(ctx context.Context, projectKey string) ([]string, error)
}

// IssueCounter counts issues per component name for a set of component IDs
type IssueCounter interface {
	CountIssuesByComponent(ctx context.Context, projectKey string, componentIDs []string) (domain.ComponentIssueCounts, error)
}

// Analyzer runs discovery, aggregation and rendering for one project
type Analyzer struct {
	discoverer Discoverer
	counter    IssueCounter
	renderer   report.Renderer
	out        io.Writer
	projectKey string
	log        logrus.FieldLogger
}

// New creates an Analyzer writing user facing output to out
func New(
	discoverer Discoverer,
	counter IssueCounter,
	renderer report.Renderer,
	out io.Writer,
	projectKey string,
	log logrus.FieldLogger,
) *Analyzer {
	return &Analyzer{
		discoverer: discoverer,
		counter:    counter,
		renderer:   renderer,
		out:        out,
		projectKey: projectKey,
		log:        log,
	}
}

// Run executes the pipeline once.
// Failures of any stage are written to out as a single line and also returned;
// callers are not expected to print them again.
func (a *Analyzer) Run(ctx context.Context) error {
	log := a.log.WithFields(logrus.Fields{
		"run_id":  uuid.NewString(),
		"project": a.projectKey,
	})

	componentIDs, err := a.discoverer.ComponentsWithoutLead(ctx, a.projectKey)
	if err != nil {
		return a.fail(log, err)
	}
	if len(componentIDs) == 0 {
		log.Debug("no unowned components")
		_, err := fmt.Fprintln(a.out, NoComponentsNotice)
		return err
	}

	counts, err := a.counter.CountIssuesByComponent(ctx, a.projectKey, componentIDs)
	if err != nil {
		return a.fail(log, err)
	}

	if err := a.renderer.Render(a.out, counts); err != nil {
		return a.fail(log, fmt.Errorf("rendering report: %w", err))
	}

	log.WithField("components", len(counts)).Debug("run finished")
	return nil
}

func (a *Analyzer) fail(log logrus.FieldLogger, err error) error {
	log.WithError(err).Debug("run failed")
	fmt.Fprintln(a.out, apperrors.UserMessage(err))
	return err
}
