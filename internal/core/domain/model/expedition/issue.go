package expedition

import (
	"fmt"
	"strings"
	"time"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/errs"
)

// IssueKind distinguishes the two flavors of a suspension: a plain hold
// (waiting on something) and a problem (something went wrong).
type IssueKind int

const (
	// IssueKindUnknown represents an invalid or undefined kind.
	IssueKindUnknown IssueKind = iota

	// IssueHold suspends the expedition without implying a fault.
	IssueHold

	// IssueProblem suspends the expedition because of a fault.
	IssueProblem
)

func getIssueKindStrings() map[IssueKind]string {
	return map[IssueKind]string{
		IssueKindUnknown: "Unknown",
		IssueHold:        "hold",
		IssueProblem:     "problem",
	}
}

// IssueKindFromString parses the persisted textual form of an IssueKind.
func IssueKindFromString(s string) (IssueKind, error) {
	for kind, str := range getIssueKindStrings() {
		if str == s && kind != IssueKindUnknown {
			return kind, nil
		}
	}
	return IssueKindUnknown, errs.NewValueIsInvalidErrorWithCause(
		"issue kind", fmt.Errorf("%q is not a valid issue kind", s))
}

// Validate checks that the IssueKind is one of the defined kinds.
func (k IssueKind) Validate() error {
	if k != IssueHold && k != IssueProblem {
		return errs.NewValueIsInvalidErrorWithCause("issue kind", fmt.Errorf("%d is not a valid issue kind", k))
	}
	return nil
}

// String returns the lower-case name of the kind.
func (k IssueKind) String() string {
	if str, ok := getIssueKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}

// Issue is the value object capturing why an expedition was put on hold:
// the kind, a mandatory free-text note, who reported it and when. It exists
// only while the expedition is suspended and is cleared by ResetToPlanned.
type Issue struct {
	kind       IssueKind
	note       string
	reportedBy kernel.UUID
	reportedAt time.Time
}

// NewIssue creates an Issue. The note is mandatory: issue capture without a
// reason is rejected at the source.
func NewIssue(kind IssueKind, note string, reportedBy kernel.UUID, reportedAt time.Time) (Issue, error) {
	if err := kind.Validate(); err != nil {
		return Issue{}, err
	}
	if strings.TrimSpace(note) == "" {
		return Issue{}, errs.NewValueIsRequiredError("issue note")
	}
	if err := reportedBy.Validate(); err != nil {
		return Issue{}, err
	}
	return Issue{
		kind:       kind,
		note:       note,
		reportedBy: reportedBy,
		reportedAt: reportedAt,
	}, nil
}

// Validate checks that the Issue carries a valid kind, a non-empty note and
// a valid reporter. The zero value of Issue is invalid.
func (i Issue) Validate() error {
	if err := i.kind.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(i.note) == "" {
		return errs.NewValueIsRequiredError("issue note")
	}
	return i.reportedBy.Validate()
}

// Kind returns the kind of the issue.
func (i Issue) Kind() IssueKind {
	return i.kind
}

// Note returns the free-text reason supplied by the reporter.
func (i Issue) Note() string {
	return i.note
}

// ReportedBy returns the actor who reported the issue.
func (i Issue) ReportedBy() kernel.UUID {
	return i.reportedBy
}

// ReportedAt returns when the issue was reported.
func (i Issue) ReportedAt() time.Time {
	return i.reportedAt
}
