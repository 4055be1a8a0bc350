package rules

import (
	"github.com/labops/evidence-desk/internal/submission"
	"github.com/labops/evidence-desk/pkg/utils"
)

// Aggregate folds an evaluation into the overall eligibility verdict.
// Reasons are listed in fixed priority order: high-value gate, base
// documents, category requirements, project resolution. Every failing
// reachable section is reported; only the high-value gate hides the sections
// behind it, because they are not reachable while it is open.
func Aggregate(s *submission.Submission, eval Evaluation) submission.Verdict {
	var missing []submission.Reason

	if !eval.GateSatisfied {
		missing = append(missing, submission.Reason{
			Code:   submission.ReasonMissingGate,
			Detail: eval.GateDetail,
		})
	} else {
		if !eval.BaseSatisfied {
			missing = append(missing, submission.Reason{
				Code:   submission.ReasonMissingBaseDocument,
				Detail: eval.BaseDetail,
			})
		}
		if !eval.CategorySatisfied {
			missing = append(missing, submission.Reason{
				Code:   submission.ReasonMissingCategoryRequirement,
				Detail: eval.CategoryDetail,
			})
		}
	}

	if reason, ok := resolveProject(s); !ok {
		missing = append(missing, reason)
	}

	return submission.Verdict{Ready: len(missing) == 0, Missing: missing}
}

// resolveProject checks the project identity: either a catalog selection
// valid for the payment method, or a non-empty manual entry passing the
// alphanumeric pattern.
func resolveProject(s *submission.Submission) (submission.Reason, bool) {
	if s.ProjectID != "" {
		if _, ok := submission.LookupProject(s.PaymentMethod, s.ProjectID); !ok {
			return submission.Reason{
				Code:   submission.ReasonUnresolvedProject,
				Detail: "selected project is not in the catalog for this payment method",
			}, false
		}
		return submission.Reason{}, true
	}

	if s.ProjectText != "" {
		if err := utils.ValidateProjectText(s.ProjectText); err != nil {
			return submission.Reason{
				Code:   submission.ReasonInvalidProjectText,
				Detail: "project entry may contain letters, digits and spaces only",
			}, false
		}
		return submission.Reason{}, true
	}

	return submission.Reason{
		Code:   submission.ReasonUnresolvedProject,
		Detail: "no project selected",
	}, false
}
