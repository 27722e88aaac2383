package onboarding

// ComputeProgress derives the status bar percentage and message from a snapshot.
// A completed onboarding is pinned to 100 and the final message.
func ComputeProgress(s Snapshot) ProgressResult {
	if s.OnboardingComplete {
		return ProgressResult{Percentage: 100, Message: StepSixth}
	}
	return ProgressResult{
		Percentage: ComputePercentage(s),
		Message:    SelectMessage(s),
	}
}

// ComputePercentage adds stepWeight for every satisfied condition.
// It does not look at OnboardingComplete and is independent of SelectMessage.
func ComputePercentage(s Snapshot) int {
	percentage := 0
	for _, met := range conditions(s) {
		if met {
			percentage += stepWeight
		}
	}
	return percentage
}

func conditions(s Snapshot) [5]bool {
	return [5]bool{
		s.DatasourceCount > 0 || s.ActionCount > 0,
		s.ActionCount > 0,
		s.WidgetCount > 1,
		s.HasWidgetActionConnection,
		s.IsDeployed,
	}
}

// SelectMessage walks the message chain top to bottom; the first match wins.
// The chain can disagree with ComputePercentage: a deployed app with no
// connection reports 80 and "Connect data to widget", and a page with no
// widgets at all falls through to the final message at 80.
func SelectMessage(s Snapshot) StatusMessage {
	switch {
	case s.DatasourceCount == 0 && s.ActionCount == 0:
		if s.WidgetCount == 1 {
			return StepFirst
		}
		return StepFirstAlt
	case s.ActionCount == 0:
		return StepSecond
	case s.WidgetCount == 1:
		return StepThird
	case !s.HasWidgetActionConnection:
		return StepFourth
	case !s.IsDeployed:
		return StepFifth
	default:
		return StepSixth
	}
}
