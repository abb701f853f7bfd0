package srs

// DailyReviewCount computes how many of totalDue cards a user should review
// today given a time budget. The time-derived count is
// floor(targetMinutes*60/secondsPerCard); the result is the smaller of that
// and totalDue, never exceeding the hard ceiling of 50.
func DailyReviewCount(totalDue, targetMinutes, secondsPerCard int) int {
	if totalDue <= 0 || targetMinutes <= 0 || secondsPerCard <= 0 {
		return 0
	}

	count := targetMinutes * 60 / secondsPerCard
	if totalDue < count {
		count = totalDue
	}

	if count > hardDailyCeiling {
		count = hardDailyCeiling
	}

	return count
}
