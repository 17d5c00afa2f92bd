package controllers

// Request bodies for the tracking endpoints. Parsed and checked by the
// validators in validators/track, then stashed in c.Locals for the handlers.

type TimeSyncRequest struct {
	EnrollmentID uint `json:"enrollmentId"`
	ArticleID    uint `json:"articleId"`
	SecondsToAdd int  `json:"secondsToAdd"`
}

type ProgressRequest struct {
	EnrollmentID uint   `json:"enrollmentId"`
	ArticleID    uint   `json:"articleId"`
	SecondsSpent int    `json:"secondsSpent"`
	Status       string `json:"status"`
}

type ReflectionRequest struct {
	EnrollmentID uint   `json:"enrollmentId"`
	ArticleID    uint   `json:"articleId"`
	ResponseText string `json:"responseText"`
}
