package types

// MatchResult is the comparison of job-description skills against resume skills.
// Matched and Missing hold every category the job description mentions, in taxonomy order.
type MatchResult struct {
	Matched         Findings `json:"matched"`
	Missing         Findings `json:"missing"`
	MatchPercentage float64  `json:"match_percentage"`
	MatchedCount    int      `json:"matched_count"`
	RequiredCount   int      `json:"required_count"`
}

// SimilarityScores are the two vector-space similarities between a resume and a job description.
// Both are percentages in [0,100].
type SimilarityScores struct {
	TFIDF   float64 `json:"tfidf_similarity"`
	Keyword float64 `json:"keyword_similarity"`
}

// ATSCompatibility is the share of ATS taxonomy phrases found in the resume.
type ATSCompatibility struct {
	Score float64 `json:"score"`
	Found int     `json:"found"`
	Total int     `json:"total"`
}

// ATSReport groups the ATS keywords found in a resume with the resulting score.
type ATSReport struct {
	Keywords      Findings
	Compatibility ATSCompatibility
}

// Sentiment is the polarity vector of a piece of text.
type Sentiment struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Compound float64 `json:"compound"`
}

// AnalysisReport is the full result of matching a resume against a job description.
// When Success is false only Error is meaningful.
type AnalysisReport struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	OverallScore      float64          `json:"overall_score"`
	TFIDFSimilarity   float64          `json:"tfidf_similarity"`
	KeywordSimilarity float64          `json:"keyword_similarity"`
	SkillMatch        MatchResult      `json:"skill_match"`
	Sentiment         Sentiment        `json:"sentiment"`
	ATSKeywords       Findings         `json:"ats_keywords"`
	ATSCompatibility  ATSCompatibility `json:"ats_compatibility"`
	Recommendations   []string         `json:"recommendations,omitempty"`

	MissingKeywords       []string `json:"missing_keywords,omitempty"`
	ResumePreview         string   `json:"resume_preview,omitempty"`
	JobDescriptionPreview string   `json:"job_description_preview,omitempty"`
}

// Failure builds a structured failure report carrying a human-readable message.
func Failure(message string) *AnalysisReport {
	return &AnalysisReport{
		Success: false,
		Error:   message,
	}
}
