// Package domain holds DTOs for analyze http and service contracts
package domain

// Submission is a new idea plus the caller's comparison set
// title and description must be present but may be empty strings
type Submission struct {
	Title         *string  `json:"title" validate:"required" example:"Campus Voting"`
	Description   *string  `json:"description" validate:"required" example:"A blockchain platform for university student elections"`
	ExistingTexts []string `json:"existing_texts,omitempty" example:"Decentralized Voting App A blockchain platform for voting"`
}

// TitleText returns the title or "" when absent
func (s Submission) TitleText() string {
	if s.Title == nil {
		return ""
	}
	return *s.Title
}

// DescriptionText returns the description or "" when absent
func (s Submission) DescriptionText() string {
	if s.Description == nil {
		return ""
	}
	return *s.Description
}

// Raw is the submission text as stored by the corpus
func (s Submission) Raw() string { return s.TitleText() + " " + s.DescriptionText() }

// Result is the similarity verdict
type Result struct {
	SimilarityScore int    `json:"similarity_score" example:"62"`
	RiskLevel       string `json:"risk_level" example:"HIGH"`
	Message         string `json:"message" example:"Critical similarity detected."`
}
