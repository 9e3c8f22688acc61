package model

type AcceptQuestRequest struct {
	QuestID string `json:"quest_id"`
}

type AcceptQuestResponse struct {
	Submission Submission `json:"submission"`
}

type SubmitProofRequest struct {
	QuestID        string `json:"quest_id"`
	CompletionNote string `json:"completion_note"`
	ProofPhoto     []byte `json:"proof_photo"`
	ProofPhotoName string `json:"proof_photo_name"`
}

type SubmitProofResponse struct {
	Submission Submission `json:"submission"`
}

type ReviewSubmissionRequest struct {
	ID      string `json:"id"`
	Approve bool   `json:"approve"`
}

type ReviewSubmissionResponse struct {
	Submission Submission `json:"submission"`
}

type GetMySubmissionsRequest struct{}

type GetMySubmissionsResponse struct {
	Submissions []Submission `json:"submissions"`
}

type GetPendingSubmissionsRequest struct{}

type GetPendingSubmissionsResponse struct {
	Submissions []Submission `json:"submissions"`
}
