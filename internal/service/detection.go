package service

import (
	"context"

	"github.com/voxproof/voice-detection-api/internal/middleware"
	"github.com/voxproof/voice-detection-api/internal/server"
)

const (
	// StatusSuccess is the wire value of the Status field on every
	// successful detection response.
	StatusSuccess = "success"

	// ClassificationHuman is the only verdict the placeholder detector
	// produces.
	ClassificationHuman = "HUMAN"

	// placeholderConfidence and placeholderExplanation are the fixed
	// values returned until real inference exists. They are independent
	// of the request payload on purpose: the endpoint validates plumbing,
	// not audio.
	placeholderConfidence  = 0.99
	placeholderExplanation = "This is a dummy response for connectivity testing."
)

// DetectionResult is the success response body of the detection endpoint.
type DetectionResult struct {
	Status          string  `json:"status"`
	Language        string  `json:"language"`
	Classification  string  `json:"classification"`
	ConfidenceScore float64 `json:"confidenceScore"`
	Explanation     string  `json:"explanation"`
}

// DetectionService produces voice-detection verdicts.
//
// The current implementation is a connectivity placeholder: it never
// decodes the audio payload and always returns the same classification
// and confidence. Only the language is echoed back from the request.
// Real inference is a future replacement for the body of Detect; the
// contract of this type is not expected to change.
type DetectionService struct {
	server *server.Server
}

// NewDetectionService constructs a DetectionService.
func NewDetectionService(s *server.Server) *DetectionService {
	return &DetectionService{
		server: s,
	}
}

// Detect returns the detection verdict for a request in the given language.
//
// The audio payload is deliberately not passed in: it is never inspected,
// so the handler layer keeps it and this layer stays O(1) regardless of
// payload size.
func (ds *DetectionService) Detect(ctx context.Context, language string) *DetectionResult {
	middleware.LoggerFromContext(ctx).Debug().
		Str("language", language).
		Msg("returning placeholder detection verdict")

	return &DetectionResult{
		Status:          StatusSuccess,
		Language:        language,
		Classification:  ClassificationHuman,
		ConfidenceScore: placeholderConfidence,
		Explanation:     placeholderExplanation,
	}
}
