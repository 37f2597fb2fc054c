package generation

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/samhotchkiss/sindicato-comms/internal/metrics"
	"github.com/samhotchkiss/sindicato-comms/internal/models"
)

// Fixed user-facing texts. Generation never fails with an error; every
// outcome is text for the dashboard to show.
const (
	NoActivitiesMessage = "No hay actividades para analizar. Registre algunas primero."
	MissingKeyMessage   = "Error: La clave de API de Gemini no está configurada. La función de análisis no está disponible."
	unknownErrorMessage = "Ocurrió un error desconocido al contactar con la IA."
)

// Metric operation names.
const (
	OperationPressOpportunities = "press_opportunities"
	OperationSocialPost         = "social_post"
)

// FailureMessage renders a provider error for the user.
func FailureMessage(err error) string {
	if err == nil || strings.TrimSpace(err.Error()) == "" {
		return unknownErrorMessage
	}
	return fmt.Sprintf("Error al contactar el servicio de IA: %s. Asegúrate de que la clave de API sea válida.", err.Error())
}

// Service builds prompts and calls the model. A Service without a model
// answers every call with MissingKeyMessage.
type Service struct {
	model Model
}

func NewService(model Model) *Service {
	return &Service{model: model}
}

// Available reports whether a model is configured.
func (s *Service) Available() bool {
	return s != nil && s.model != nil
}

// SummarizePressOpportunities asks for the activities with the most press
// potential. An empty list is answered locally.
func (s *Service) SummarizePressOpportunities(ctx context.Context, activities []models.Activity) string {
	if len(activities) == 0 {
		metrics.RecordSkipped(OperationPressOpportunities)
		return NoActivitiesMessage
	}
	return s.call(ctx, OperationPressOpportunities, PressOpportunitiesPrompt(activities))
}

// DraftSocialPost adapts one activity into a post for platform.
func (s *Service) DraftSocialPost(ctx context.Context, activity models.Activity, platform models.Platform) string {
	return s.call(ctx, OperationSocialPost, SocialPostPrompt(activity, platform))
}

func (s *Service) call(ctx context.Context, operation, prompt string) string {
	if !s.Available() {
		metrics.RecordSkipped(operation)
		return MissingKeyMessage
	}

	metrics.RecordCall(operation)
	start := time.Now()
	text, err := s.model.GenerateContent(ctx, prompt)
	if err != nil {
		metrics.RecordFailure(operation, time.Since(start))
		log.Printf("warning: %s generation failed: %v", operation, err)
		return FailureMessage(err)
	}
	metrics.RecordSuccess(operation, time.Since(start))
	return text
}
