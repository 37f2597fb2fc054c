package generation

import (
	"fmt"
	"strings"

	"github.com/samhotchkiss/sindicato-comms/internal/models"
)

var platformInstructions = map[models.Platform]string{
	models.PlatformTwitter:   "Sé conciso (menos de 280 caracteres), directo y usa 2-3 hashtags relevantes.",
	models.PlatformFacebook:  "Escribe un texto un poco más largo y emotivo, que invite a la discusión. Termina con una pregunta. Utiliza emojis para mejorar la legibilidad.",
	models.PlatformInstagram: "El foco es visual. Escribe un pie de foto atractivo y sugiere una idea para la imagen o vídeo. Usa 5-7 hashtags populares y relevantes.",
	models.PlatformTikTok:    "Escribe un guion corto y dinámico para un vídeo de 15-30 segundos. Incluye acciones visuales, texto en pantalla y sugiere una canción en tendencia.",
	models.PlatformMessaging: "Redacta un mensaje claro y directo para ser difundido en grupos. Debe ser fácil de leer y reenviar. Incluye un llamado a la acción claro y emojis.",
}

const genericInstruction = "Crea una publicación genérica para redes sociales."

// PlatformInstruction returns the writing guidance for platform, falling
// back to a generic instruction for platforms outside the vocabulary.
func PlatformInstruction(platform models.Platform) string {
	if instruction, ok := platformInstructions[platform]; ok {
		return instruction
	}
	return genericInstruction
}

func formatActivity(activity models.Activity) string {
	return fmt.Sprintf("- Título: %s\n"+
		"  Secretaría Responsable: %s\n"+
		"  Categoría: %s\n"+
		"  Descripción: %s\n"+
		"  Etiquetas de Relevancia: %s\n"+
		"  Observaciones: %s",
		activity.Title,
		activity.Secretariat,
		activity.Category,
		activity.Description,
		models.JoinRelevanceTags(activity.RelevanceTags),
		activity.Observations,
	)
}

// PressOpportunitiesPrompt builds the prompt that asks for the two or three
// activities with the most press potential.
func PressOpportunitiesPrompt(activities []models.Activity) string {
	blocks := make([]string, 0, len(activities))
	for _, activity := range activities {
		blocks = append(blocks, formatActivity(activity))
	}

	return `Eres un experto en comunicación estratégica y relaciones públicas para una organización sindical. Tu misión es identificar oportunidades noticiosas en las actividades internas para proyectar una imagen pública fuerte y coherente.

Analiza la siguiente lista de actividades registradas por diferentes secretarías del sindicato. Identifica las 2-3 actividades con mayor potencial para convertirse en una nota de prensa o una comunicación externa exitosa.

Para cada oportunidad que identifiques, proporciona:
1.  **Titular Sugerido:** Un titular atractivo y conciso para la prensa.
2.  **Ángulo de la Noticia:** Una breve explicación de por qué es noticiable y cuál debería ser el enfoque principal (considerando la secretaría implicada).
3.  **Público Objetivo:** A qué tipo de medios o audiencias se debería dirigir.

Sé claro, directo y estratégico en tus recomendaciones. Formatea tu respuesta de manera legible.

Aquí están las actividades:
---
` + strings.Join(blocks, "\n\n") + `
---
`
}

// SocialPostPrompt builds the prompt that adapts one activity to platform.
func SocialPostPrompt(activity models.Activity, platform models.Platform) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Eres un community manager experto para un sindicato. Tu objetivo es adaptar la siguiente actividad en una publicación para %s.\n\n", platform)
	fmt.Fprintf(&b, "**Instrucciones específicas para %s:**\n%s\n\n", platform, PlatformInstruction(platform))
	b.WriteString("**Actividad a adaptar:**\n")
	fmt.Fprintf(&b, "- **Título:** %s\n", activity.Title)
	fmt.Fprintf(&b, "- **Secretaría Responsable:** %s\n", activity.Secretariat)
	fmt.Fprintf(&b, "- **Descripción:** %s\n", activity.Description)
	fmt.Fprintf(&b, "- **Observaciones/Resultados:** %s\n", activity.Observations)
	fmt.Fprintf(&b, "- **Etiquetas Clave:** %s\n\n", models.JoinRelevanceTags(activity.RelevanceTags))
	fmt.Fprintf(&b, "Genera únicamente el texto para la publicación de %s. No añadas introducciones ni comentarios adicionales.\n", platform)
	return b.String()
}
