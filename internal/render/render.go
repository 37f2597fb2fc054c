// Package render lays out press releases for preview and PDF export.
package render

import (
	"errors"
	"strings"

	"github.com/samhotchkiss/sindicato-comms/internal/models"
)

// ErrRender wraps every document generation failure.
var ErrRender = errors.New("render failed")

// UserMessage is shown when an export fails.
const UserMessage = "Hubo un error al generar el PDF."

// ContactHeading introduces the contact block of every release.
const ContactHeading = "Para más información:"

// EndMark closes every release.
const EndMark = "###"

const filenameHeadlineRunes = 20

// Role names a block of the press release layout.
type Role string

const (
	RoleSecretariat    Role = "secretariat"
	RolePreheadline    Role = "preheadline"
	RoleHeadline       Role = "headline"
	RoleSubheadline    Role = "subheadline"
	RoleLead           Role = "lead"
	RoleBody           Role = "body"
	RoleContactHeading Role = "contact_heading"
	RoleContact        Role = "contact"
	RoleEnd            Role = "end"
)

// Block is one laid-out piece of a press release.
type Block struct {
	Role        Role   `json:"role"`
	Text        string `json:"text"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

var placeholders = map[Role]string{
	RolePreheadline: "ANTETÍTULO",
	RoleHeadline:    "Titular del Comunicado",
	RoleSubheadline: "Subtítulo que complementa la información",
	RoleLead:        "Este es el párrafo de la entradilla (lead)...",
	RoleBody:        "Aquí se desarrolla el cuerpo completo del comunicado...",
	RoleContact:     "Nombre Apellido\nCargo\nemail@sindicato.org",
}

// Filename is the download name of an exported release: the first 20
// characters of the headline with spaces turned into underscores.
func Filename(headline string) string {
	runes := []rune(headline)
	if len(runes) > filenameHeadlineRunes {
		runes = runes[:filenameHeadlineRunes]
	}
	return "comunicado-" + strings.ReplaceAll(string(runes), " ", "_") + ".pdf"
}

// Preview lays out a form being edited. Empty fields show a placeholder.
func Preview(fields models.PressReleaseFields) []Block {
	return layout(fields, true)
}

// Blocks lays out a saved release as exported. Empty optional fields are
// left out.
func Blocks(release models.PressRelease) []Block {
	return layout(release.Fields(), false)
}

func layout(fields models.PressReleaseFields, withPlaceholders bool) []Block {
	blocks := []Block{{Role: RoleSecretariat, Text: string(fields.Secretariat)}}

	add := func(role Role, text string) {
		if strings.TrimSpace(text) != "" {
			blocks = append(blocks, Block{Role: role, Text: text})
			return
		}
		if withPlaceholders {
			blocks = append(blocks, Block{Role: role, Text: placeholders[role], Placeholder: true})
		}
	}

	add(RolePreheadline, fields.Preheadline)
	add(RoleHeadline, fields.Headline)
	add(RoleSubheadline, fields.Subheadline)
	add(RoleLead, fields.Lead)
	add(RoleBody, fields.Body)
	blocks = append(blocks, Block{Role: RoleContactHeading, Text: ContactHeading})
	add(RoleContact, fields.Contact)
	blocks = append(blocks, Block{Role: RoleEnd, Text: EndMark})
	return blocks
}
