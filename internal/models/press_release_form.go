package models

import "strings"

// PressReleaseFields are the editable parts of a press release.
type PressReleaseFields struct {
	Secretariat Secretariat `json:"secretariat"`
	Preheadline string      `json:"preheadline"`
	Headline    string      `json:"headline"`
	Subheadline string      `json:"subheadline"`
	Lead        string      `json:"lead"`
	Body        string      `json:"body"`
	Contact     string      `json:"contact"`
}

// MissingRequired lists the mandatory fields that are blank.
func (f PressReleaseFields) MissingRequired() []string {
	var missing []string
	if strings.TrimSpace(f.Headline) == "" {
		missing = append(missing, "headline")
	}
	if strings.TrimSpace(f.Lead) == "" {
		missing = append(missing, "lead")
	}
	if strings.TrimSpace(f.Body) == "" {
		missing = append(missing, "body")
	}
	if strings.TrimSpace(f.Contact) == "" {
		missing = append(missing, "contact")
	}
	return missing
}

// Release builds a stored press release from the fields.
func (f PressReleaseFields) Release(id, date string) PressRelease {
	return PressRelease{
		ID:          id,
		Secretariat: f.Secretariat,
		Preheadline: f.Preheadline,
		Headline:    f.Headline,
		Subheadline: f.Subheadline,
		Lead:        f.Lead,
		Body:        f.Body,
		Contact:     f.Contact,
		Date:        date,
	}
}

// Fields returns the editable parts of a stored press release.
func (r PressRelease) Fields() PressReleaseFields {
	return PressReleaseFields{
		Secretariat: r.Secretariat,
		Preheadline: r.Preheadline,
		Headline:    r.Headline,
		Subheadline: r.Subheadline,
		Lead:        r.Lead,
		Body:        r.Body,
		Contact:     r.Contact,
	}
}

// PressReleaseForm is either a DraftForm (not persisted yet) or a SavedForm.
type PressReleaseForm interface {
	Content() PressReleaseFields
	Persisted() bool
	pressReleaseForm()
}

// DraftForm is a press release that has never been saved.
type DraftForm struct {
	PressReleaseFields
}

func (d DraftForm) Content() PressReleaseFields { return d.PressReleaseFields }
func (DraftForm) Persisted() bool { return false }
func (DraftForm) pressReleaseForm() {}

// SavedForm is an edit of an existing press release.
type SavedForm struct {
	ID   string
	Date string
	PressReleaseFields
}

func (s SavedForm) Content() PressReleaseFields { return s.PressReleaseFields }
func (SavedForm) Persisted() bool { return true }
func (SavedForm) pressReleaseForm() {}

// NewDraft returns an empty form issued by the acting secretariat.
func NewDraft(acting Secretariat) DraftForm {
	return DraftForm{PressReleaseFields: PressReleaseFields{Secretariat: acting}}
}

// EditForm opens a stored press release for editing.
func EditForm(release PressRelease) SavedForm {
	return SavedForm{ID: release.ID, Date: release.Date, PressReleaseFields: release.Fields()}
}
