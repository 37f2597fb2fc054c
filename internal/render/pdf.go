package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/samhotchkiss/sindicato-comms/internal/metrics"
	"github.com/samhotchkiss/sindicato-comms/internal/models"
)

const OperationPDF = "render_pdf"

type blockStyle struct {
	style      string
	size       float64
	lineHeight float64
	align      string
	gapAfter   float64
	r, g, b    int
}

var styles = map[Role]blockStyle{
	RoleSecretariat:    {style: "B", size: 10, lineHeight: 5, align: "L", gapAfter: 4, r: 185, g: 28, b: 28},
	RolePreheadline:    {style: "B", size: 10, lineHeight: 5, align: "L", gapAfter: 1, r: 75, g: 85, b: 99},
	RoleHeadline:       {style: "B", size: 22, lineHeight: 9, align: "L", gapAfter: 2, r: 17, g: 24, b: 39},
	RoleSubheadline:    {style: "", size: 15, lineHeight: 7, align: "L", gapAfter: 4, r: 55, g: 65, b: 81},
	RoleLead:           {style: "B", size: 12, lineHeight: 6, align: "L", gapAfter: 5, r: 31, g: 41, b: 55},
	RoleBody:           {style: "", size: 12, lineHeight: 6, align: "J", gapAfter: 6, r: 31, g: 41, b: 55},
	RoleContactHeading: {style: "B", size: 10, lineHeight: 5, align: "L", gapAfter: 1, r: 17, g: 24, b: 39},
	RoleContact:        {style: "", size: 10, lineHeight: 5, align: "L", gapAfter: 8, r: 31, g: 41, b: 55},
	RoleEnd:            {style: "B", size: 18, lineHeight: 8, align: "C", r: 107, g: 114, b: 128},
}

// Renderer exports press releases as PDF documents.
type Renderer struct {
	PageSize string
}

func NewRenderer() *Renderer {
	return &Renderer{PageSize: "A4"}
}

// PDF renders release on a single A4 flow. The output only depends on the
// release, so repeated exports are byte-identical.
func (r *Renderer) PDF(release models.PressRelease) ([]byte, error) {
	metrics.RecordCall(OperationPDF)
	start := time.Now()

	out, err := r.render(release)
	if err != nil {
		metrics.RecordFailure(OperationPDF, time.Since(start))
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	metrics.RecordSuccess(OperationPDF, time.Since(start))
	return out, nil
}

func (r *Renderer) render(release models.PressRelease) ([]byte, error) {
	pageSize := r.PageSize
	if pageSize == "" {
		pageSize = "A4"
	}

	pdf := fpdf.New("P", "mm", pageSize, "")
	pdf.SetTitle(release.Headline, true)
	pdf.SetAuthor(string(release.Secretariat), true)
	pdf.SetCreator("sindicato-comms", false)
	stamp := documentDate(release.Date)
	pdf.SetCreationDate(stamp)
	pdf.SetModificationDate(stamp)
	pdf.SetCatalogSort(true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	left, _, right, _ := pdf.GetMargins()
	pageWidth, _ := pdf.GetPageSize()

	for _, block := range Blocks(release) {
		st := styles[block.Role]
		text := block.Text
		if block.Role == RolePreheadline {
			text = strings.ToUpper(text)
		}
		if block.Role == RoleContactHeading {
			y := pdf.GetY()
			pdf.SetDrawColor(209, 213, 219)
			pdf.Line(left, y, pageWidth-right, y)
			pdf.Ln(6)
		}

		pdf.SetFont("Times", st.style, st.size)
		pdf.SetTextColor(st.r, st.g, st.b)
		pdf.MultiCell(0, st.lineHeight, tr(text), "", st.align, false)
		if st.gapAfter > 0 {
			pdf.Ln(st.gapAfter)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func documentDate(date string) time.Time {
	parsed, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return parsed.UTC()
}
