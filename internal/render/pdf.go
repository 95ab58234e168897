// Package render turns stored health reports into printable documents.
package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/terraincognita07/ovira/internal/models"
)

const (
	maxTableLogs    = 15
	doctorNoteLines = 15

	reportDisclaimer = "DISCLAIMER: This report is generated by Ovira AI for informational purposes only. It is not a medical diagnosis. Please consult a qualified healthcare provider for medical advice, diagnosis, or treatment."
	noRiskFactors    = "No significant risk factors identified."
)

var (
	primaryColor   = rgb{139, 92, 246}
	secondaryColor = rgb{20, 184, 166}
	textColor      = rgb{30, 41, 59}
	mutedColor     = rgb{148, 163, 184}
)

type PDFRenderer struct {
	// Chart draws the trend image; nil disables it.
	Chart func(logs []models.SymptomLog) ([]byte, error)
}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{Chart: TrendChart}
}

func ReportFilename(generatedAt time.Time) string {
	return fmt.Sprintf("ovira-health-report-%s.pdf", generatedAt.Format("2006-01-02"))
}

// Render lays out the report on A4: summary sections, the log table, an optional trend chart,
// a ruled page for the clinician and the disclaimer footer.
func (r *PDFRenderer) Render(report models.HealthReport, logs []models.SymptomLog) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Ovira AI Health Report", false)
	pdf.SetAutoPageBreak(true, 20)
	translate := latinTranslator(pdf)
	pageWidth, pageHeight := pdf.GetPageSize()

	pdf.AddPage()
	fillRect(pdf, primaryColor, 0, 0, pageWidth, 40)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.Text(20, 28, "Ovira AI Health Report")

	y := 55.0
	setText(pdf, textColor)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(20, y, "Report Generated: "+report.GeneratedAt.Format("January 2, 2006"))
	y += 7
	pdf.Text(20, y, fmt.Sprintf("Period: %s - %s", report.StartDate.Format("Jan 2"), report.EndDate.Format("Jan 2, 2006")))
	y += 15

	y = section(pdf, y, 35, rgb{245, 243, 255}, primaryColor, "Cycle Overview", []string{
		fmt.Sprintf("Average Cycle Length: %d days", report.CycleData.AverageLength),
		fmt.Sprintf("Period Days Logged: %d days", report.CycleData.PeriodDays),
	})

	moods := strings.Join(report.Symptoms.CommonMoods, ", ")
	if moods == "" {
		moods = "N/A"
	}
	y = section(pdf, y, 45, rgb{240, 253, 250}, secondaryColor, "Symptom Summary", []string{
		fmt.Sprintf("Average Pain Level: %s/10", formatTenth(report.Symptoms.AveragePain)),
		fmt.Sprintf("Average Energy Level: %s/10", formatTenth(report.Symptoms.AverageEnergy)),
		fmt.Sprintf("Average Sleep: %s hours/night", formatTenth(report.Symptoms.AverageSleep)),
		"Common Moods: " + moods,
	})

	y = riskSection(pdf, translate, y, pageWidth, report.Risks)

	if len(logs) > 0 {
		logTable(pdf, y, logs)
	}

	if r.Chart != nil && len(logs) >= 2 {
		chart, err := r.Chart(logs)
		if err != nil {
			return nil, fmt.Errorf("draw trend chart: %w", err)
		}
		embedChart(pdf, chart, pageWidth)
	}

	doctorNotesPage(pdf, translate, pageWidth, pageHeight)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func section(pdf *fpdf.Fpdf, y float64, height float64, background rgb, accent rgb, title string, lines []string) float64 {
	pageWidth, _ := pdf.GetPageSize()
	fillRect(pdf, background, 15, y-5, pageWidth-30, height)

	pdf.SetFont("Helvetica", "B", 14)
	setText(pdf, accent)
	pdf.Text(20, y+5, title)

	pdf.SetFont("Helvetica", "", 11)
	setText(pdf, textColor)
	y += 15
	for _, line := range lines {
		pdf.Text(25, y, line)
		y += 7
	}
	return y + 13
}

const riskLineHeight = 6.0

func riskSection(pdf *fpdf.Fpdf, translate func(string) string, y float64, pageWidth float64, risks models.ReportRisks) float64 {
	accent, background := riskColors(risks.Level)
	lines := riskFlagLines(pdf, translate, risks.Flags, pageWidth-50)
	fillRect(pdf, background, 15, y-5, pageWidth-30, riskPanelHeight(len(lines)))

	pdf.SetFont("Helvetica", "B", 14)
	setText(pdf, accent)
	pdf.Text(20, y+5, "Health Risk Assessment")

	pdf.SetFont("Helvetica", "", 11)
	setText(pdf, textColor)
	y += 15
	pdf.Text(25, y, "Risk Level: "+strings.ToUpper(string(risks.Level)))
	y += 10

	if len(lines) == 0 {
		pdf.Text(25, y, noRiskFactors)
		return y + 22
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range lines {
		pdf.Text(25, y, line)
		y += riskLineHeight
	}
	return y + 15
}

// riskFlagLines wraps each flag at the 10pt body font, so the panel can be sized before drawing.
func riskFlagLines(pdf *fpdf.Fpdf, translate func(string) string, flags []string, width float64) []string {
	pdf.SetFont("Helvetica", "", 10)
	lines := make([]string, 0, len(flags))
	for _, flag := range flags {
		for _, line := range pdf.SplitLines([]byte(translate("- "+flag)), width) {
			lines = append(lines, string(line))
		}
	}
	return lines
}

func riskPanelHeight(lineCount int) float64 {
	return 30 + float64(lineCount)*riskLineHeight
}

func riskColors(level models.RiskLevel) (rgb, rgb) {
	switch level {
	case models.RiskHigh:
		return rgb{239, 68, 68}, rgb{254, 242, 242}
	case models.RiskMedium:
		return rgb{245, 158, 11}, rgb{255, 251, 235}
	default:
		return rgb{20, 184, 166}, rgb{240, 253, 250}
	}
}

func logTable(pdf *fpdf.Fpdf, y float64, logs []models.SymptomLog) {
	_, pageHeight := pdf.GetPageSize()
	if y > pageHeight-60 {
		pdf.AddPage()
		y = 20
	}

	pdf.SetFont("Helvetica", "B", 14)
	setText(pdf, primaryColor)
	pdf.Text(20, y, "Symptom Log Details")
	pdf.SetXY(20, y+5)

	headers := []string{"Date", "Flow", "Pain", "Mood", "Energy", "Sleep"}
	widths := []float64{30, 30, 25, 35, 25, 25}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(int(primaryColor.r), int(primaryColor.g), int(primaryColor.b))
	pdf.SetTextColor(255, 255, 255)
	for index, header := range headers {
		pdf.CellFormat(widths[index], 8, header, "", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	setText(pdf, textColor)
	pdf.SetFillColor(248, 250, 252)
	for row, entry := range logs[:min(len(logs), maxTableLogs)] {
		pdf.SetX(20)
		cells := []string{
			entry.Date.Format("Jan 2"),
			string(entry.FlowLevel),
			fmt.Sprintf("%d/10", entry.PainScale),
			string(entry.Mood),
			fmt.Sprintf("%d/10", entry.EnergyLevel),
			formatTenth(entry.SleepHours) + "h",
		}
		for index, cell := range cells {
			pdf.CellFormat(widths[index], 7, cell, "", 0, "L", row%2 == 1, 0, "")
		}
		pdf.Ln(-1)
	}
}

func embedChart(pdf *fpdf.Fpdf, chart []byte, pageWidth float64) {
	const name = "trend-chart"
	options := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader(name, options, bytes.NewReader(chart))

	width := pageWidth - 40
	height := width * chartHeight / chartWidth
	_, pageHeight := pdf.GetPageSize()
	if pdf.GetY()+height+20 > pageHeight-20 {
		pdf.AddPage()
		pdf.SetY(20)
	}

	y := pdf.GetY() + 10
	pdf.SetFont("Helvetica", "B", 14)
	setText(pdf, primaryColor)
	pdf.Text(20, y, "Symptom Trends")
	pdf.ImageOptions(name, 20, y+4, width, height, false, options, 0, "")
	pdf.SetY(y + 4 + height)
}

func doctorNotesPage(pdf *fpdf.Fpdf, translate func(string) string, pageWidth float64, pageHeight float64) {
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	fillRect(pdf, secondaryColor, 0, 0, pageWidth, 30)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(20, 20, translate("Doctor's Notes"))

	pdf.SetDrawColor(int(mutedColor.r), int(mutedColor.g), int(mutedColor.b))
	y := 45.0
	for line := 0; line < doctorNoteLines; line++ {
		pdf.Line(20, y, pageWidth-20, y)
		y += 15
	}

	footerY := pageHeight - 30
	fillRect(pdf, rgb{248, 250, 252}, 0, footerY-10, pageWidth, 40)
	pdf.SetFont("Helvetica", "I", 8)
	setText(pdf, mutedColor)
	for index, line := range pdf.SplitLines([]byte(translate(reportDisclaimer)), pageWidth-40) {
		pdf.Text(20, footerY+float64(index)*5, string(line))
	}
}

func fillRect(pdf *fpdf.Fpdf, color rgb, x, y, w, h float64) {
	pdf.SetFillColor(int(color.r), int(color.g), int(color.b))
	pdf.Rect(x, y, w, h, "F")
}

func setText(pdf *fpdf.Fpdf, color rgb) {
	pdf.SetTextColor(int(color.r), int(color.g), int(color.b))
}

// latinTranslator maps text into the core fonts' cp1252 encoding and drops runes it cannot show.
func latinTranslator(pdf *fpdf.Fpdf) func(string) string {
	toCP1252 := pdf.UnicodeTranslatorFromDescriptor("")
	return func(text string) string {
		cleaned := strings.Map(func(r rune) rune {
			if r > 0x2122 {
				return -1
			}
			return r
		}, text)
		return toCP1252(cleaned)
	}
}

func formatTenth(value float64) string {
	formatted := fmt.Sprintf("%.1f", value)
	return strings.TrimSuffix(formatted, ".0")
}
