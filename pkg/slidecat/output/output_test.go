package output

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ukaji3/slidecat-go/pkg/slidecat/models"
	"github.com/xuri/excelize/v2"
)

func sampleReport() *models.VerificationReport {
	w, h := 960, 720
	return &models.VerificationReport{
		File:        "deck.pptx",
		Valid:       true,
		Slides:      2,
		Layouts:     7,
		Masters:     1,
		SlideWidth:  &w,
		SlideHeight: &h,
		SlideDetails: []models.SlideDetail{
			{Number: 1, Shapes: 2, HasTitle: true, Title: "Intro"},
			{Number: 2, Error: "slide 2: parsing ppt/slides/slide2.xml: bad"},
		},
	}
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(sampleReport(), false)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if strings.Contains(string(data), "\n") {
		t.Error("Compact JSON contains newlines")
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	for _, key := range []string{"file", "valid", "slides", "layouts", "masters", "slide_width", "slide_details"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("Missing key %q", key)
		}
	}
	if _, ok := decoded["error"]; ok {
		t.Error("Empty error should be omitted")
	}

	details := decoded["slide_details"].([]interface{})
	first := details[0].(map[string]interface{})
	if first["title"] != "Intro" || first["has_title"] != true {
		t.Errorf("Unexpected first detail: %v", first)
	}
}

func TestToJSONPretty(t *testing.T) {
	data, err := ToJSON(sampleReport(), true)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if !strings.Contains(string(data), "\n  \"file\": \"deck.pptx\"") {
		t.Errorf("Pretty JSON is not indented:\n%s", data)
	}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := WriteXLSX(sampleReport(), path); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open report: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Summary" || sheets[1] != "Slides" {
		t.Fatalf("Sheets = %v, expected [Summary Slides]", sheets)
	}

	tests := []struct {
		sheet, cell, expected string
	}{
		{"Summary", "A1", "File"},
		{"Summary", "B1", "deck.pptx"},
		{"Summary", "B2", "TRUE"},
		{"Summary", "B4", "2"},
		{"Summary", "B7", "960"},
		{"Slides", "A1", "Slide"},
		{"Slides", "E1", "Error"},
		{"Slides", "A2", "1"},
		{"Slides", "D2", "Intro"},
		{"Slides", "E3", "slide 2: parsing ppt/slides/slide2.xml: bad"},
	}

	for _, tt := range tests {
		got, err := f.GetCellValue(tt.sheet, tt.cell)
		if err != nil {
			t.Errorf("GetCellValue(%s!%s) failed: %v", tt.sheet, tt.cell, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("%s!%s = %q, expected %q", tt.sheet, tt.cell, got, tt.expected)
		}
	}
}
