package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = `id,cleaned_titles,cleaned_essays,cleaned_summary,project_is_approved
1,Books for all,Our students need books to read every day,Need books,1
2,Art supplies,Paint and brushes,Art matters,0
3,Science kits,Hands on experiments teach best,STEM,1
`

func TestParse_DerivesLengths(t *testing.T) {
	records, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	first := records[0]
	if first.TitleLength != len("Books for all") {
		t.Errorf("Expected title length %d, got %d", len("Books for all"), first.TitleLength)
	}
	if first.TotalLength != first.TitleLength+first.EssayLength+first.SummaryLength {
		t.Errorf("Total length %d does not sum components", first.TotalLength)
	}
	if !first.Approved {
		t.Error("Expected first record approved")
	}
	if records[1].Approved {
		t.Error("Expected second record rejected")
	}
}

func TestParse_RuneLengths(t *testing.T) {
	csv := "cleaned_titles,cleaned_essays,cleaned_summary,project_is_approved\n" +
		"héllo,résumé,naïve,1\n"
	records, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if records[0].TitleLength != 5 {
		t.Errorf("Expected rune count 5, got %d", records[0].TitleLength)
	}
	if records[0].EssayLength != 6 {
		t.Errorf("Expected rune count 6, got %d", records[0].EssayLength)
	}
}

func TestParse_MissingColumn(t *testing.T) {
	csv := "cleaned_titles,cleaned_essays,project_is_approved\na,b,1\n"
	_, err := Parse(strings.NewReader(csv))
	if err == nil {
		t.Fatal("Expected error for missing column")
	}
	if !strings.Contains(err.Error(), ColumnSummary) {
		t.Errorf("Expected error to name missing column, got %v", err)
	}
}

func TestParse_EmptyDataset(t *testing.T) {
	if _, err := Parse(strings.NewReader("")); err == nil {
		t.Error("Expected error for empty input")
	}

	headerOnly := "cleaned_titles,cleaned_essays,cleaned_summary,project_is_approved\n"
	if _, err := Parse(strings.NewReader(headerOnly)); err == nil {
		t.Error("Expected error for header-only input")
	}
}

func TestParse_BadApprovalLabel(t *testing.T) {
	csv := "cleaned_titles,cleaned_essays,cleaned_summary,project_is_approved\na,b,c,maybe\n"
	_, err := Parse(strings.NewReader(csv))
	if err == nil || !strings.Contains(err.Error(), "invalid approval label") {
		t.Errorf("Expected invalid approval label error, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(records) != 3 {
		t.Errorf("Expected 3 records, got %d", len(records))
	}
}

func TestSummary(t *testing.T) {
	records, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	s := Summary(records)
	if s.Rows != 3 {
		t.Errorf("Expected 3 rows, got %d", s.Rows)
	}
	if s.ApprovalRate < 0.66 || s.ApprovalRate > 0.67 {
		t.Errorf("Expected approval rate 2/3, got %.4f", s.ApprovalRate)
	}
	if s.MeanEssayLength <= 0 {
		t.Errorf("Expected positive mean essay length, got %.2f", s.MeanEssayLength)
	}
}
