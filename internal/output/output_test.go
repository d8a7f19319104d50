package output

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/winauto/windows-mcp/internal/model"
)

func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w
	callErr := fn()
	w.Close()
	os.Stdout = old
	if callErr != nil {
		t.Fatal(callErr)
	}
	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestPrintJSON_Compact(t *testing.T) {
	result := ReadResult{
		Window: "Settings",
		App:    "explorer",
		PID:    1234,
		TS:     1707500000,
		Elements: []model.Element{
			{ControlType: "Button", Name: "OK", Bounds: [4]int{10, 20, 100, 30}},
		},
	}

	out := captureStdout(t, func() error { return PrintJSON(result) })

	if bytes.Count([]byte(out), []byte("\n")) > 1 {
		t.Errorf("compact output should be single line, got:\n%s", out)
	}
	var decoded ReadResult
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.App != "explorer" {
		t.Errorf("app: got %q, want %q", decoded.App, "explorer")
	}
	if len(decoded.Elements) != 1 || decoded.Elements[0].ControlType != "Button" {
		t.Errorf("elements: got %+v", decoded.Elements)
	}
}

func TestPrintPrettyJSON_MultiLine(t *testing.T) {
	result := ReadResult{
		Window: "Test",
		TS:     123,
		Elements: []model.Element{
			{ControlType: "Edit", Bounds: [4]int{0, 0, 10, 10}},
		},
	}

	out := captureStdout(t, func() error { return PrintPrettyJSON(result) })

	if bytes.Count([]byte(out), []byte("\n")) <= 1 {
		t.Errorf("pretty output should be multi-line, got:\n%s", out)
	}
	var decoded ReadResult
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
}

func TestPrint_RespectsFormat(t *testing.T) {
	result := ReadFlatResult{
		TS: 42,
		Elements: []model.FlatElement{
			{ControlType: "Button", Name: "Run"},
		},
	}

	OutputFormat = FormatYAML
	yamlOut := captureStdout(t, func() error { return Print(result) })
	if !bytes.Contains([]byte(yamlOut), []byte("controlType: Button")) {
		t.Errorf("yaml output missing element, got:\n%s", yamlOut)
	}

	OutputFormat = FormatJSON
	PrettyOutput = false
	jsonOut := captureStdout(t, func() error { return Print(result) })
	if !json.Valid([]byte(jsonOut)) {
		t.Errorf("json output invalid, got:\n%s", jsonOut)
	}

	OutputFormat = FormatYAML
}

func TestReadResult_OmitEmpty(t *testing.T) {
	result := ReadResult{
		TS:       123,
		Elements: []model.Element{},
	}
	data, err := json.Marshal(result)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"window", "app", "pid"} {
		if _, ok := m[key]; ok {
			t.Errorf("empty %s should be omitted", key)
		}
	}
	if _, ok := m["ts"]; !ok {
		t.Error("ts should always be present")
	}
}
