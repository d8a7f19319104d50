// Package ocr recognizes on-screen text with a PaddleOCR ONNX pipeline. The
// runtime library and model files ship alongside the executable; Available
// reports whether they were found before any engine is created.
package ocr

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	goocr "github.com/getcharzp/go-ocr"
)

// Point is a screen coordinate in pixels.
type Point struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Result is one recognized text fragment.
type Result struct {
	Text       string  `yaml:"text" json:"text"`
	Confidence float64 `yaml:"confidence" json:"confidence"`
	Position   Point   `yaml:"position" json:"position"`
	Box        []Point `yaml:"box,omitempty" json:"box,omitempty"`
}

// Config locates the ONNX runtime and the PaddleOCR model files.
type Config struct {
	OnnxRuntimeLibPath string
	DetModelPath       string
	RecModelPath       string
	DictPath           string
}

// DefaultConfig resolves the runtime and model paths relative to the
// executable, falling back to a models/ directory under the working
// directory for development builds.
func DefaultConfig() Config {
	return Config{
		OnnxRuntimeLibPath: findFile(
			filepath.Join(executableDir(), "onnxruntime.dll"),
			filepath.Join(executableDir(), "models", "lib", "onnxruntime.dll"),
			filepath.Join("models", "lib", "onnxruntime.dll"),
			"onnxruntime.dll",
		),
		DetModelPath: modelPath("det.onnx"),
		RecModelPath: modelPath("rec.onnx"),
		DictPath:     modelPath("dict.txt"),
	}
}

// Available reports whether the default runtime and model files exist.
func Available() bool {
	cfg := DefaultConfig()
	return fileExists(cfg.OnnxRuntimeLibPath) &&
		fileExists(cfg.DetModelPath) &&
		fileExists(cfg.RecModelPath) &&
		fileExists(cfg.DictPath)
}

// Recognizer runs text recognition over captured images. Engine calls are
// serialized; the underlying session is not thread safe.
type Recognizer struct {
	mu     sync.Mutex
	engine goocr.Engine
}

// New creates a recognizer from cfg, loading the models eagerly so a missing
// file fails here rather than on the first request.
func New(cfg Config) (*Recognizer, error) {
	engine, err := goocr.NewPaddleOcrEngine(goocr.Config{
		OnnxRuntimeLibPath: cfg.OnnxRuntimeLibPath,
		DetModelPath:       cfg.DetModelPath,
		RecModelPath:       cfg.RecModelPath,
		DictPath:           cfg.DictPath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create OCR engine: %w", err)
	}
	return &Recognizer{engine: engine}, nil
}

var (
	globalRecognizer *Recognizer
	globalOnce       sync.Once
	globalErr        error
)

// Global returns a process-wide recognizer built from DefaultConfig. The
// engine holds loaded models, so it is created once and reused.
func Global() (*Recognizer, error) {
	globalOnce.Do(func() {
		globalRecognizer, globalErr = New(DefaultConfig())
	})
	return globalRecognizer, globalErr
}

// Recognize returns all text fragments found in img.
func (r *Recognizer) Recognize(img image.Image) ([]Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.engine == nil {
		return nil, fmt.Errorf("OCR engine is closed")
	}
	raw, err := r.engine.RunOCR(img)
	if err != nil {
		return nil, fmt.Errorf("text recognition failed: %w", err)
	}
	results := make([]Result, 0, len(raw))
	for _, rec := range raw {
		results = append(results, convertResult(rec))
	}
	return results, nil
}

// FindText returns the center of the first fragment containing target,
// case-insensitively, or nil when no fragment matches.
func (r *Recognizer) FindText(img image.Image, target string) (*Point, error) {
	results, err := r.Recognize(img)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(target)
	for _, res := range results {
		if strings.Contains(strings.ToLower(res.Text), needle) {
			pos := res.Position
			return &pos, nil
		}
	}
	return nil, nil
}

// Close releases the engine. The recognizer cannot be reused afterwards.
func (r *Recognizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.engine != nil {
		r.engine.Destroy()
		r.engine = nil
	}
	return nil
}

// convertResult maps an engine box, given as [4]int{x1, y1, x2, y2}, to a
// result with its center point and corner list.
func convertResult(rec goocr.RecResult) Result {
	box := rec.Box
	return Result{
		Text:       rec.Text,
		Confidence: float64(rec.Score),
		Position: Point{
			X: (box[0] + box[2]) / 2,
			Y: (box[1] + box[3]) / 2,
		},
		Box: []Point{
			{X: box[0], Y: box[1]},
			{X: box[2], Y: box[1]},
			{X: box[2], Y: box[3]},
			{X: box[0], Y: box[3]},
		},
	}
}

func executableDir() string {
	execPath, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}
	return filepath.Dir(execPath)
}

func modelPath(filename string) string {
	return findFile(
		filepath.Join(executableDir(), "models", "paddle_weights", filename),
		filepath.Join("models", "paddle_weights", filename),
	)
}

// findFile returns the first existing candidate, or the last candidate when
// none exist so the engine reports a concrete path in its error.
func findFile(candidates ...string) string {
	for _, p := range candidates {
		if fileExists(p) {
			return p
		}
	}
	return candidates[len(candidates)-1]
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
