package cmd

import (
	"fmt"
	"image"

	"github.com/spf13/cobra"

	"github.com/winauto/windows-mcp/internal/ocr"
	"github.com/winauto/windows-mcp/internal/output"
	"github.com/winauto/windows-mcp/internal/platform"
)

var ocrCmd = &cobra.Command{
	Use:   "ocr",
	Short: "Recognize text on screen",
	Long:  "Capture a window, region, or the full screen and recognize its text. Requires the ONNX runtime and PaddleOCR model files next to the executable.",
	RunE:  runOCR,
}

func init() {
	rootCmd.AddCommand(ocrCmd)
	ocrCmd.Flags().Uint64("window", 0, "Window handle to read text from")
	ocrCmd.Flags().String("region", "", "Screen region as 'x,y,width,height'")
	ocrCmd.Flags().String("find", "", "Print only the position of the first match for this text")
}

func runOCR(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	recognizer, err := ocr.Global()
	if err != nil {
		return fmt.Errorf("OCR is not available: %w", err)
	}

	window, _ := cmd.Flags().GetUint64("window")
	regionStr, _ := cmd.Flags().GetString("region")
	find, _ := cmd.Flags().GetString("find")

	var img image.Image
	switch {
	case window != 0:
		img, err = provider.Screenshotter.CaptureWindow(cmd.Context(), uintptr(window))
	case regionStr != "":
		var region *platform.Region
		region, err = platform.ParseRegion(regionStr)
		if err != nil {
			return err
		}
		img, err = provider.Screenshotter.CaptureRegion(cmd.Context(), *region)
	default:
		img, err = provider.Screenshotter.CaptureScreen(cmd.Context())
	}
	if err != nil {
		return err
	}

	if find != "" {
		pos, err := recognizer.FindText(img, find)
		if err != nil {
			return err
		}
		if pos == nil {
			return fmt.Errorf("text %q not found", find)
		}
		return output.Print(pos)
	}

	results, err := recognizer.Recognize(img)
	if err != nil {
		return err
	}
	return output.Print(results)
}
