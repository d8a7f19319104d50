package cmd

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/winauto/windows-mcp/internal/platform"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture a screenshot",
	Long:  "Capture a window, a screen region, or the entire screen.",
	RunE:  runScreenshot,
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	screenshotCmd.Flags().Uint64("window", 0, "Capture window by handle")
	screenshotCmd.Flags().String("region", "", "Capture screen region as 'x,y,width,height'")
	screenshotCmd.Flags().String("image-format", "png", "Output format: png, jpg")
	screenshotCmd.Flags().Int("quality", 85, "JPEG quality 1-100")
	screenshotCmd.Flags().String("output", "", "Output file path (default: stdout as base64)")
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	window, _ := cmd.Flags().GetUint64("window")
	regionStr, _ := cmd.Flags().GetString("region")
	format, _ := cmd.Flags().GetString("image-format")
	quality, _ := cmd.Flags().GetInt("quality")
	outputPath, _ := cmd.Flags().GetString("output")

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

	var buf bytes.Buffer
	switch format {
	case "jpg", "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	default:
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return err
	}

	if outputPath != "" {
		return os.WriteFile(outputPath, buf.Bytes(), 0o644)
	}

	// Default: write to stdout as base64 for easy agent consumption.
	encoder := base64.NewEncoder(base64.StdEncoding, os.Stdout)
	if _, err := encoder.Write(buf.Bytes()); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	fmt.Println()
	return nil
}
