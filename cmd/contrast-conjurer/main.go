// Command contrast-conjurer runs an enhancement pipeline over an image
// file. It plays the host-application role: decoding, parameter
// collection, and encoding live here; the transforms live under internal/.
//
//	contrast-conjurer -i moon.png -o moon-enhanced.png \
//	    --op "clahe:tileRows=8,tileCols=8,clipLimit=2" \
//	    --op "unsharp_mask:sigma=1,alpha=2" \
//	    --op "contrast_boost:beta=1.5"
//
// A pipeline can also come from a YAML file via --pipeline.
package main

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "image/gif"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"contrast-conjurer/internal/logger"
	"contrast-conjurer/internal/pipeline"
	"contrast-conjurer/internal/raster"
)

func main() {
	var (
		inputPath    string
		outputPath   string
		pipelinePath string
		opFlags      []string
		listOps      bool
		verbose      bool
	)

	pflag.StringVarP(&inputPath, "input", "i", "", "input image (png, jpeg, gif, tiff, bmp)")
	pflag.StringVarP(&outputPath, "output", "o", "", "output image path")
	pflag.StringVarP(&pipelinePath, "pipeline", "p", "", "YAML pipeline file")
	pflag.StringArrayVar(&opFlags, "op", nil, "inline stage, e.g. clahe:tileRows=8,tileCols=8,clipLimit=2 (repeatable)")
	pflag.BoolVar(&listOps, "list", false, "list available operations and exit")
	pflag.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pflag.Parse()

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log := logger.NewConsoleLogger(level)
	runner := pipeline.NewRunner(log)

	if listOps {
		for _, name := range runner.Operations() {
			fmt.Println(name)
		}
		return
	}

	if err := run(runner, log, inputPath, outputPath, pipelinePath, opFlags); err != nil {
		log.Error("main", err, nil)
		os.Exit(1)
	}
}

func run(runner *pipeline.Runner, log logger.Logger, inputPath, outputPath, pipelinePath string, opFlags []string) error {
	if inputPath == "" || outputPath == "" {
		return fmt.Errorf("both --input and --output are required")
	}

	specs, err := collectSpecs(runner, pipelinePath, opFlags)
	if err != nil {
		return err
	}

	img, format, err := decodeImage(inputPath)
	if err != nil {
		return err
	}

	buf, err := raster.FromImage(img)
	if err != nil {
		return fmt.Errorf("convert %q: %w", inputPath, err)
	}

	log.Info("main", "image loaded", map[string]interface{}{
		"path":     inputPath,
		"format":   format,
		"width":    buf.Width(),
		"height":   buf.Height(),
		"channels": buf.Channels(),
		"kind":     buf.Kind().String(),
		"stages":   len(specs),
	})

	result, err := runner.Run(context.Background(), buf, specs)
	if err != nil {
		return err
	}

	out, err := raster.ToImage(result)
	if err != nil {
		return err
	}
	if err := encodeImage(outputPath, out); err != nil {
		return err
	}

	log.Info("main", "image written", map[string]interface{}{"path": outputPath})
	return nil
}

func collectSpecs(runner *pipeline.Runner, pipelinePath string, opFlags []string) ([]pipeline.StageSpec, error) {
	if pipelinePath != "" && len(opFlags) > 0 {
		return nil, fmt.Errorf("--pipeline and --op are mutually exclusive")
	}
	if pipelinePath != "" {
		return pipeline.LoadFile(pipelinePath)
	}
	if len(opFlags) == 0 {
		return nil, fmt.Errorf("no stages given: use --pipeline or --op")
	}

	specs := make([]pipeline.StageSpec, 0, len(opFlags))
	for _, flag := range opFlags {
		spec, err := parseOpFlag(runner, flag)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// parseOpFlag turns "name:key=value,key=value" into a stage spec. Values
// overlay the operation's defaults, so only non-default parameters need
// spelling out on the command line.
func parseOpFlag(runner *pipeline.Runner, flag string) (pipeline.StageSpec, error) {
	name, rest, _ := strings.Cut(flag, ":")
	name = strings.TrimSpace(name)

	params, err := runner.Defaults(name)
	if err != nil {
		return pipeline.StageSpec{}, err
	}

	if strings.TrimSpace(rest) != "" {
		for _, pair := range strings.Split(rest, ",") {
			key, value, ok := strings.Cut(pair, "=")
			if !ok {
				return pipeline.StageSpec{}, fmt.Errorf("stage %q: malformed parameter %q (want key=value)", name, pair)
			}
			params[strings.TrimSpace(key)] = parseValue(strings.TrimSpace(value))
		}
	}
	return pipeline.StageSpec{Op: name, Params: params}, nil
}

func parseValue(s string) interface{} {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	return s
}

func decodeImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		img, err := tiff.Decode(f)
		return img, "tiff", err
	case ".bmp":
		img, err := bmp.Decode(f)
		return img, "bmp", err
	default:
		img, format, err := image.Decode(f)
		if err != nil {
			return nil, "", fmt.Errorf("decode %q: %w", path, err)
		}
		return img, format, nil
	}
}

func encodeImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	case ".bmp":
		return bmp.Encode(f, img)
	case ".tif", ".tiff":
		return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return png.Encode(f, img)
	}
}
