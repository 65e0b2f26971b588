// Command sar runs the SAR image-formation pipeline as a batch computation:
// it either simulates raw radar returns or loads them from a dataset file,
// forms an image by global backprojection, applies the configured
// post-processing and writes every buffer back to a dataset file.
package main

import (
	"flag"
	"fmt"
	"log"

	_ "modernc.org/sqlite"

	"github.com/banshee-data/aperture.report/internal/sar"
	"github.com/banshee-data/aperture.report/internal/sar/monitor"
)

var (
	mode    = flag.String("mode", "simulate", "Pipeline mode: simulate or process")
	inFile  = flag.String("in", "", "Input dataset file (process mode)")
	inID    = flag.String("dataset", "", "Dataset id to process (defaults to the latest in the input file)")
	outFile = flag.String("out", "sar_dataset.db", "Output dataset file")

	cinsnow       = flag.Bool("cinsnow", false, "Apply the CinSnow filter hook to the raw image")
	rfi           = flag.Bool("rfi", false, "Apply the RFI suppression hook to the raw image")
	compressImage = flag.Bool("compress-image", false, "Pulse-compress the raw image before backprojection")
	windowName    = flag.String("window", "none", "Apodization window: none, hamming or hann")
	apodAfterFFT  = flag.Bool("apodize-after-fft", false, "Apply the apodization window to the spectrum instead of the image")

	startFreq = flag.Float64("start-freq", 0, "Chirp start frequency in Hz (0 for baseband)")
	bandwidth = flag.Float64("bandwidth", 50e6, "Chirp swept bandwidth in Hz")
	tbProduct = flag.Float64("tb-product", 50, "Chirp time-bandwidth product")
	sceneRows = flag.Int("scene-rows", 256, "Scene rows (simulate mode)")
	sceneCols = flag.Int("scene-cols", 256, "Scene columns (simulate mode)")
	apertures = flag.Int("apertures", 64, "Aperture positions along the synthetic track")
	standoff  = flag.Float64("standoff", 1000, "Track standoff from the scene in metres")

	plotFile = flag.String("plot", "", "Optional PNG heatmap of the formed image magnitude")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatalf("sar: %v", err)
	}
}

func run() error {
	var store *sar.Store
	var params *sar.Params

	switch *mode {
	case string(sar.ModeSimulate):
		store = sar.NewStore()
		params = &sar.Params{
			Mode:              sar.ModeSimulate,
			OutputFile:        *outFile,
			StartFreq:         *startFreq,
			Bandwidth:         *bandwidth,
			TimeBandwidth:     *tbProduct,
			SceneRows:         *sceneRows,
			SceneCols:         *sceneCols,
			AperturePositions: *apertures,
			Standoff:          *standoff,
		}
	case string(sar.ModeProcess):
		if *inFile == "" {
			return fmt.Errorf("process mode requires -in")
		}
		in, err := sar.OpenDataset(*inFile)
		if err != nil {
			return err
		}
		defer in.Close()
		id := *inID
		if id == "" {
			if id, err = in.LatestDatasetID(); err != nil {
				return err
			}
		}
		store, params, err = in.LoadDataset(id)
		if err != nil {
			return err
		}
		log.Printf("Loaded dataset %s from %s (%d buffers)", id, *inFile, store.Len()-1)
		params.Mode = sar.ModeProcess
		params.InputFile = *inFile
		params.OutputFile = *outFile
	default:
		return fmt.Errorf("unknown mode %q", *mode)
	}
	defer store.Close()

	params.FilterCinSnow = *cinsnow
	params.FilterRFI = *rfi
	params.PulseCompressImage = *compressImage
	params.Window = sar.WindowKind(*windowName)
	params.ApodizeAfterFFT = *apodAfterFFT

	if err := sar.Run(store, params); err != nil {
		return err
	}

	if err := store.BuildDirectory(); err != nil {
		return err
	}
	out, err := sar.OpenDataset(*outFile)
	if err != nil {
		return err
	}
	defer out.Close()
	id, err := out.SaveDataset(store, params)
	if err != nil {
		return err
	}
	log.Printf("Wrote dataset %s to %s (%d buffers)", id, *outFile, store.Len()-1)

	if *plotFile != "" {
		img, ok := store.Find(sar.NameSARImage)
		if !ok {
			return fmt.Errorf("plot requested but no formed image present")
		}
		if err := monitor.SaveMagnitudePNG(img, "SAR image magnitude (dB)", *plotFile); err != nil {
			return err
		}
		log.Printf("Wrote image plot to %s", *plotFile)
	}
	return nil
}
