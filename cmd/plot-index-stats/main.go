// Command plot-index-stats renders a log-scale PNG histogram of a
// built index's term document-frequency distribution, the same way
// plot-qrank-distribution renders the QRank value distribution: sort
// the values, walk them once, draw a point whenever the plotted
// position has moved far enough from the last one drawn.
package main

import (
	"context"
	"flag"
	"log"
	"math"
	"sort"

	"github.com/fogleman/gg"

	"github.com/melisekm/skwiki-search/internal/config"
	"github.com/melisekm/skwiki-search/internal/index"
	"github.com/melisekm/skwiki-search/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the build configuration file")
	font := flag.String("font", "./RobotoSlab-Light.ttf", "path to label font")
	out := flag.String("out", "index-stats.png", "path to output PNG file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	if err := plotDistribution(cfg, *font, *out); err != nil {
		log.Fatal(err)
	}
}

func plotDistribution(cfg config.Config, fontPath, outPath string) error {
	ctx := context.Background()

	store, err := storage.NewStorage(cfg.StorageEndpoint, cfg.StorageAccessKey, cfg.StorageSecretKey, cfg.StorageBucket)
	if err != nil {
		return err
	}
	in, err := store.Open(ctx, cfg.InvertedIndexPath)
	if err != nil {
		return err
	}
	defer in.Close()
	decompressed, err := storage.DecompressCloserByName(in, cfg.InvertedIndexPath)
	if err != nil {
		return err
	}
	defer decompressed.Close()

	idx, err := index.Load(decompressed)
	if err != nil {
		return err
	}

	dfs := idx.DocumentFrequencies()
	if len(dfs) == 0 {
		return nil
	}
	sort.Slice(dfs, func(i, j int) bool { return dfs[i] > dfs[j] })

	axisWidth := 35.0
	plotWidth := 1000.0
	dc := gg.NewContext(int(plotWidth+axisWidth), int(plotWidth+axisWidth))
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)

	labelFont, err := gg.LoadFontFace(fontPath, 18.0)
	if err != nil {
		return err
	}

	numTerms := len(dfs)
	maxDF := float64(dfs[0])
	scaleX := plotWidth / math.Ceil(math.Log(float64(numTerms)))
	scaleY := plotWidth / math.Ceil(math.Log10(maxDF))

	dc.SetFontFace(labelFont)
	w, _ := dc.MeasureString("Rank")
	dc.DrawString("Rank", axisWidth+(plotWidth-w)/2, plotWidth-12)

	dc.SetRGB(0, 0.4, 1)
	type point struct{ x, y float64 }
	graph := make([]point, 0, int(plotWidth))
	var lastX, lastY float64
	for i, df := range dfs {
		x := axisWidth
		if i > 0 {
			x += math.Log(float64(i)) * scaleX
		}
		y := plotWidth - math.Log10(float64(df))*scaleY
		if i == 0 || x-lastX > 1 || math.Abs(y-lastY) > 1 {
			lastX, lastY = x, y
			graph = append(graph, point{x, y})
		}
	}
	for i, p := range graph {
		if i == 0 {
			dc.MoveTo(p.x, p.y)
		} else {
			dc.LineTo(p.x, p.y)
		}
	}
	dc.Stroke()
	for _, p := range graph {
		dc.DrawCircle(p.x, p.y, 3)
		dc.Fill()
	}

	dc.SetRGB(0, 0, 0)
	dc.Push()
	dc.RotateAbout(-math.Pi/2, plotWidth/2, plotWidth/2)
	dc.DrawString("Document frequency", plotWidth/2, axisWidth+24)
	dc.Pop()

	return dc.SavePNG(outPath)
}
