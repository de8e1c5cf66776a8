package source

import (
	"image"
	"image/draw"
	"math"
	"runtime"
	"sync"

	"lumina/internal/palette"
)

const maxRasterWorkers = 8

// Rasterize copies img into a fresh NRGBA buffer whose longer edge is at most
// the quality cap. Images already within the cap keep their size. Every call
// owns its buffer, so calls may run concurrently.
func Rasterize(img image.Image, quality palette.Quality) *image.NRGBA {
	return fitToCap(RasterizeNative(img), quality.DownscaleCap())
}

// RasterizeNative copies img without scaling; video frames use it.
func RasterizeNative(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	raster := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(raster, raster.Bounds(), img, bounds.Min, draw.Src)
	return raster
}

// tap blends two neighbouring source indices; weight belongs to hi.
type tap struct {
	lo, hi int
	weight float64
}

// axisTaps maps each of the target positions onto the source axis using
// pixel-center alignment.
func axisTaps(source int, target int) []tap {
	taps := make([]tap, target)
	scale := float64(source) / float64(target)
	for index := range taps {
		position := math.Min(math.Max((float64(index)+0.5)*scale-0.5, 0), float64(source-1))
		lo := int(position)
		taps[index] = tap{lo: lo, hi: min(lo+1, source-1), weight: position - float64(lo)}
	}
	return taps
}

func fitToCap(src *image.NRGBA, limit int) *image.NRGBA {
	width, height := src.Rect.Dx(), src.Rect.Dy()
	longest := max(width, height)
	if width == 0 || height == 0 || longest <= limit {
		return src
	}

	ratio := float64(limit) / float64(longest)
	dst := image.NewNRGBA(image.Rect(0, 0,
		max(int(math.Round(float64(width)*ratio)), 1),
		max(int(math.Round(float64(height)*ratio)), 1),
	))
	columns := axisTaps(width, dst.Rect.Dx())
	rows := axisTaps(height, dst.Rect.Dy())

	pending := make(chan int, len(rows))
	for y := range rows {
		pending <- y
	}
	close(pending)

	var wg sync.WaitGroup
	for worker := 0; worker < min(rasterWorkers(), len(rows)); worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range pending {
				blendRow(dst, src, y, rows[y], columns)
			}
		}()
	}
	wg.Wait()

	return dst
}

func blendRow(dst *image.NRGBA, src *image.NRGBA, y int, row tap, columns []tap) {
	upper := src.Pix[row.lo*src.Stride:]
	lower := src.Pix[row.hi*src.Stride:]
	out := dst.Pix[y*dst.Stride:]

	for x, column := range columns {
		left, right := column.lo*4, column.hi*4
		for channel := 0; channel < 4; channel++ {
			top := lerp(upper[left+channel], upper[right+channel], column.weight)
			bottom := lerp(lower[left+channel], lower[right+channel], column.weight)
			out[x*4+channel] = uint8(math.Round(top + (bottom-top)*row.weight))
		}
	}
}

func lerp(a uint8, b uint8, weight float64) float64 {
	return float64(a) + (float64(b)-float64(a))*weight
}

func rasterWorkers() int {
	return min(max(runtime.GOMAXPROCS(0)-1, 1), maxRasterWorkers)
}
