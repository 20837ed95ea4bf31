package invoice

import (
	"bytes"
	"image"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"
)

const pageWidthMM = 210.0 // A4 portrait width

// encode embeds the captured raster into a one-page PDF. The image spans the
// page width; the page height follows the image's aspect ratio so nothing is
// cropped or letterboxed.
func encode(img image.Image, w io.Writer) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}

	bounds := img.Bounds()
	imgW := float64(bounds.Dx())
	imgH := float64(bounds.Dy())
	pageHeight := imgH * pageWidthMM / imgW

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: pageWidthMM, Ht: pageHeight},
	})
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader("invoice", opts, &buf)
	pdf.ImageOptions("invoice", 0, 0, pageWidthMM, pageHeight, false, opts, 0, "")

	return pdf.Output(w)
}
